package ui

import (
	"fmt"

	"github.com/pthm-cable/tilestep/components"
	"github.com/pthm-cable/tilestep/sim"
)

// ActorSections describes the inspector layout for a sim.Snapshot.
var ActorSections = []SectionDescriptor{
	{
		ID:    "transform",
		Title: "Transform",
		Fields: []FieldDescriptor{
			{ID: "x", Label: "X", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return d.(sim.Snapshot).Position.X }},
			{ID: "z", Label: "Z", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return d.(sim.Snapshot).Position.Z }},
			{ID: "heading", Label: "Heading", Widget: WidgetText, TextGetter: func(d any) string {
				s := d.(sim.Snapshot)
				return fmt.Sprintf("%.3f rad (%s)", s.Heading, s.Facing)
			}},
		},
	},
	{
		ID:      "move",
		Title:   "Move",
		Visible: func(d any) bool { return d.(sim.Snapshot).Moving },
		Fields: []FieldDescriptor{
			{ID: "direction", Label: "Direction", Widget: WidgetText, TextGetter: func(d any) string { return d.(sim.Snapshot).MoveHeading.String() }},
			{ID: "progress", Label: "Progress", Widget: WidgetBar, Getter: func(d any) float32 { return 1 - d.(sim.Snapshot).Remaining }},
		},
	},
	{
		ID:      "turn",
		Title:   "Turn",
		Visible: func(d any) bool { return d.(sim.Snapshot).Turning },
		Fields: []FieldDescriptor{
			{ID: "target", Label: "Target", Widget: WidgetText, TextGetter: func(d any) string {
				t := d.(sim.Snapshot).Target
				return fmt.Sprintf("%.3f rad (%s)", t, components.NearestHeading(t))
			}},
		},
	},
}

// Inspector renders the selected actor panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given snapshot and returns the bottom Y.
func (ins *Inspector) Draw(snap sim.Snapshot) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	r.DrawPanel(ins.x, ins.y, ins.width, ins.height(snap))

	y := ins.y + padding
	contentWidth := ins.width - padding*2
	for _, sd := range ActorSections {
		y = r.DrawSection(ins.x+padding, y, sd, snap, contentWidth)
	}
	return y
}

// height sums the rows the visible sections will draw.
func (ins *Inspector) height(snap sim.Snapshot) int32 {
	t := ins.renderer.Theme
	h := t.Padding * 2
	for _, sd := range ActorSections {
		if sd.Visible != nil && !sd.Visible(snap) {
			continue
		}
		h += t.LineHeight + 4
		for _, fd := range sd.Fields {
			h += t.LineHeight
			if fd.Widget == WidgetBar {
				h += 2
			}
		}
	}
	return h
}
