package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFrameHitch BookmarkType = "frame_hitch"
	BookmarkMoveJitter BookmarkType = "move_jitter"
	BookmarkWentIdle   BookmarkType = "went_idle"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `json:"type" csv:"type"`
	Tick        int64        `json:"tick" csv:"tick"`
	Description string       `json:"description" csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags stats windows that stand out from recent history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// Consecutive windows without any move or turn
	idleWindows int
	wasActive   bool
}

// idleWindowsForBookmark is how many quiet windows after activity count as idle.
const idleWindowsForBookmark = 3

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Frame hitch: slowest step far above the typical step of recent windows
	if b := bd.checkFrameHitch(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Move jitter: steps per tile differ between moves of one window
	if b := bd.checkMoveJitter(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Went idle: several quiet windows after the actor had been moving
	if b := bd.checkWentIdle(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFrameHitch(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.DtP50
	}
	typical := sum / float64(len(history))
	if typical <= 0 {
		return nil
	}

	if stats.DtMax > 4*typical {
		return &Bookmark{
			Type:        BookmarkFrameHitch,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("step of %.1fms vs typical %.1fms", stats.DtMax*1000, typical*1000),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkMoveJitter(stats WindowStats) *Bookmark {
	if stats.MovesFinished < 2 {
		return nil
	}
	if stats.TicksPerMoveStd >= 1 {
		return &Bookmark{
			Type:        BookmarkMoveJitter,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%.1f±%.1f steps per tile", stats.TicksPerMoveMean, stats.TicksPerMoveStd),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkWentIdle(stats WindowStats) *Bookmark {
	active := stats.MovesStarted > 0 || stats.TurnsStarted > 0 || stats.MovesFinished > 0
	if active {
		bd.idleWindows = 0
		bd.wasActive = true
		return nil
	}

	bd.idleWindows++
	if bd.wasActive && bd.idleWindows == idleWindowsForBookmark {
		bd.wasActive = false
		return &Bookmark{
			Type:        BookmarkWentIdle,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("no input for %d windows", bd.idleWindows),
		}
	}
	return nil
}
