package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkContactSpike BookmarkType = "contact_spike"
	BookmarkEnergyDrop   BookmarkType = "energy_drop"
	BookmarkSteadyState  BookmarkType = "steady_state"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int64        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches closed stats windows for notable moments.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	energyPeak    float64 // highest kinetic energy since the last drop
	steadyWindows int     // consecutive windows with flat kinetic energy
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady state detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkContactSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkEnergyDrop(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if b := bd.checkSteadyState(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.KineticEnergy > bd.energyPeak {
		bd.energyPeak = stats.KineticEnergy
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	n = min(n, size)
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkContactSpike(stats WindowStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Contacts
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	current := float64(stats.Contacts)
	if current > avg*2.0 && stats.Contacts >= 10 {
		return &Bookmark{
			Type:        BookmarkContactSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d contacts is %.1fx average (%.1f)", stats.Contacts, current/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkEnergyDrop(stats WindowStats) *Bookmark {
	if bd.energyPeak == 0 {
		return nil
	}

	drop := 1.0 - stats.KineticEnergy/bd.energyPeak
	if drop > 0.5 {
		// Reset peak after the drop
		oldPeak := bd.energyPeak
		bd.energyPeak = stats.KineticEnergy

		return &Bookmark{
			Type:        BookmarkEnergyDrop,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Kinetic energy fell %.0f%% from peak %.1f to %.1f", drop*100, oldPeak, stats.KineticEnergy),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSteadyState(stats WindowStats) *Bookmark {
	history := bd.recent(4)
	if len(history) < 4 || stats.KineticEnergy == 0 {
		bd.steadyWindows = 0
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.KineticEnergy
	}
	mean := sum / 4

	var variance float64
	for _, h := range history {
		d := h.KineticEnergy - mean
		variance += d * d
	}
	variance /= 4

	// CV^2 < 0.0025 means CV < 5%
	if variance/(mean*mean) < 0.0025 {
		bd.steadyWindows++
	} else {
		bd.steadyWindows = 0
	}

	if bd.steadyWindows == 5 { // trigger exactly once per steady run
		return &Bookmark{
			Type:        BookmarkSteadyState,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Kinetic energy steady near %.1f with %d bodies", mean, stats.Bodies),
		}
	}
	return nil
}
