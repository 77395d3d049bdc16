package schedule

import (
	"sort"
	"time"
)

// DefaultBackToBackThresholdMinutes is the gap below which two adjacent
// meetings are considered back-to-back.
const DefaultBackToBackThresholdMinutes = 15

// interval is a half-open busy range used during merging.
type interval struct {
	start time.Time
	end   time.Time
}

// Analyze computes free/busy structure for a day's events within the given
// work window.
//
// Events need not be sorted or non-overlapping. Declined and zero-duration
// events are excluded from busy time and adjacency; declined events are
// reported via DeclinedCount. Agent-created focus and commute blocks
// occupy busy time but are excluded from MeetingCount, with focus time
// reported via FocusMinutes. Overlapping events are merged before busy
// time is summed, so double-bookings are never double-counted.
//
// Returns ErrInvalidWindow when the window is malformed and a
// MalformedEventError when any event ends before it starts. An empty event
// list yields a single free block spanning the whole window.
func Analyze(events []Event, window WorkWindow, backToBackThresholdMinutes int) (*AnalysisResult, error) {
	if !window.End.After(window.Start) {
		return nil, ErrInvalidWindow
	}
	if err := validateEvents(events); err != nil {
		return nil, err
	}

	declined := 0
	meetings := 0
	var focus time.Duration
	clipped := make([]interval, 0, len(events))
	for _, ev := range events {
		if !ev.End.After(window.Start) || !ev.Start.Before(window.End) {
			continue
		}
		if ev.Status == StatusDeclined {
			declined++
			continue
		}
		if !ev.End.After(ev.Start) {
			// Zero-duration marker, no busy time.
			continue
		}
		iv := interval{start: ev.Start, end: ev.End}
		if iv.start.Before(window.Start) {
			iv.start = window.Start
		}
		if iv.end.After(window.End) {
			iv.end = window.End
		}
		// Agent-created blocks occupy time without being meetings.
		if ev.IsFocusBlock {
			focus += iv.end.Sub(iv.start)
		}
		if !ev.IsAgentBlock() {
			meetings++
		}
		clipped = append(clipped, iv)
	}

	// Deterministic merge order: by start, shorter events first on ties.
	sort.Slice(clipped, func(i, j int) bool {
		if !clipped[i].start.Equal(clipped[j].start) {
			return clipped[i].start.Before(clipped[j].start)
		}
		return clipped[i].end.Before(clipped[j].end)
	})

	merged := mergeIntervals(clipped)

	var busy time.Duration
	for _, iv := range merged {
		busy += iv.end.Sub(iv.start)
	}

	result := &AnalysisResult{
		MeetingCount:    meetings,
		FocusMinutes:    int(focus / time.Minute),
		BusyMinutes:     int(busy / time.Minute),
		FreeMinutes:     int((window.Duration() - busy) / time.Minute),
		FreeBlocks:      complement(merged, window),
		BackToBackCount: countBackToBack(clipped, backToBackThresholdMinutes),
		DeclinedCount:   declined,
	}
	return result, nil
}

// mergeIntervals collapses a sorted interval list into a minimal set of
// non-overlapping busy intervals. Two intervals merge when the later one
// starts at or before the earlier one's end.
func mergeIntervals(sorted []interval) []interval {
	if len(sorted) == 0 {
		return nil
	}

	merged := []interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// complement returns the gaps between merged busy intervals inside the
// window. Zero-duration gaps are omitted.
func complement(merged []interval, window WorkWindow) []FreeBlock {
	var blocks []FreeBlock
	cursor := window.Start
	for _, iv := range merged {
		if iv.start.After(cursor) {
			blocks = append(blocks, FreeBlock{Start: cursor, End: iv.start})
		}
		if iv.end.After(cursor) {
			cursor = iv.end
		}
	}
	if window.End.After(cursor) {
		blocks = append(blocks, FreeBlock{Start: cursor, End: window.End})
	}
	return blocks
}

// countBackToBack counts adjacent pairs in the pre-merge sorted event list
// whose gap is below the threshold. Overlapping pairs count with a gap of
// zero.
func countBackToBack(sorted []interval, thresholdMinutes int) int {
	count := 0
	for i := 0; i+1 < len(sorted); i++ {
		gap := sorted[i+1].start.Sub(sorted[i].end)
		if gap < 0 {
			gap = 0
		}
		if gap < time.Duration(thresholdMinutes)*time.Minute {
			count++
		}
	}
	return count
}
