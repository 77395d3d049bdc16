package schedule

import "time"

// ResponseStatus is the user's response to a meeting invitation.
type ResponseStatus string

// Response status values, matching the wire values used by calendar providers.
const (
	StatusAccepted    ResponseStatus = "accepted"
	StatusDeclined    ResponseStatus = "declined"
	StatusTentative   ResponseStatus = "tentative"
	StatusNeedsAction ResponseStatus = "needsAction"
)

// Event is a single calendar entry as seen by the analysis engine.
// It is a provider-independent shape; the calendar client is responsible
// for mapping provider fields (attendee domains, organizer email) onto it.
type Event struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time

	// Status is the user's own response status. Declined events are
	// excluded from busy-time and adjacency computation.
	Status ResponseStatus

	// AttendeeCount is the number of attendees on the invite. Zero when
	// the provider did not supply an attendee list.
	AttendeeCount int

	// OrganizerIsSelf indicates the user organized this meeting.
	OrganizerIsSelf bool

	// HasExternalAttendees indicates at least one attendee whose email
	// domain is outside the configured internal domains.
	HasExternalAttendees bool

	// IsFocusBlock and IsCommuteBlock mark blocks the agent itself
	// created. They occupy busy time but are not meetings: the analyzer
	// keeps them out of MeetingCount and callers keep them out of
	// ranking via RankableMeetings.
	IsFocusBlock   bool
	IsCommuteBlock bool
}

// IsAgentBlock reports whether the event is an agent-created focus or
// commute block.
func (e Event) IsAgentBlock() bool {
	return e.IsFocusBlock || e.IsCommuteBlock
}

// Duration returns the event length. Events with Start == End are
// zero-duration markers and contribute no busy time.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// WorkWindow bounds the free-block search for a single day. Both instants
// are expected in the user's configured timezone; the window is supplied by
// the caller, never derived here.
type WorkWindow struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w WorkWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// FreeBlock is a maximal gap inside the work window with no overlapping
// non-declined event.
type FreeBlock struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the block length in whole minutes.
func (b FreeBlock) Minutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// AnalysisResult is the aggregate output of Analyze.
//
// FreeBlocks are non-overlapping, sorted, and exactly tile the work window
// minus busy time, so BusyMinutes+FreeMinutes always equals the window
// duration in minutes.
type AnalysisResult struct {
	// MeetingCount is the number of non-declined, non-zero-duration
	// events that intersect the work window, not counting agent-created
	// focus and commute blocks.
	MeetingCount int

	// FocusMinutes is the clipped time covered by focus blocks inside
	// the window. Focus and commute blocks contribute to BusyMinutes but
	// never to MeetingCount.
	FocusMinutes int

	// BusyMinutes is the merged busy time inside the window. Overlapping
	// (double-booked) events are merged first and never double-counted.
	BusyMinutes int

	// FreeMinutes is the window duration minus BusyMinutes.
	FreeMinutes int

	// FreeBlocks are the gaps between merged busy intervals.
	FreeBlocks []FreeBlock

	// BackToBackCount is the number of adjacent event pairs separated by
	// less than the configured threshold. Overlapping pairs count with a
	// gap of zero.
	BackToBackCount int

	// DeclinedCount is the number of declined events that were excluded.
	DeclinedCount int
}

// Tier is a meeting priority class, ordered critical > important >
// moderate > cancelable.
type Tier string

// Priority tiers.
const (
	TierCritical   Tier = "critical"
	TierImportant  Tier = "important"
	TierModerate   Tier = "moderate"
	TierCancelable Tier = "cancelable"
)

// Tiers returns all tiers in fixed presentation order.
func Tiers() []Tier {
	return []Tier{TierCritical, TierImportant, TierModerate, TierCancelable}
}

// RankingResult groups a day's meetings by priority tier. Every input event
// appears in exactly one tier, in chronological order within the tier.
type RankingResult struct {
	Critical   []Event
	Important  []Event
	Moderate   []Event
	Cancelable []Event
}

// ByTier returns the events assigned to the given tier.
func (r *RankingResult) ByTier(tier Tier) []Event {
	switch tier {
	case TierCritical:
		return r.Critical
	case TierImportant:
		return r.Important
	case TierModerate:
		return r.Moderate
	case TierCancelable:
		return r.Cancelable
	}
	return nil
}

// Total returns the number of ranked events across all tiers.
func (r *RankingResult) Total() int {
	return len(r.Critical) + len(r.Important) + len(r.Moderate) + len(r.Cancelable)
}

// DefaultLargeMeetingAttendeeThreshold is the attendee count above which a
// tentative meeting is considered a cancel candidate.
const DefaultLargeMeetingAttendeeThreshold = 8

// RankingRules configures the Ranker. Rules are passed into each call
// rather than held as process-wide state, so one engine can serve multiple
// users and keyword sets concurrently.
type RankingRules struct {
	// CriticalKeywords force a meeting into the critical tier when any of
	// them appears in the title (case-insensitive substring match).
	CriticalKeywords []string

	// CancelableKeywords mark a meeting as a cancel candidate.
	CancelableKeywords []string

	// LargeMeetingAttendeeThreshold is the attendee count above which a
	// tentative meeting is cancelable. Zero means use the default.
	LargeMeetingAttendeeThreshold int

	// InternalDomains lists email domains considered internal. Retained
	// on the rules so callers can map provider events consistently; the
	// ranker itself consumes the derived HasExternalAttendees flag.
	InternalDomains []string
}

// largeMeetingThreshold returns the effective threshold, applying the
// default when unset.
func (r RankingRules) largeMeetingThreshold() int {
	if r.LargeMeetingAttendeeThreshold == 0 {
		return DefaultLargeMeetingAttendeeThreshold
	}
	return r.LargeMeetingAttendeeThreshold
}
