package schedule

import (
	"sort"
	"strings"
)

// rankRule pairs a predicate with the tier it assigns. Rules are evaluated
// in order and the first match wins, which makes the precedence between
// keyword classes explicit and testable.
type rankRule struct {
	tier  Tier
	match func(Event, RankingRules) bool
}

var rankRules = []rankRule{
	{
		tier: TierCritical,
		match: func(ev Event, rules RankingRules) bool {
			return titleContainsAny(ev.Title, rules.CriticalKeywords)
		},
	},
	{
		tier: TierCancelable,
		match: func(ev Event, rules RankingRules) bool {
			if titleContainsAny(ev.Title, rules.CancelableKeywords) {
				return true
			}
			return ev.Status == StatusTentative && ev.AttendeeCount > rules.largeMeetingThreshold()
		},
	},
	{
		// Small internal syncs the user doesn't own are easy to move.
		tier: TierModerate,
		match: func(ev Event, rules RankingRules) bool {
			return !ev.OrganizerIsSelf && !ev.HasExternalAttendees && ev.AttendeeCount <= 2
		},
	},
	{
		// Default bucket for everything not explicitly classified.
		tier: TierImportant,
		match: func(Event, RankingRules) bool {
			return true
		},
	},
}

// RankableMeetings filters a day's events down to the meetings worth
// ranking: declined events and agent-created focus/commute blocks are
// dropped. Rank itself partitions whatever it is given, so callers apply
// this to a fetched day before ranking it.
func RankableMeetings(events []Event) []Event {
	meetings := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.Status == StatusDeclined || ev.IsAgentBlock() {
			continue
		}
		meetings = append(meetings, ev)
	}
	return meetings
}

// Rank assigns each meeting to a priority tier. Every input event lands in
// exactly one tier, appended in chronological order of the day.
//
// Returns ErrInvalidRules when the rules are malformed and a
// MalformedEventError when any event ends before it starts. Missing
// optional metadata (attendee count, flags) defaults to zero values and
// never fails.
func Rank(events []Event, rules RankingRules) (*RankingResult, error) {
	if rules.LargeMeetingAttendeeThreshold < 0 {
		return nil, ErrInvalidRules
	}
	if err := validateEvents(events); err != nil {
		return nil, err
	}

	ordered := make([]Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	result := &RankingResult{}
	for _, ev := range ordered {
		switch classify(ev, rules) {
		case TierCritical:
			result.Critical = append(result.Critical, ev)
		case TierImportant:
			result.Important = append(result.Important, ev)
		case TierModerate:
			result.Moderate = append(result.Moderate, ev)
		case TierCancelable:
			result.Cancelable = append(result.Cancelable, ev)
		}
	}
	return result, nil
}

// classify runs the ordered rule table for a single event. The final rule
// always matches.
func classify(ev Event, rules RankingRules) Tier {
	for _, rule := range rankRules {
		if rule.match(ev, rules) {
			return rule.tier
		}
	}
	return TierImportant
}

// titleContainsAny reports whether the title contains any keyword,
// case-insensitively. Empty keywords never match.
func titleContainsAny(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
