package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() RankingRules {
	return RankingRules{
		CriticalKeywords:              []string{"production", "deploy", "critical", "urgent"},
		CancelableKeywords:            []string{"optional", "fyi"},
		LargeMeetingAttendeeThreshold: 8,
		InternalDomains:               []string{"example.com"},
	}
}

func TestRank_CriticalKeywordWins(t *testing.T) {
	// Critical keywords take precedence even when the event also matches
	// the cancelable rules.
	events := []Event{
		{
			ID:            "a",
			Title:         "Production Deployment Review",
			Start:         at(10, 0),
			End:           at(11, 0),
			Status:        StatusTentative,
			AttendeeCount: 20,
		},
	}

	result, err := Rank(events, testRules())
	require.NoError(t, err)

	require.Len(t, result.Critical, 1)
	assert.Empty(t, result.Cancelable)
	assert.Equal(t, "a", result.Critical[0].ID)
}

func TestRank_CancelableByKeyword(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Optional Standup", Start: at(9, 0), End: at(9, 15), Status: StatusTentative, AttendeeCount: 10},
	}

	result, err := Rank(events, testRules())
	require.NoError(t, err)

	require.Len(t, result.Cancelable, 1)
	assert.Equal(t, "a", result.Cancelable[0].ID)
}

func TestRank_CancelableLargeTentative(t *testing.T) {
	events := []Event{
		// Tentative and above the attendee threshold, no keyword match.
		{ID: "big", Title: "All Hands Review", Start: at(14, 0), End: at(15, 0), Status: StatusTentative, AttendeeCount: 9},
		// Same size but accepted stays in the default bucket.
		{ID: "kept", Title: "All Hands Review", Start: at(15, 0), End: at(16, 0), Status: StatusAccepted, AttendeeCount: 9},
		// Tentative at exactly the threshold is not "large".
		{ID: "edge", Title: "Team Review", Start: at(16, 0), End: at(17, 0), Status: StatusTentative, AttendeeCount: 8},
	}

	result, err := Rank(events, testRules())
	require.NoError(t, err)

	require.Len(t, result.Cancelable, 1)
	assert.Equal(t, "big", result.Cancelable[0].ID)
	assert.Len(t, result.Important, 2)
}

func TestRank_ModerateSmallInternalSync(t *testing.T) {
	events := []Event{
		{ID: "sync", Title: "Catch up", Start: at(11, 0), End: at(11, 30), Status: StatusAccepted, AttendeeCount: 2},
		// Self-organized meetings are not reschedule-friendly by this rule.
		{ID: "own", Title: "Catch up", Start: at(12, 0), End: at(12, 30), Status: StatusAccepted, AttendeeCount: 2, OrganizerIsSelf: true},
		// External attendees keep a meeting in the default bucket.
		{ID: "ext", Title: "Catch up", Start: at(13, 0), End: at(13, 30), Status: StatusAccepted, AttendeeCount: 2, HasExternalAttendees: true},
	}

	result, err := Rank(events, testRules())
	require.NoError(t, err)

	require.Len(t, result.Moderate, 1)
	assert.Equal(t, "sync", result.Moderate[0].ID)
	assert.Len(t, result.Important, 2)
}

func TestRank_PartitionLaw(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Urgent escalation", Start: at(9, 0), End: at(10, 0)},
		{ID: "b", Title: "Optional social", Start: at(10, 0), End: at(10, 30)},
		{ID: "c", Title: "1:1", Start: at(11, 0), End: at(11, 30), AttendeeCount: 2},
		{ID: "d", Title: "Customer onboarding", Start: at(12, 0), End: at(13, 0), AttendeeCount: 5, OrganizerIsSelf: true},
		{ID: "e", Title: "", Start: at(14, 0), End: at(14, 30)},
	}

	result, err := Rank(events, testRules())
	require.NoError(t, err)

	assert.Equal(t, len(events), result.Total(), "every event lands in exactly one tier")

	seen := make(map[string]int)
	for _, tier := range Tiers() {
		for _, ev := range result.ByTier(tier) {
			seen[ev.ID]++
		}
	}
	for _, ev := range events {
		assert.Equal(t, 1, seen[ev.ID], "event %s must appear exactly once", ev.ID)
	}
}

func TestRank_ChronologicalWithinTier(t *testing.T) {
	// Attendee counts above 2 keep these out of the moderate small-sync
	// rule so both land in the default bucket.
	events := []Event{
		{ID: "late", Title: "Weekly review", Start: at(16, 0), End: at(17, 0), AttendeeCount: 5},
		{ID: "early", Title: "Daily review", Start: at(9, 0), End: at(9, 30), AttendeeCount: 5},
	}

	result, err := Rank(events, testRules())
	require.NoError(t, err)

	require.Len(t, result.Important, 2)
	assert.Equal(t, "early", result.Important[0].ID)
	assert.Equal(t, "late", result.Important[1].ID)
}

func TestRank_CaseInsensitiveMatching(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "PRODUCTION incident follow-up", Start: at(9, 0), End: at(10, 0)},
	}

	result, err := Rank(events, testRules())
	require.NoError(t, err)
	assert.Len(t, result.Critical, 1)
}

func TestRank_DefaultThreshold(t *testing.T) {
	rules := RankingRules{}
	events := []Event{
		{ID: "a", Title: "Review", Start: at(9, 0), End: at(10, 0), Status: StatusTentative, AttendeeCount: 9},
	}

	result, err := Rank(events, rules)
	require.NoError(t, err)
	assert.Len(t, result.Cancelable, 1, "default threshold of 8 applies when unset")
}

func TestRank_EmptyEvents(t *testing.T) {
	result, err := Rank(nil, testRules())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total())
}

func TestRank_InvalidRules(t *testing.T) {
	_, err := Rank(nil, RankingRules{LargeMeetingAttendeeThreshold: -1})
	assert.ErrorIs(t, err, ErrInvalidRules)
}

func TestRank_MalformedEvent(t *testing.T) {
	events := []Event{
		{ID: "broken", Start: at(11, 0), End: at(10, 0)},
	}
	_, err := Rank(events, testRules())

	var malformed *MalformedEventError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "broken", malformed.ID)
}

func TestRankableMeetings(t *testing.T) {
	events := []Event{
		{ID: "keep", Title: "Design review", Start: at(9, 0), End: at(10, 0), Status: StatusAccepted},
		{ID: "declined", Title: "Optional social", Start: at(10, 0), End: at(11, 0), Status: StatusDeclined},
		{ID: "focus", Title: "🎯 Focus Block", Start: at(12, 0), End: at(14, 0), Status: StatusAccepted, IsFocusBlock: true},
		{ID: "commute", Title: "🚗 Commute", Start: at(15, 0), End: at(15, 30), Status: StatusAccepted, IsCommuteBlock: true},
		{ID: "tentative", Title: "Maybe sync", Start: at(16, 0), End: at(16, 30), Status: StatusTentative},
	}

	meetings := RankableMeetings(events)

	require.Len(t, meetings, 2)
	assert.Equal(t, "keep", meetings[0].ID)
	assert.Equal(t, "tentative", meetings[1].ID, "tentative events stay rankable")
}

func TestRankableMeetings_Empty(t *testing.T) {
	assert.Empty(t, RankableMeetings(nil))
}

func TestTiers_Order(t *testing.T) {
	assert.Equal(t, []Tier{TierCritical, TierImportant, TierModerate, TierCancelable}, Tiers())
}
