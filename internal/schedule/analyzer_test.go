package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at builds an instant on a fixed test day.
func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func testWindow() WorkWindow {
	return WorkWindow{Start: at(9, 0), End: at(18, 0)}
}

func TestAnalyze_BackToBackDay(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Standup", Start: at(9, 0), End: at(10, 0), Status: StatusAccepted},
		{ID: "b", Title: "Planning", Start: at(10, 0), End: at(11, 0), Status: StatusAccepted},
	}

	result, err := Analyze(events, testWindow(), DefaultBackToBackThresholdMinutes)
	require.NoError(t, err)

	assert.Equal(t, 2, result.MeetingCount)
	assert.Equal(t, 120, result.BusyMinutes)
	assert.Equal(t, 420, result.FreeMinutes)
	assert.Equal(t, 1, result.BackToBackCount, "zero gap is back-to-back")

	require.Len(t, result.FreeBlocks, 1)
	assert.Equal(t, at(11, 0), result.FreeBlocks[0].Start)
	assert.Equal(t, at(18, 0), result.FreeBlocks[0].End)
	assert.Equal(t, 420, result.FreeBlocks[0].Minutes())
}

func TestAnalyze_GapAboveThreshold(t *testing.T) {
	events := []Event{
		{ID: "a", Start: at(9, 0), End: at(10, 0), Status: StatusAccepted},
		{ID: "b", Start: at(10, 20), End: at(11, 0), Status: StatusAccepted},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 0, result.BackToBackCount, "20 minute gap is not back-to-back at threshold 15")

	require.Len(t, result.FreeBlocks, 2)
	assert.Equal(t, at(10, 0), result.FreeBlocks[0].Start)
	assert.Equal(t, at(10, 20), result.FreeBlocks[0].End)
	assert.Equal(t, at(11, 0), result.FreeBlocks[1].Start)
	assert.Equal(t, at(18, 0), result.FreeBlocks[1].End)
}

func TestAnalyze_OverlappingEventsMerge(t *testing.T) {
	events := []Event{
		{ID: "a", Start: at(9, 0), End: at(11, 0), Status: StatusAccepted},
		{ID: "b", Start: at(10, 0), End: at(12, 0), Status: StatusAccepted},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 180, result.BusyMinutes, "double-booked time must not be double-counted")
	assert.Equal(t, 360, result.FreeMinutes)
	assert.Equal(t, 1, result.BackToBackCount, "overlap counts as zero gap")

	require.Len(t, result.FreeBlocks, 1)
	assert.Equal(t, at(12, 0), result.FreeBlocks[0].Start)
}

func TestAnalyze_EmptyEvents(t *testing.T) {
	result, err := Analyze(nil, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 0, result.MeetingCount)
	assert.Equal(t, 0, result.BusyMinutes)
	assert.Equal(t, 540, result.FreeMinutes)
	require.Len(t, result.FreeBlocks, 1)
	assert.Equal(t, at(9, 0), result.FreeBlocks[0].Start)
	assert.Equal(t, at(18, 0), result.FreeBlocks[0].End)
}

func TestAnalyze_DeclinedExcluded(t *testing.T) {
	events := []Event{
		{ID: "a", Start: at(9, 0), End: at(10, 0), Status: StatusAccepted},
		{ID: "b", Start: at(10, 0), End: at(11, 0), Status: StatusDeclined},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 1, result.MeetingCount)
	assert.Equal(t, 60, result.BusyMinutes)
	assert.Equal(t, 1, result.DeclinedCount)
	assert.Equal(t, 0, result.BackToBackCount, "declined events do not form pairs")
}

func TestAnalyze_AgentBlocksOccupyTimeButAreNotMeetings(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Standup", Start: at(9, 0), End: at(10, 0), Status: StatusAccepted},
		{ID: "b", Title: "🎯 Focus Block: deep work", Start: at(12, 0), End: at(14, 0), Status: StatusAccepted, IsFocusBlock: true},
		{ID: "c", Title: "🚗 Commute", Start: at(15, 0), End: at(15, 30), Status: StatusAccepted, IsCommuteBlock: true},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 1, result.MeetingCount, "focus and commute blocks are not meetings")
	assert.Equal(t, 210, result.BusyMinutes, "blocks still occupy time")
	assert.Equal(t, 120, result.FocusMinutes)
	assert.Equal(t, 330, result.FreeMinutes)
}

func TestAnalyze_FocusMinutesClippedToWindow(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "🎯 Focus Block", Start: at(8, 0), End: at(10, 0), Status: StatusAccepted, IsFocusBlock: true},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 60, result.FocusMinutes, "only the in-window hour counts")
	assert.Equal(t, 0, result.MeetingCount)
}

func TestAnalyze_ZeroDurationExcluded(t *testing.T) {
	events := []Event{
		{ID: "marker", Start: at(10, 0), End: at(10, 0), Status: StatusAccepted},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 0, result.MeetingCount)
	assert.Equal(t, 0, result.BusyMinutes)
	require.Len(t, result.FreeBlocks, 1)
}

func TestAnalyze_ClipsToWindow(t *testing.T) {
	events := []Event{
		// Spills over both window edges.
		{ID: "a", Start: at(8, 0), End: at(9, 30), Status: StatusAccepted},
		{ID: "b", Start: at(17, 30), End: at(19, 0), Status: StatusAccepted},
		// Entirely outside the window.
		{ID: "c", Start: at(20, 0), End: at(21, 0), Status: StatusAccepted},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 2, result.MeetingCount)
	assert.Equal(t, 60, result.BusyMinutes)
	require.Len(t, result.FreeBlocks, 1)
	assert.Equal(t, at(9, 30), result.FreeBlocks[0].Start)
	assert.Equal(t, at(17, 30), result.FreeBlocks[0].End)
}

func TestAnalyze_UnsortedInput(t *testing.T) {
	events := []Event{
		{ID: "b", Start: at(14, 0), End: at(15, 0), Status: StatusAccepted},
		{ID: "a", Start: at(9, 0), End: at(10, 0), Status: StatusAccepted},
		{ID: "c", Start: at(10, 5), End: at(11, 0), Status: StatusAccepted},
	}

	result, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, 1, result.BackToBackCount, "adjacency is computed over sorted events")
	require.Len(t, result.FreeBlocks, 3)
}

func TestAnalyze_BusyPlusFreeEqualsWindow(t *testing.T) {
	// Property from the engine contract: busy + free always tiles the
	// window, including under overlaps and edge spills.
	cases := [][]Event{
		nil,
		{{ID: "a", Start: at(9, 0), End: at(17, 59), Status: StatusAccepted}},
		{
			{ID: "a", Start: at(8, 0), End: at(12, 0), Status: StatusAccepted},
			{ID: "b", Start: at(11, 0), End: at(13, 30), Status: StatusAccepted},
			{ID: "c", Start: at(13, 30), End: at(19, 0), Status: StatusTentative},
		},
		{
			{ID: "a", Start: at(10, 0), End: at(10, 30), Status: StatusAccepted},
			{ID: "b", Start: at(10, 0), End: at(11, 30), Status: StatusAccepted},
			{ID: "c", Start: at(10, 15), End: at(10, 20), Status: StatusAccepted},
		},
	}

	window := testWindow()
	for _, events := range cases {
		result, err := Analyze(events, window, 15)
		require.NoError(t, err)

		assert.Equal(t, int(window.Duration()/time.Minute), result.BusyMinutes+result.FreeMinutes)

		blockMinutes := 0
		for i, block := range result.FreeBlocks {
			blockMinutes += block.Minutes()
			if i > 0 {
				assert.True(t, block.Start.After(result.FreeBlocks[i-1].End) || block.Start.Equal(result.FreeBlocks[i-1].End),
					"free blocks must be sorted and non-overlapping")
			}
		}
		assert.Equal(t, result.FreeMinutes, blockMinutes, "free blocks must tile the free time exactly")
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	events := []Event{
		{ID: "a", Start: at(9, 0), End: at(10, 0), Status: StatusAccepted},
		{ID: "b", Start: at(9, 30), End: at(11, 0), Status: StatusAccepted},
	}

	first, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)
	second, err := Analyze(events, testWindow(), 15)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_InvalidWindow(t *testing.T) {
	_, err := Analyze(nil, WorkWindow{Start: at(18, 0), End: at(9, 0)}, 15)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Analyze(nil, WorkWindow{Start: at(9, 0), End: at(9, 0)}, 15)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestAnalyze_MalformedEvent(t *testing.T) {
	events := []Event{
		{ID: "broken", Start: at(11, 0), End: at(10, 0), Status: StatusAccepted},
	}

	_, err := Analyze(events, testWindow(), 15)
	require.Error(t, err)

	var malformed *MalformedEventError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "broken", malformed.ID)
}
