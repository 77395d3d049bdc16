package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for malformed inputs. The engine never recovers from
// these; the caller decides whether to skip, abort, or prompt.
var (
	// ErrInvalidWindow is returned when a work window's end is not after
	// its start.
	ErrInvalidWindow = errors.New("work window end must be after start")

	// ErrInvalidRules is returned when ranking rules are malformed.
	ErrInvalidRules = errors.New("invalid ranking rules")
)

// MalformedEventError reports an event whose end precedes its start. It is
// surfaced immediately rather than silently coerced, so callers never act
// on half-computed results.
type MalformedEventError struct {
	ID    string
	Start time.Time
	End   time.Time
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event %s: end %s before start %s",
		e.ID, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// validateEvents returns a MalformedEventError for the first event whose
// end precedes its start. Zero-duration events are valid markers.
func validateEvents(events []Event) error {
	for _, ev := range events {
		if ev.End.Before(ev.Start) {
			return &MalformedEventError{ID: ev.ID, Start: ev.Start, End: ev.End}
		}
	}
	return nil
}
