package calendar

import (
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

// Google Calendar color IDs used for generated blocks.
const (
	// ColorFocus is blue, used for focus time blocks.
	ColorFocus = "9"
	// ColorCommute is gray, used for commute/buffer blocks.
	ColorCommute = "8"
)

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string

	// ColorID is a Google Calendar color ID, empty for the default color
	ColorID string

	// ReminderMinutes adds a single popup reminder when positive
	ReminderMinutes int
}

// EventSummary represents a simplified calendar event for listing
type EventSummary struct {
	ID              string
	Summary         string
	Description     string
	Location        string
	Start           time.Time
	End             time.Time
	Organizer       string
	OrganizerIsSelf bool
	ResponseStatus  string // the user's own response: "needsAction", "declined", "tentative", "accepted"
	Attendees       []AttendeeInfo
	MeetLink        string

	// AllDay marks events with date-only bounds (banners, holidays,
	// birthdays). Their Start/End come from the calendar's date fields
	// and carry no usable zone or time of day.
	AllDay bool
}

// Duration returns the event length.
func (e EventSummary) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// AttendeeInfo represents information about an event attendee
type AttendeeInfo struct {
	Email          string
	DisplayName    string
	ResponseStatus string
	Optional       bool
	Organizer      bool
	Self           bool
}

// toEventSummary converts a Google Calendar event to an EventSummary
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		// The user's own response defaults to accepted for events
		// without an attendee list (self-created blocks).
		ResponseStatus: string(schedule.StatusAccepted),
	}

	// Parse start time
	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				summary.Start = t
			}
		} else if event.Start.Date != "" {
			summary.AllDay = true
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				summary.Start = t
			}
		}
	}

	// Parse end time
	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				summary.End = t
			}
		} else if event.End.Date != "" {
			if t, err := time.Parse("2006-01-02", event.End.Date); err == nil {
				summary.End = t
			}
		}
	}

	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
		summary.OrganizerIsSelf = event.Organizer.Self
	}

	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
			Optional:       att.Optional,
			Organizer:      att.Organizer,
			Self:           att.Self,
		})
		if att.Self && att.ResponseStatus != "" {
			summary.ResponseStatus = att.ResponseStatus
		}
	}

	// Google Meet link
	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				summary.MeetLink = ep.Uri
				break
			}
		}
	}

	return summary
}

// ToScheduleEvent maps an EventSummary onto the analysis engine's event
// shape, deriving the external-attendee flag from the configured internal
// domains. An empty domain list marks every attendee external when any
// attendee exists outside the user themselves.
func ToScheduleEvent(summary EventSummary, internalDomains []string) schedule.Event {
	return schedule.Event{
		ID:                   summary.ID,
		Title:                summary.Summary,
		Start:                summary.Start,
		End:                  summary.End,
		Status:               schedule.ResponseStatus(summary.ResponseStatus),
		AttendeeCount:        len(summary.Attendees),
		OrganizerIsSelf:      summary.OrganizerIsSelf,
		HasExternalAttendees: hasExternalAttendee(summary.Attendees, internalDomains),
		IsFocusBlock:         isFocusBlockTitle(summary.Summary),
		IsCommuteBlock:       isCommuteTitle(summary.Summary),
	}
}

// ToScheduleEvents maps a listing onto engine events. All-day events are
// dropped: their date-only bounds would otherwise become a midnight-to-
// midnight busy interval swallowing the whole work window.
func ToScheduleEvents(summaries []EventSummary, internalDomains []string) []schedule.Event {
	events := make([]schedule.Event, 0, len(summaries))
	for _, s := range summaries {
		if s.AllDay {
			continue
		}
		events = append(events, ToScheduleEvent(s, internalDomains))
	}
	return events
}

// isFocusBlockTitle and isCommuteTitle recognize the blocks the agent
// creates via CreateFocusBlock and CreateCommuteBlock.
func isFocusBlockTitle(title string) bool {
	return strings.Contains(title, "Focus Block") || strings.Contains(title, "🎯")
}

func isCommuteTitle(title string) bool {
	return strings.Contains(title, "Commute") || strings.Contains(title, "🚗")
}

// hasExternalAttendee reports whether any non-self attendee's email domain
// falls outside the internal domain set.
func hasExternalAttendee(attendees []AttendeeInfo, internalDomains []string) bool {
	for _, att := range attendees {
		if att.Self {
			continue
		}
		domain := emailDomain(att.Email)
		if domain == "" {
			continue
		}
		if !isInternalDomain(domain, internalDomains) {
			return true
		}
	}
	return false
}

func isInternalDomain(domain string, internalDomains []string) bool {
	for _, d := range internalDomains {
		if strings.EqualFold(domain, d) {
			return true
		}
	}
	return false
}

func emailDomain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
