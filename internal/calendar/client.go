package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/kaushalvivek/calendar-agent/internal/google"
	"github.com/kaushalvivek/calendar-agent/internal/logging"
	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

// Client wraps the Google Calendar service
type Client struct {
	svc           *calendar.Service
	account       string // The account this client is associated with
	tokenProvider google.TokenProvider
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.NewFileTokenProvider().HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth URL to authorize the specified account
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURLForAccount(account)
}

// NewClientForAccountWithProvider creates a new Calendar client with OAuth2
// authentication for a specific account. The OAuth token is retrieved from
// the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a new Calendar client for a specific account
// using the default file-based token provider
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// NewClient creates a new Calendar client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListEvents lists events in a calendar within a time range, expanded to
// single events in chronological order
func (c *Client) ListEvents(calendarID string, timeMin, timeMax time.Time) ([]EventSummary, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	slog.Debug("listed calendar events",
		logging.Operation("list"),
		logging.Calendar(calendarID),
		slog.Int("count", len(summaries)))

	return summaries, nil
}

// ListDay lists a full day's events in the given location.
func (c *Client) ListDay(calendarID string, date time.Time, loc *time.Location) ([]EventSummary, error) {
	day := date.In(loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return c.ListEvents(calendarID, start, start.AddDate(0, 0, 1))
}

// GetEvent retrieves a specific event by ID
func (c *Client) GetEvent(calendarID, eventID string) (*EventSummary, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	summary := toEventSummary(event)
	return &summary, nil
}

// CreateEvent creates a new calendar event
func (c *Client) CreateEvent(calendarID string, input EventInput) (*EventSummary, error) {
	if input.TimeZone == "" {
		input.TimeZone = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		ColorId:     input.ColorID,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
	}

	if input.ReminderMinutes > 0 {
		event.Reminders = &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(input.ReminderMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}

	created, err := c.svc.Events.Insert(calendarID, event).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	slog.Debug("created calendar event",
		logging.Operation("create"),
		logging.Calendar(calendarID),
		logging.EventID(created.Id))

	summary := toEventSummary(created)
	return &summary, nil
}

// CreateFocusBlock creates a focus time block in one of the schedule's free
// blocks
func (c *Client) CreateFocusBlock(calendarID, title string, start, end time.Time, timeZone, description string) (*EventSummary, error) {
	if description == "" {
		description = fmt.Sprintf("Deep work session on %s", title)
	}
	return c.CreateEvent(calendarID, EventInput{
		Summary:         fmt.Sprintf("🎯 Focus Block: %s", title),
		Description:     description,
		Start:           start,
		End:             end,
		TimeZone:        timeZone,
		ColorID:         ColorFocus,
		ReminderMinutes: 5,
	})
}

// CreateCommuteBlock creates a commute/buffer block
func (c *Client) CreateCommuteBlock(calendarID string, start, end time.Time, timeZone, description string) (*EventSummary, error) {
	if description == "" {
		description = "Travel time"
	}
	return c.CreateEvent(calendarID, EventInput{
		Summary:         "🚗 Commute",
		Description:     description,
		Start:           start,
		End:             end,
		TimeZone:        timeZone,
		ColorID:         ColorCommute,
		ReminderMinutes: 10,
	})
}

// UpdateEventResponse updates the user's own response status on an event
// and notifies attendees when notify is true
func (c *Client) UpdateEventResponse(calendarID, eventID string, status schedule.ResponseStatus, notify bool) error {
	event, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}

	var selfEmail string
	updated := false
	for _, att := range event.Attendees {
		if att.Self {
			att.ResponseStatus = string(status)
			selfEmail = att.Email
			updated = true
			break
		}
	}
	if !updated {
		return fmt.Errorf("user is not an attendee of event %s", eventID)
	}

	sendUpdates := "none"
	if notify {
		sendUpdates = "all"
	}

	_, err = c.svc.Events.Patch(calendarID, eventID, &calendar.Event{
		Attendees: event.Attendees,
	}).SendUpdates(sendUpdates).Do()
	if err != nil {
		return fmt.Errorf("failed to update response status: %w", err)
	}

	slog.Debug("updated event response",
		logging.Operation("respond"),
		logging.Calendar(calendarID),
		logging.EventID(eventID),
		logging.UserHash(selfEmail),
		slog.String("status", string(status)))

	return nil
}

// DeclineEvent declines a calendar event on the user's behalf
func (c *Client) DeclineEvent(calendarID, eventID string, notify bool) error {
	return c.UpdateEventResponse(calendarID, eventID, schedule.StatusDeclined, notify)
}

// RescheduleEvent moves an existing event to a new time. When message is
// non-empty it is prepended to the event description so attendees see why.
func (c *Client) RescheduleEvent(calendarID, eventID string, newStart, newEnd time.Time, timeZone, message string, notify bool) (*EventSummary, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if timeZone == "" {
		timeZone = "UTC"
	}
	event.Start = &calendar.EventDateTime{
		DateTime: newStart.Format(time.RFC3339),
		TimeZone: timeZone,
	}
	event.End = &calendar.EventDateTime{
		DateTime: newEnd.Format(time.RFC3339),
		TimeZone: timeZone,
	}

	if message != "" {
		note := fmt.Sprintf("Rescheduled: %s", message)
		if event.Description != "" {
			event.Description = note + "\n\n" + event.Description
		} else {
			event.Description = note
		}
	}

	sendUpdates := "none"
	if notify {
		sendUpdates = "all"
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, event).SendUpdates(sendUpdates).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule event: %w", err)
	}

	slog.Debug("rescheduled calendar event",
		logging.Operation("reschedule"),
		logging.Calendar(calendarID),
		logging.EventID(eventID))

	summary := toEventSummary(updated)
	return &summary, nil
}

// FindEventByTitle returns the first event in the time range whose title
// contains the given substring, case-insensitively. Returns nil when
// nothing matches.
func (c *Client) FindEventByTitle(calendarID, titleSubstring string, timeMin, timeMax time.Time) (*EventSummary, error) {
	summaries, err := c.ListEvents(calendarID, timeMin, timeMax)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(titleSubstring)
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.Summary), needle) {
			match := s
			return &match, nil
		}
	}
	return nil, nil
}
