package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kaushalvivek/calendar-agent/internal/calendar"
	"github.com/kaushalvivek/calendar-agent/internal/config"
	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

// loadConfig reads the agent configuration, honoring the --config flag.
// List-valued env overrides are applied here: viper's AutomaticEnv cannot
// unmarshal a comma-separated variable into a slice.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if domains := os.Getenv("CALAGENT_INTERNAL_DOMAINS"); domains != "" {
		cfg.InternalDomains = parseCommaSeparatedList(domains)
	}
	if keywords := os.Getenv("CALAGENT_CRITICAL_KEYWORDS"); keywords != "" {
		cfg.CriticalKeywords = parseCommaSeparatedList(keywords)
	}
	if keywords := os.Getenv("CALAGENT_CANCELABLE_KEYWORDS"); keywords != "" {
		cfg.CancelableKeywords = parseCommaSeparatedList(keywords)
	}

	return cfg, nil
}

// pick returns the override when set, the configured value otherwise.
func pick(configured, override string) string {
	if override != "" {
		return override
	}
	return configured
}

// resolveDay parses a YYYY-MM-DD date in the configured timezone,
// defaulting to today.
func resolveDay(cfg *config.Config, dateStr string) (time.Time, *time.Location, error) {
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, nil, err
	}

	if dateStr == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), loc, nil
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
	}
	return date, loc, nil
}

// atTime combines a day with an HH:MM clock reading in the day's location.
func atTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// dayEvents fetches one day of events for the account and converts them to
// engine events.
func dayEvents(ctx context.Context, cfg *config.Config, account, calendarID string, date time.Time, loc *time.Location) ([]schedule.Event, *calendar.Client, error) {
	client, err := calendar.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
	}

	summaries, err := client.ListDay(calendarID, date, loc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list events: %w", err)
	}

	return calendar.ToScheduleEvents(summaries, cfg.InternalDomains), client, nil
}
