package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

// Defaults for schedule analysis. Keyword defaults mirror the stack-ranking
// heuristics the agent started with; all of them are overridable from the
// config file.
var (
	defaultCriticalKeywords   = []string{"production", "deploy", "leads", "epd", "gtm", "critical", "urgent"}
	defaultCancelableKeywords = []string{"optional", "fyi", "social", "list"}
)

// Config holds the calendar agent's user-level settings. It is read once at
// startup and passed down to the engine as explicit values, never consulted
// from inside the core.
type Config struct {
	// Calendar is the calendar ID to operate on.
	Calendar string `mapstructure:"calendar"`

	// Account is the Google account name used for token lookup.
	Account string `mapstructure:"account"`

	// Timezone is the IANA zone the work window is expressed in.
	Timezone string `mapstructure:"timezone"`

	// WorkDayStart and WorkDayEnd bound the free-block search, "HH:MM".
	WorkDayStart string `mapstructure:"work_day_start"`
	WorkDayEnd   string `mapstructure:"work_day_end"`

	// BackToBackThresholdMinutes is the gap below which two meetings are
	// considered back-to-back.
	BackToBackThresholdMinutes int `mapstructure:"back_to_back_threshold_minutes"`

	// MinFreeBlockMinutes hides free blocks shorter than this from
	// presentation. The engine still reports them; filtering is a
	// rendering concern.
	MinFreeBlockMinutes int `mapstructure:"min_free_block_minutes"`

	// CriticalKeywords and CancelableKeywords feed the meeting ranker.
	CriticalKeywords   []string `mapstructure:"critical_keywords"`
	CancelableKeywords []string `mapstructure:"cancelable_keywords"`

	// InternalDomains lists email domains considered internal when
	// deriving the external-attendee flag.
	InternalDomains []string `mapstructure:"internal_domains"`

	// LargeMeetingAttendeeThreshold is the attendee count above which a
	// tentative meeting becomes a cancel candidate.
	LargeMeetingAttendeeThreshold int `mapstructure:"large_meeting_attendee_threshold"`
}

// setDefaults registers defaults on a viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar", "primary")
	v.SetDefault("account", "default")
	v.SetDefault("timezone", "Asia/Kolkata")
	v.SetDefault("work_day_start", "09:00")
	v.SetDefault("work_day_end", "18:00")
	v.SetDefault("back_to_back_threshold_minutes", schedule.DefaultBackToBackThresholdMinutes)
	v.SetDefault("min_free_block_minutes", 30)
	v.SetDefault("critical_keywords", defaultCriticalKeywords)
	v.SetDefault("cancelable_keywords", defaultCancelableKeywords)
	v.SetDefault("internal_domains", []string{})
	v.SetDefault("large_meeting_attendee_threshold", schedule.DefaultLargeMeetingAttendeeThreshold)
}

// Default returns a configuration with all defaults applied and no file or
// environment lookup.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Unmarshal from defaults cannot fail: the registered values match the
	// struct fields.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads the agent config from ~/.calagent.yaml (or the explicit path
// when non-empty) with CALAGENT_* environment overrides. A missing config
// file is fine; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".calagent")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("calagent")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// An explicit path must exist; for the default search only
		// absence is fine.
		if path != "" {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the engine would reject.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	start, err := parseClock(c.WorkDayStart)
	if err != nil {
		return fmt.Errorf("invalid work_day_start %q: %w", c.WorkDayStart, err)
	}
	end, err := parseClock(c.WorkDayEnd)
	if err != nil {
		return fmt.Errorf("invalid work_day_end %q: %w", c.WorkDayEnd, err)
	}
	if !end.after(start) {
		return fmt.Errorf("work_day_end %q must be after work_day_start %q", c.WorkDayEnd, c.WorkDayStart)
	}
	if c.BackToBackThresholdMinutes < 0 {
		return fmt.Errorf("back_to_back_threshold_minutes must be non-negative, got %d", c.BackToBackThresholdMinutes)
	}
	if c.LargeMeetingAttendeeThreshold < 0 {
		return fmt.Errorf("large_meeting_attendee_threshold must be non-negative, got %d", c.LargeMeetingAttendeeThreshold)
	}
	return nil
}

// Location returns the configured timezone. Validate must have passed.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// WorkWindowFor builds the work window for the given date in the
// configured timezone.
func (c *Config) WorkWindowFor(date time.Time) (schedule.WorkWindow, error) {
	loc, err := c.Location()
	if err != nil {
		return schedule.WorkWindow{}, err
	}
	start, err := parseClock(c.WorkDayStart)
	if err != nil {
		return schedule.WorkWindow{}, err
	}
	end, err := parseClock(c.WorkDayEnd)
	if err != nil {
		return schedule.WorkWindow{}, err
	}

	day := date.In(loc)
	return schedule.WorkWindow{
		Start: time.Date(day.Year(), day.Month(), day.Day(), start.hour, start.min, 0, 0, loc),
		End:   time.Date(day.Year(), day.Month(), day.Day(), end.hour, end.min, 0, 0, loc),
	}, nil
}

// RankingRules builds the engine's ranking configuration.
func (c *Config) RankingRules() schedule.RankingRules {
	return schedule.RankingRules{
		CriticalKeywords:              c.CriticalKeywords,
		CancelableKeywords:            c.CancelableKeywords,
		LargeMeetingAttendeeThreshold: c.LargeMeetingAttendeeThreshold,
		InternalDomains:               c.InternalDomains,
	}
}

// clock is a wall-clock time of day.
type clock struct {
	hour int
	min  int
}

func (c clock) after(other clock) bool {
	return c.hour*60+c.min > other.hour*60+other.min
}

// parseClock parses "HH:MM".
func parseClock(s string) (clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return clock{}, err
	}
	return clock{hour: t.Hour(), min: t.Minute()}, nil
}
