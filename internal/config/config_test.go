package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point the home search at an empty directory so a developer's real
	// config file cannot leak into the test.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "primary", cfg.Calendar)
	assert.Equal(t, "default", cfg.Account)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, "09:00", cfg.WorkDayStart)
	assert.Equal(t, "18:00", cfg.WorkDayEnd)
	assert.Equal(t, 15, cfg.BackToBackThresholdMinutes)
	assert.Equal(t, 30, cfg.MinFreeBlockMinutes)
	assert.Equal(t, 8, cfg.LargeMeetingAttendeeThreshold)
	assert.Contains(t, cfg.CriticalKeywords, "production")
	assert.Contains(t, cfg.CancelableKeywords, "optional")
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calagent.yaml")
	content := `
timezone: Europe/Berlin
work_day_start: "08:30"
work_day_end: "17:00"
back_to_back_threshold_minutes: 10
critical_keywords: [incident]
internal_domains: [example.com]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "08:30", cfg.WorkDayStart)
	assert.Equal(t, 10, cfg.BackToBackThresholdMinutes)
	assert.Equal(t, []string{"incident"}, cfg.CriticalKeywords)
	assert.Equal(t, []string{"example.com"}, cfg.InternalDomains)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"bad start", func(c *Config) { c.WorkDayStart = "9am" }},
		{"bad end", func(c *Config) { c.WorkDayEnd = "25:00" }},
		{"end before start", func(c *Config) { c.WorkDayStart = "18:00"; c.WorkDayEnd = "09:00" }},
		{"negative threshold", func(c *Config) { c.BackToBackThresholdMinutes = -1 }},
		{"negative attendee threshold", func(c *Config) { c.LargeMeetingAttendeeThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Timezone:                   "UTC",
				WorkDayStart:               "09:00",
				WorkDayEnd:                 "18:00",
				BackToBackThresholdMinutes: 15,
			}
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWorkWindowFor(t *testing.T) {
	cfg := &Config{
		Timezone:     "UTC",
		WorkDayStart: "09:00",
		WorkDayEnd:   "18:00",
	}

	date := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)
	window, err := cfg.WorkWindowFor(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), window.End)
	assert.Equal(t, 9*time.Hour, window.Duration())
}

func TestRankingRules(t *testing.T) {
	cfg := &Config{
		CriticalKeywords:              []string{"urgent"},
		CancelableKeywords:            []string{"optional"},
		LargeMeetingAttendeeThreshold: 5,
		InternalDomains:               []string{"example.com"},
	}

	rules := cfg.RankingRules()
	assert.Equal(t, []string{"urgent"}, rules.CriticalKeywords)
	assert.Equal(t, 5, rules.LargeMeetingAttendeeThreshold)
}
