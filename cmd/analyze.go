package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		account      string
		calendarID   string
		date         string
		minFreeBlock int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a day's free/busy time and back-to-back meetings",
		Long: `Compute the day's schedule analysis within the configured work window:
total busy and free minutes, the free blocks between meetings, the number
of back-to-back pairs, and how many declined events were excluded.

Overlapping meetings are merged before busy time is summed, so
double-booked slots are never counted twice.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-free-block") {
				cfg.MinFreeBlockMinutes = minFreeBlock
			}

			day, loc, err := resolveDay(cfg, date)
			if err != nil {
				return err
			}

			ctx := context.Background()
			events, _, err := dayEvents(ctx, cfg, pick(cfg.Account, account), pick(cfg.Calendar, calendarID), day, loc)
			if err != nil {
				return err
			}

			window, err := cfg.WorkWindowFor(day)
			if err != nil {
				return err
			}

			analysis, err := schedule.Analyze(events, window, cfg.BackToBackThresholdMinutes)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			renderAnalysis(cmd.OutOrStdout(), analysis, day, window, cfg.MinFreeBlockMinutes)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Google account name (default: from config)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default: from config)")
	cmd.Flags().StringVar(&date, "date", "", "Day to analyze in YYYY-MM-DD format (default: today)")
	cmd.Flags().IntVar(&minFreeBlock, "min-free-block", 30, "Hide free blocks shorter than this many minutes")
	return cmd
}
