package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

func newTodayCmd() *cobra.Command {
	var (
		account    string
		calendarID string
		date       string
		showAll    bool
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's schedule analysis and meeting priorities",
		Long: `Analyze the day's calendar and rank its meetings in one view: busy and
free time, usable free blocks, back-to-back pairs, and each meeting's
priority tier.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
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

			ranking, err := schedule.Rank(schedule.RankableMeetings(events), cfg.RankingRules())
			if err != nil {
				return fmt.Errorf("ranking failed: %w", err)
			}

			out := cmd.OutOrStdout()
			renderEventList(out, events, showAll)
			fmt.Fprintln(out)
			renderAnalysis(out, analysis, day, window, cfg.MinFreeBlockMinutes)
			fmt.Fprintln(out)
			renderRanking(out, ranking, day)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Google account name (default: from config)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default: from config)")
	cmd.Flags().StringVar(&date, "date", "", "Day to show in YYYY-MM-DD format (default: today)")
	cmd.Flags().BoolVar(&showAll, "all", false, "Include declined events in the listing")
	return cmd
}
