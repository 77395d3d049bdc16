package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

func newRankCmd() *cobra.Command {
	var (
		account    string
		calendarID string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a day's meetings into priority tiers",
		Long: `Classify every meeting of the day into one of four priority tiers:

  critical    title matches a critical keyword; do not skip
  important   the default for anything not matched by another rule
  moderate    small internal meeting organized by someone else
  cancelable  title matches a cancelable keyword, or a large meeting
              you have only tentatively accepted

Keywords and thresholds come from the config file.`,
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

			ranking, err := schedule.Rank(schedule.RankableMeetings(events), cfg.RankingRules())
			if err != nil {
				return fmt.Errorf("ranking failed: %w", err)
			}

			renderRanking(cmd.OutOrStdout(), ranking, day)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Google account name (default: from config)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default: from config)")
	cmd.Flags().StringVar(&date, "date", "", "Day to rank in YYYY-MM-DD format (default: today)")
	return cmd
}
