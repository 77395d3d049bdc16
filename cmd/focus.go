package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaushalvivek/calendar-agent/internal/calendar"
)

func newFocusCmd() *cobra.Command {
	var (
		account     string
		calendarID  string
		date        string
		start       string
		duration    int
		description string
	)

	cmd := &cobra.Command{
		Use:   "focus <title>",
		Short: "Create a focus time block on the calendar",
		Long: `Block time for deep work. The event is created with the focus color and a
popup reminder shortly before it starts.`,
		Example: `  calagent focus "quarterly planning doc" --start 14:00 --duration 90
  calagent focus "code review" --date 2025-03-12 --start 10:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			day, _, err := resolveDay(cfg, date)
			if err != nil {
				return err
			}

			startAt, err := atTime(day, start)
			if err != nil {
				return err
			}
			endAt := startAt.Add(time.Duration(duration) * time.Minute)

			ctx := context.Background()
			client, err := calendar.NewClientForAccount(ctx, pick(cfg.Account, account))
			if err != nil {
				return fmt.Errorf("failed to create Calendar client: %w", err)
			}

			created, err := client.CreateFocusBlock(pick(cfg.Calendar, calendarID), args[0], startAt, endAt, cfg.Timezone, description)
			if err != nil {
				return fmt.Errorf("failed to create focus block: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n  %s - %s\n",
				green("Created"),
				bold(created.Summary),
				created.Start.Format("Mon 2006-01-02 15:04"),
				created.End.Format("15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Google account name (default: from config)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default: from config)")
	cmd.Flags().StringVar(&date, "date", "", "Day for the block in YYYY-MM-DD format (default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time in HH:MM format (required)")
	cmd.Flags().IntVar(&duration, "duration", 60, "Block length in minutes")
	cmd.Flags().StringVar(&description, "description", "", "Event description (default: generated from the title)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}
