package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaushalvivek/calendar-agent/internal/calendar"
)

func newRescheduleCmd() *cobra.Command {
	var (
		account    string
		calendarID string
		date       string
		start      string
		duration   int
		message    string
		notify     bool
	)

	cmd := &cobra.Command{
		Use:   "reschedule <eventID>",
		Short: "Move a meeting to a new time",
		Long: `Move a meeting to a new start time. The reason is recorded at the top of
the event description; attendees are only notified with --notify. The
original duration is kept unless --duration is given.`,
		Example: `  calagent reschedule abc123def456 --start 16:00 --message "conflict with incident review" --notify`,
		Args:    cobra.ExactArgs(1),
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

			ctx := context.Background()
			client, err := calendar.NewClientForAccount(ctx, pick(cfg.Account, account))
			if err != nil {
				return fmt.Errorf("failed to create Calendar client: %w", err)
			}

			calID := pick(cfg.Calendar, calendarID)

			length := time.Duration(duration) * time.Minute
			if !cmd.Flags().Changed("duration") {
				event, err := client.GetEvent(calID, args[0])
				if err != nil {
					return fmt.Errorf("failed to load event: %w", err)
				}
				length = event.Duration()
			}

			updated, err := client.RescheduleEvent(calID, args[0], startAt, startAt.Add(length), cfg.Timezone, message, notify)
			if err != nil {
				return fmt.Errorf("failed to reschedule event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n  %s - %s\n",
				yellow("Rescheduled"),
				bold(updated.Summary),
				updated.Start.Format("Mon 2006-01-02 15:04"),
				updated.End.Format("15:04"))
			if notify {
				fmt.Fprintln(cmd.OutOrStdout(), gray("Attendees were notified."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Google account name (default: from config)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default: from config)")
	cmd.Flags().StringVar(&date, "date", "", "New day in YYYY-MM-DD format (default: today)")
	cmd.Flags().StringVar(&start, "start", "", "New start time in HH:MM format (required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "New length in minutes (default: keep the original)")
	cmd.Flags().StringVar(&message, "message", "", "Reason recorded in the event description")
	cmd.Flags().BoolVar(&notify, "notify", false, "Notify other attendees of the change")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}
