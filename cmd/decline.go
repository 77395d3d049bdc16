package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaushalvivek/calendar-agent/internal/calendar"
)

func newDeclineCmd() *cobra.Command {
	var (
		account    string
		calendarID string
		date       string
		title      string
		notify     bool
	)

	cmd := &cobra.Command{
		Use:   "decline [eventID]",
		Short: "Decline a meeting",
		Long: `Decline a meeting by event ID, or find it by title on a given day.
Declining sets your response status on the event; other attendees are only
notified with --notify.`,
		Example: `  calagent decline abc123def456
  calagent decline --title "weekly sync" --date 2025-03-12 --notify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && title == "" {
				return fmt.Errorf("either an event ID or --title is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			client, err := calendar.NewClientForAccount(ctx, pick(cfg.Account, account))
			if err != nil {
				return fmt.Errorf("failed to create Calendar client: %w", err)
			}

			calID := pick(cfg.Calendar, calendarID)

			eventID := ""
			summary := ""
			if len(args) == 1 {
				eventID = args[0]
			} else {
				day, _, err := resolveDay(cfg, date)
				if err != nil {
					return err
				}
				event, err := client.FindEventByTitle(calID, title, day, day.AddDate(0, 0, 1))
				if err != nil {
					return fmt.Errorf("failed to search events: %w", err)
				}
				if event == nil {
					return fmt.Errorf("no event matching %q on %s", title, day.Format("2006-01-02"))
				}
				eventID = event.ID
				summary = event.Summary
			}

			if err := client.DeclineEvent(calID, eventID, notify); err != nil {
				return fmt.Errorf("failed to decline event: %w", err)
			}

			if summary != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", red("Declined"), bold(summary))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s event %s\n", red("Declined"), eventID)
			}
			if notify {
				fmt.Fprintln(cmd.OutOrStdout(), gray("Attendees were notified."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Google account name (default: from config)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default: from config)")
	cmd.Flags().StringVar(&date, "date", "", "Day to search when using --title (default: today)")
	cmd.Flags().StringVar(&title, "title", "", "Find the event by title substring instead of ID")
	cmd.Flags().BoolVar(&notify, "notify", false, "Notify other attendees of the decline")
	return cmd
}
