package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaushalvivek/calendar-agent/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Calendar access for an account",
		Long: `Run the OAuth flow for a Google account. Prints an authorization URL,
waits for the code, and stores the resulting token. Tokens are refreshed
automatically afterwards.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in the environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if google.HasTokenForAccount(account) {
				fmt.Fprintf(out, "Account %q is already authorized. Re-authorizing replaces the stored token.\n\n", account)
			}

			authURL := google.GetAuthURLForAccount(account)
			fmt.Fprintf(out, "Visit the URL below, grant Calendar access, and paste the code.\n\n  %s\n\nCode: ", authURL)

			reader := bufio.NewReader(cmd.InOrStdin())
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveTokenForAccount(context.Background(), account, code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintf(out, "\n%s Token saved for account %q.\n", green("Authorized."), account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize")
	return cmd
}
