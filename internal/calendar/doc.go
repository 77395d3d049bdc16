// Package calendar provides a client for interacting with the Google
// Calendar API.
//
// The client fetches a day's events and maps them onto the analysis
// engine's provider-independent event shape, and performs the agent's
// side-effecting actions: creating focus and commute blocks, declining
// events, and rescheduling them.
//
// The client supports multi-account authentication using the Google OAuth2
// flow via the internal/google token providers.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.ListDay("primary", time.Now(), time.Local)
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
