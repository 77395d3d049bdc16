package google

// DefaultOAuthScopes are the Google OAuth scopes the calendar agent needs.
//
// Calendar access covers reading events, creating focus/commute blocks, and
// updating attendee response status (decline/reschedule). The OpenID scopes
// identify the authorizing user.
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scope
	"https://www.googleapis.com/auth/calendar",
}
