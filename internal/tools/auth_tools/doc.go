// Package auth_tools provides MCP tools for Google OAuth authentication.
//
// The OAuth flow:
//  1. Call calendar_get_auth_url to get the authorization URL for an account
//  2. User visits the URL and authorizes Calendar access
//  3. User provides the authorization code
//  4. Call calendar_save_auth_code with the code to save the token
//
// Once authenticated, all Calendar and schedule tools work with the saved
// token, which is refreshed automatically.
package auth_tools
