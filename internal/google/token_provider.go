package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenProvider supplies OAuth tokens for Google API clients. The calendar
// client takes one at construction so tests can inject tokens without
// touching the on-disk cache.
type TokenProvider interface {
	GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error)
	HasTokenForAccount(account string) bool
}

// FileTokenProvider reads tokens from per-account files under the user
// cache dir, refreshing them through the configured OAuth endpoint when
// expired.
type FileTokenProvider struct{}

func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

func (p *FileTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token from file: %w", err)
	}

	return token, nil
}

func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	return HasTokenForAccount(account)
}

// StaticTokenProvider returns the same token for every account. It never
// refreshes; intended for tests and short-lived scripted use.
type StaticTokenProvider struct {
	Token *oauth2.Token
}

func NewStaticTokenProvider(token *oauth2.Token) *StaticTokenProvider {
	return &StaticTokenProvider{Token: token}
}

func (p *StaticTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	if p.Token == nil {
		return nil, fmt.Errorf("no token configured for account %s", account)
	}
	return p.Token, nil
}

func (p *StaticTokenProvider) HasTokenForAccount(account string) bool {
	return p.Token != nil
}
