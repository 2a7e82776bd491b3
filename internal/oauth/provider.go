// Package oauth isolates the external identity provider behind a small
// interface so the rest of the application stays provider-agnostic and
// testable against a fake implementation.
package oauth

import (
	"context"
	"errors"
)

// Errors returned by provider implementations.
var (
	// ErrExchangeFailed indicates the authorization code could not be
	// upgraded into an access token.
	ErrExchangeFailed = errors.New("failed to exchange authorization code")
	// ErrTokenInfo indicates the provider rejected or could not verify the
	// access token.
	ErrTokenInfo = errors.New("failed to verify access token")
)

// Token is the result of exchanging an authorization code. SubjectID is the
// provider's stable user identifier taken from the id_token.
type Token struct {
	AccessToken string
	SubjectID   string
}

// TokenInfo is the provider's report about an access token.
type TokenInfo struct {
	// IssuedTo is the client id the token was issued to.
	IssuedTo string
	// UserID is the provider-side user the token belongs to.
	UserID string
}

// Profile holds the identity fields fetched from the userinfo endpoint.
type Profile struct {
	Name    string
	Picture string
	Email   string
}

// Provider is the contract with an external OAuth identity provider. All
// methods are blocking network calls and honor the context deadline.
type Provider interface {
	// ClientID returns the application's client id at this provider,
	// used for the audience check.
	ClientID() string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	VerifyToken(ctx context.Context, accessToken string) (*TokenInfo, error)
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
	RevokeToken(ctx context.Context, accessToken string) error
}
