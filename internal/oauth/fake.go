package oauth

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeIdentity is one canned identity a FakeProvider hands out.
type FakeIdentity struct {
	Subject string
	Profile Profile
}

// FakeProvider is an in-memory Provider used by tests and local development.
// Authorization codes map to canned identities; issued tokens are remembered
// so VerifyToken and FetchProfile can resolve them later.
type FakeProvider struct {
	AppClientID string
	// Codes maps an authorization code to the identity it logs in.
	Codes map[string]FakeIdentity

	// Overrides to simulate provider-side verification failures.
	IssuedToOverride string
	UserIDOverride   string
	RevokeErr        error

	mu      sync.Mutex
	tokens  map[string]FakeIdentity
	revoked []string
}

// NewFakeProvider creates a FakeProvider issuing tokens for the given client id.
func NewFakeProvider(clientID string) *FakeProvider {
	return &FakeProvider{
		AppClientID: clientID,
		Codes:       make(map[string]FakeIdentity),
		tokens:      make(map[string]FakeIdentity),
	}
}

// ClientID returns the application's client id at the fake provider.
func (p *FakeProvider) ClientID() string {
	return p.AppClientID
}

// ExchangeCode resolves a canned authorization code into a token.
func (p *FakeProvider) ExchangeCode(_ context.Context, code string) (*Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.Codes[code]
	if !ok {
		return nil, fmt.Errorf("%w: unknown code %q", ErrExchangeFailed, code)
	}
	accessToken := "fake-token-" + identity.Subject
	p.tokens[accessToken] = identity
	return &Token{AccessToken: accessToken, SubjectID: identity.Subject}, nil
}

// VerifyToken reports the token's audience and owner, honoring any overrides.
func (p *FakeProvider) VerifyToken(_ context.Context, accessToken string) (*TokenInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.tokens[accessToken]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", ErrTokenInfo)
	}

	info := &TokenInfo{IssuedTo: p.AppClientID, UserID: identity.Subject}
	if p.IssuedToOverride != "" {
		info.IssuedTo = p.IssuedToOverride
	}
	if p.UserIDOverride != "" {
		info.UserID = p.UserIDOverride
	}
	return info, nil
}

// FetchProfile returns the profile behind an issued token.
func (p *FakeProvider) FetchProfile(_ context.Context, accessToken string) (*Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.tokens[accessToken]
	if !ok {
		return nil, fmt.Errorf("unknown token %q", accessToken)
	}
	profile := identity.Profile
	return &profile, nil
}

// RevokeToken records the revocation and forgets the token.
func (p *FakeProvider) RevokeToken(_ context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.RevokeErr != nil {
		return p.RevokeErr
	}
	delete(p.tokens, accessToken)
	p.revoked = append(p.revoked, accessToken)
	return nil
}

// Revoked reports whether a token was revoked.
func (p *FakeProvider) Revoked(accessToken string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, token := range p.revoked {
		if strings.EqualFold(token, accessToken) {
			return true
		}
	}
	return false
}
