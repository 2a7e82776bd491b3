package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Default Google OAuth2 endpoints.
const (
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v1/userinfo"
	googleRevokeURL    = "https://accounts.google.com/o/oauth2/revoke"
)

// GoogleProvider implements Provider against Google's OAuth2 endpoints.
type GoogleProvider struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client

	// Endpoint URLs, overridable for tests.
	TokenURL     string
	TokenInfoURL string
	UserInfoURL  string
	RevokeURL    string
}

// GoogleConfig holds the application's registration with Google.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	// Timeout bounds each outbound call so an unresponsive provider cannot
	// hang a request indefinitely. Defaults to 10s.
	Timeout time.Duration
}

// NewGoogleProvider creates a GoogleProvider with its own bounded HTTP client.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleProvider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		TokenURL:     googleTokenURL,
		TokenInfoURL: googleTokenInfoURL,
		UserInfoURL:  googleUserInfoURL,
		RevokeURL:    googleRevokeURL,
	}
}

// ClientID returns the application's client id at Google.
func (p *GoogleProvider) ClientID() string {
	return p.clientID
}

// ExchangeCode upgrades an authorization code into an access token. The
// subject id is decoded from the returned id_token; its signature is not
// checked here because the subject is cross-checked against the tokeninfo
// endpoint during verification.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
		"redirect_uri":  {"postmessage"},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: provider returned %d: %s", ErrExchangeFailed, resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		IDToken     string `json:"id_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", ErrExchangeFailed, err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("%w: response contained no access token", ErrExchangeFailed)
	}

	subject, err := subjectFromIDToken(payload.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	return &Token{AccessToken: payload.AccessToken, SubjectID: subject}, nil
}

// subjectFromIDToken extracts the "sub" claim from the id_token JWT.
func subjectFromIDToken(idToken string) (string, error) {
	if idToken == "" {
		return "", fmt.Errorf("response contained no id_token")
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(idToken, claims); err != nil {
		return "", fmt.Errorf("failed to parse id_token: %w", err)
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("id_token has no subject claim")
	}
	return subject, nil
}

// VerifyToken asks the tokeninfo endpoint who the access token was issued to
// and which user it belongs to.
func (p *GoogleProvider) VerifyToken(ctx context.Context, accessToken string) (*TokenInfo, error) {
	infoURL := fmt.Sprintf("%s?access_token=%s", p.TokenInfoURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInfo, err)
	}
	defer resp.Body.Close()

	var payload struct {
		IssuedTo string `json:"issued_to"`
		UserID   string `json:"user_id"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tokeninfo response: %v", ErrTokenInfo, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrTokenInfo, payload.Error)
	}

	return &TokenInfo{IssuedTo: payload.IssuedTo, UserID: payload.UserID}, nil
}

// FetchProfile retrieves name, picture and email from the userinfo endpoint.
func (p *GoogleProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	infoURL := fmt.Sprintf("%s?access_token=%s&alt=json", p.UserInfoURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &profile, nil
}

// RevokeToken asks the provider to revoke the access token.
func (p *GoogleProvider) RevokeToken(ctx context.Context, accessToken string) error {
	revokeURL := fmt.Sprintf("%s?token=%s", p.RevokeURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, revokeURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build revoke request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke endpoint returned %d", resp.StatusCode)
	}
	return nil
}
