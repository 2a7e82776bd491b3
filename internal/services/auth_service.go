package services

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"
	"catalog/internal/oauth"
	"catalog/internal/repositories"
)

// Errors from the provider handshake verification steps.
var (
	// ErrAudienceMismatch indicates the access token was issued to a
	// different application.
	ErrAudienceMismatch = errors.New("token's client ID does not match the application")
	// ErrSubjectMismatch indicates the token's reported owner differs from
	// the subject the token was exchanged for.
	ErrSubjectMismatch = errors.New("token's user ID does not match the authenticated subject")
)

// AuthService resolves session identities into stored users and capability
// sets, and runs the OAuth login/disconnect handshakes against the provider.
type AuthService struct {
	userRepo repositories.UserRepository
	refRepo  repositories.ReferenceRepository
	provider oauth.Provider
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, refRepo repositories.ReferenceRepository, provider oauth.Provider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		refRepo:  refRepo,
		provider: provider,
	}
}

// CurrentUser resolves the stored user for a session's (login-type source,
// email) pair. A missing user surfaces as repositories.ErrNotFound.
func (s *AuthService) CurrentUser(source, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("no session email: %w", repositories.ErrNotFound)
	}
	loginType, err := s.refRepo.GetLoginTypeBySource(source)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByEmailAndLoginType(email, loginType.ID)
}

// Capabilities derives the capability set from a user's role collection.
// A nil user (anonymous session) yields both flags false.
func (s *AuthService) Capabilities(user *models.User) models.Capability {
	if user == nil {
		return models.Capability{}
	}
	return models.ResolveCapability(user.Roles)
}

// SessionCapabilities resolves the session identity and returns its
// capability set, treating any resolution failure as anonymous.
func (s *AuthService) SessionCapabilities(source, email string) models.Capability {
	user, err := s.CurrentUser(source, email)
	if err != nil {
		return models.Capability{}
	}
	return s.Capabilities(user)
}

// Identity is the session-relevant result of a successful provider login.
type Identity struct {
	AccessToken string
	SubjectID   string
	Profile     oauth.Profile
}

// ConnectWithCode runs the full provider handshake: exchanges the
// authorization code, verifies the token's audience and subject consistency,
// fetches the profile, and creates or refreshes the local user record.
func (s *AuthService) ConnectWithCode(ctx context.Context, source, code string) (*Identity, *models.User, error) {
	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	info, err := s.provider.VerifyToken(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	if info.UserID != token.SubjectID {
		return nil, nil, ErrSubjectMismatch
	}
	if info.IssuedTo != s.provider.ClientID() {
		return nil, nil, ErrAudienceMismatch
	}

	profile, err := s.provider.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.upsertUser(source, profile)
	if err != nil {
		return nil, nil, err
	}

	identity := &Identity{
		AccessToken: token.AccessToken,
		SubjectID:   token.SubjectID,
		Profile:     *profile,
	}
	return identity, user, nil
}

// upsertUser creates the user on first login or refreshes name/picture on
// subsequent ones. First-time users receive both admin and contrib roles,
// matching the application's permissive onboarding default.
func (s *AuthService) upsertUser(source string, profile *oauth.Profile) (*models.User, error) {
	loginType, err := s.refRepo.GetLoginTypeBySource(source)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmailAndLoginType(profile.Email, loginType.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		contrib, err := s.refRepo.GetRoleByPermission(models.PermissionContrib)
		if err != nil {
			return nil, err
		}
		admin, err := s.refRepo.GetRoleByPermission(models.PermissionAdmin)
		if err != nil {
			return nil, err
		}

		newUser := &models.User{
			Name:        profile.Name,
			Picture:     profile.Picture,
			Email:       profile.Email,
			LoginTypeID: loginType.ID,
			Roles:       []models.Role{*contrib, *admin},
		}
		if err := s.userRepo.Create(newUser); err != nil {
			return nil, fmt.Errorf("failed to create user on first login: %w", err)
		}
		return newUser, nil
	}
	if err != nil {
		return nil, err
	}

	// Returning user: refresh stored identity fields in case they changed.
	user.Name = profile.Name
	user.Picture = profile.Picture
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to refresh user on login: %w", err)
	}
	return user, nil
}

// Disconnect revokes the stored access token with the provider. Callers clear
// the session regardless of the outcome.
func (s *AuthService) Disconnect(ctx context.Context, accessToken string) error {
	return s.provider.RevokeToken(ctx, accessToken)
}

// Users lists all users who have logged in at least once.
func (s *AuthService) Users() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// LoginTypes lists the seeded identity-provider sources.
func (s *AuthService) LoginTypes() ([]models.LoginType, error) {
	return s.refRepo.GetLoginTypes()
}

// Roles lists the seeded permission levels.
func (s *AuthService) Roles() ([]models.Role, error) {
	return s.refRepo.GetRoles()
}
