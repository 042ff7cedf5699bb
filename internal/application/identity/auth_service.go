package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/identity"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/auth"
	"go.uber.org/zap"
)

const resourceUser = "user"

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	users     identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if events == nil {
		events = shared.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if blacklist == nil {
		blacklist = auth.NewMemoryTokenBlacklist()
	}
	return &AuthService{users: users, jwt: jwtService, blacklist: blacklist, events: events, logger: logger}
}

// Register creates a user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(req.Name, req.Email, req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, user.Username, user.Email, nil); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	s.publish(ctx, user.ID, shared.ActionCreated)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login authenticates by username or email and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.FindByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown account", zap.String("login", req.Login))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	pair, err := s.jwt.GenerateTokenPair(subjectOf(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.WrapDomainError(shared.CodeUnauthorized, "Failed to generate authentication tokens", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return tokenResponse(pair, user), nil
}

// Refresh exchanges a refresh token for a new pair and revokes the old one
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, tokenError(err, "refresh")
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidToken, "refresh")
	}
	// The user may have been deleted or had its role changed since the token was issued
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, "User no longer exists")
		}
		return nil, err
	}

	pair, old, err := s.jwt.RefreshTokenPair(refreshToken, subjectOf(user))
	if err != nil {
		return nil, tokenError(err, "refresh")
	}
	if err := s.blacklist.Revoke(ctx, old.ID, old.RemainingTTL()); err != nil {
		s.logger.Warn("Failed to revoke rotated refresh token", zap.Error(err))
	}
	return tokenResponse(pair, user), nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, in LogoutInput) error {
	if in.AccessJTI != "" {
		if err := s.blacklist.Revoke(ctx, in.AccessJTI, in.AccessTTL); err != nil {
			return shared.Persistence("revoke access token", err)
		}
	}
	if in.RefreshToken != "" {
		claims, err := s.jwt.ValidateRefreshToken(in.RefreshToken)
		if err != nil {
			// An expired or foreign refresh token cannot be used anyway
			s.logger.Debug("Ignoring unusable refresh token on logout", zap.Error(err))
			return nil
		}
		if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
			return shared.Persistence("revoke refresh token", err)
		}
	}
	return nil
}

// Authenticate validates an access token against the blacklist. Used by the JWT middleware.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, tokenError(err, "access")
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Profile returns the caller's own account
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes the caller's own name, email or password. A password
// change requires the current password and revokes every earlier token.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyProfile(ctx, user, req.Name, req.Email); err != nil {
		return nil, err
	}
	passwordChanged := false
	if req.NewPassword != "" {
		if !user.VerifyPassword(req.CurrentPassword) {
			return nil, shared.Validation("current password is incorrect")
		}
		if err := user.SetPassword(req.NewPassword); err != nil {
			return nil, err
		}
		passwordChanged = true
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if passwordChanged {
		s.revokeUser(ctx, user.ID)
	}
	s.publish(ctx, user.ID, shared.ActionUpdated)

	resp := ToUserResponse(user)
	return &resp, nil
}

// AdminUpdate lets an admin change any user's profile, role or password
func (s *AuthService) AdminUpdate(ctx context.Context, userID uuid.UUID, req AdminUpdateRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyProfile(ctx, user, req.Name, req.Email); err != nil {
		return nil, err
	}
	revoke := false
	if req.Role != "" {
		role, err := identity.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		revoke = role != user.Role
		user.SetRole(role)
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
		revoke = true
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if revoke {
		s.revokeUser(ctx, user.ID)
	}

	s.logger.Info("User updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))
	s.publish(ctx, user.ID, shared.ActionUpdated)

	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) applyProfile(ctx context.Context, user *identity.User, name, email string) error {
	if name == "" && email == "" {
		return nil
	}
	if name == "" {
		name = user.Name
	}
	if email == "" {
		email = user.Email
	}
	if err := user.SetProfile(name, email); err != nil {
		return err
	}
	return s.ensureUnique(ctx, "", user.Email, &user.ID)
}

func (s *AuthService) ensureUnique(ctx context.Context, username, email string, excludeID *uuid.UUID) error {
	if username != "" {
		exists, err := s.users.ExistsByUsername(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Username is already taken")
		}
	}
	exists, err := s.users.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Email is already registered")
	}
	return nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return shared.Persistence("check token blacklist", err)
	}
	if revoked {
		return tokenError(auth.ErrTokenBlacklisted, string(claims.TokenType))
	}
	revoked, err = s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
	if err != nil {
		return shared.Persistence("check token blacklist", err)
	}
	if revoked {
		return tokenError(auth.ErrTokenBlacklisted, string(claims.TokenType))
	}
	return nil
}

func (s *AuthService) revokeUser(ctx context.Context, id uuid.UUID) {
	if err := s.blacklist.RevokeUser(ctx, id.String(), s.jwt.RefreshTokenExpiration()); err != nil {
		s.logger.Warn("Failed to revoke user tokens", zap.String("user_id", id.String()), zap.Error(err))
	}
}

func (s *AuthService) publish(ctx context.Context, id uuid.UUID, action string) {
	if err := s.events.Publish(ctx, shared.NewEntityChangedEvent(resourceUser, id, action)); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("resource", resourceUser), zap.Error(err))
	}
}

func subjectOf(u *identity.User) auth.Subject {
	return auth.Subject{UserID: u.ID, Username: u.Username, Role: string(u.Role)}
}

func tokenResponse(pair *auth.TokenPair, u *identity.User) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(u),
	}
}

func tokenError(err error, kind string) *shared.DomainError {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.WrapDomainError(shared.CodeUnauthorized, "The "+kind+" token has expired", err)
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.WrapDomainError(shared.CodeUnauthorized, "Maximum token refresh count exceeded, please log in again", err)
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.WrapDomainError(shared.CodeUnauthorized, "The "+kind+" token has been revoked", err)
	default:
		return shared.WrapDomainError(shared.CodeUnauthorized, "Invalid "+kind+" token", err)
	}
}
