package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// ForgotPassword issues a short-lived reset token for the account with the
// given email. There is no mail transport, so the token is returned to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("User with this email")
		}
		return nil, err
	}

	token, expires, err := s.jwt.GenerateResetToken(user.ID)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeUnauthorized, "Failed to generate reset token", err)
	}

	s.logger.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return &ForgotPasswordResponse{ResetToken: token, ExpiresAt: expires}, nil
}

// ResetPassword sets a new password from a reset token. The token is revoked
// afterwards, as is every token issued to the user before the reset.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.jwt.ValidateResetToken(token)
	if err != nil {
		return tokenError(err, "reset")
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return shared.Persistence("check token blacklist", err)
	}
	if revoked {
		return shared.NewDomainError(shared.CodeUnauthorized, "The reset token has already been used")
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return tokenError(err, "reset")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Warn("Failed to revoke reset token", zap.Error(err))
	}
	s.revokeUser(ctx, user.ID)

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	s.publish(ctx, user.ID, shared.ActionUpdated)
	return nil
}
