package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/metrics"
)

// AuthService implements sign-in, sign-out and session authentication on top of
// the credential store and the session manager.
type AuthService struct {
	users    *UserService
	sessions *SessionManager
	logger   zerolog.Logger
}

func NewAuthService(users *UserService, sessions *SessionManager, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, logger: logger}
}

// SignIn verifies identifier (username or email) and password and opens a session.
// Unknown identifiers, wrong passwords and deactivated accounts all yield
// domain.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return "", nil, domain.Invalid("", "username and password are required")
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.users.RejectPassword(password)
			metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if !user.IsActive || !s.users.VerifyPassword(user, password) {
		metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
		s.logger.Info().Str("user_id", user.ID).Bool("active", user.IsActive).Msg("sign-in rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed in")
	return token, user, nil
}

// SignOut destroys the session behind token. Unknown tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.WithLabelValues("signout").Inc()
	return nil
}

// Authenticate resolves token to the caller's identity. Sessions of deleted or
// deactivated users are destroyed. When the credential store cannot be reached
// the identity snapshot held by the session is returned with a nil User.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	sess, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, sess.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound) || (err == nil && !user.IsActive):
		if err := s.sessions.Destroy(ctx, token); err != nil {
			s.logger.Warn().Err(err).Str("user_id", sess.UserID).Msg("failed to destroy session of inactive user")
		}
		metrics.SessionsRevokedTotal.WithLabelValues("inactive_user").Inc()
		return nil, domain.ErrUnauthenticated
	case err != nil:
		s.logger.Warn().Err(err).Str("user_id", sess.UserID).Msg("credential store unavailable, using session snapshot")
		return &domain.Identity{UserID: sess.UserID, Username: sess.Username, Role: sess.Role}, nil
	}

	return &domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		User:     user,
	}, nil
}
