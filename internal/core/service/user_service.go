package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/metrics"
)

// Password bounds apply to new passwords only. bcrypt reads at most 72 bytes
// and x/crypto rejects longer input.
const (
	minPasswordLength = 6
	maxPasswordBytes  = 72
)

// UserService is the credential store: account CRUD, password hashing and lookups.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger, now: time.Now, cost: bcrypt.DefaultCost}
}

// FindByIdentifier matches identifier against username or email, case-insensitively.
func (s *UserService) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	id := domain.NormalizeIdentifier(identifier)
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByIdentifier(ctx, id)
}

// VerifyPassword compares plaintext against the stored bcrypt hash.
func (s *UserService) VerifyPassword(user *domain.User, plaintext string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}

// RejectPassword spends one bcrypt comparison at the store's cost and always
// returns false. Sign-in calls it for unknown identifiers so they take as long
// as a wrong password.
func (s *UserService) RejectPassword(plaintext string) bool {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("portfolio-unknown-user"), s.cost)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to build placeholder hash")
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(plaintext))
	}
	return false
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	now := s.now().UTC()
	user := &domain.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Username:    in.Username,
		Email:       in.Email,
		Role:        in.Role,
		IsActive:    true,
		Bio:         in.Bio,
		SocialLinks: in.SocialLinks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("user", "create").Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	return s.update(ctx, id, patch, true)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("user", "delete").Inc()
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies patch to the caller's own account; role and isActive are ignored.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ports.UserPatch) (*domain.User, error) {
	return s.update(ctx, userID, patch, false)
}

// Bootstrap creates the first admin account. It is a no-op returning the
// existing account when the username or email is already taken.
func (s *UserService) Bootstrap(ctx context.Context, in ports.CreateUserInput) (*domain.User, bool, error) {
	for _, ident := range []string{in.Username, in.Email} {
		existing, err := s.FindByIdentifier(ctx, ident)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("bootstrap lookup: %w", err)
		}
	}

	if in.Role == "" {
		in.Role = domain.RoleAdmin
	}
	user, err := s.Create(ctx, in)
	if errors.Is(err, domain.ErrDuplicateKey) {
		existing, findErr := s.FindByIdentifier(ctx, in.Username)
		if findErr != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) update(ctx context.Context, id string, patch ports.UserPatch, privileged bool) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&user.FirstName, patch.FirstName)
	applyString(&user.LastName, patch.LastName)
	applyString(&user.Username, patch.Username)
	applyString(&user.Email, patch.Email)
	applyString(&user.Bio, patch.Bio)
	if patch.SocialLinks != nil {
		user.SocialLinks = *patch.SocialLinks
	}
	if privileged {
		if patch.Role != nil {
			user.Role = *patch.Role
		}
		if patch.IsActive != nil {
			user.IsActive = *patch.IsActive
		}
	}

	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if patch.Password != nil {
		hash, err := s.hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Replace(ctx, user); err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("user", "update").Inc()
	s.logger.Info().Str("user_id", user.ID).Bool("self", !privileged).Msg("user updated")
	return user, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", domain.Invalid("password", "is required")
	}
	if len(password) < minPasswordLength {
		return "", domain.Invalid("password", "must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return "", domain.Invalid("password", "must be at most %d bytes", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
