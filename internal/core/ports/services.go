package ports

import (
	"context"
	"time"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// AuthService signs users in and out and authenticates session tokens.
type AuthService interface {
	SignIn(ctx context.Context, identifier, password string) (token string, user *domain.User, err error)
	SignOut(ctx context.Context, token string) error
	// Authenticate resolves a session token to the caller's identity; it fails
	// with domain.ErrUnauthenticated for unknown, expired or deactivated sessions.
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// CreateUserInput carries the fields accepted when creating an account.
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Username    string
	Email       string
	Password    string
	Role        domain.Role
	IsActive    *bool
	Bio         string
	SocialLinks domain.SocialLinks
}

// UserPatch is a partial update; nil fields are left unchanged.
type UserPatch struct {
	FirstName   *string
	LastName    *string
	Username    *string
	Email       *string
	Password    *string
	Role        *domain.Role
	IsActive    *bool
	Bio         *string
	SocialLinks *domain.SocialLinks
}

// UserService is the credential store seen by the transport layer.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile ignores Role and IsActive in patch.
	UpdateProfile(ctx context.Context, userID string, patch UserPatch) (*domain.User, error)
}

// ListInput carries the public listing query parameters.
type ListInput struct {
	Category string
	Featured bool
	Limit    int
}

// StackInput carries the fields accepted when creating a stack.
type StackInput struct {
	Name              string
	Description       string
	Category          *domain.StackCategory
	ProficiencyLevel  *domain.Proficiency
	Icon              string
	Color             *string
	Link              string
	YearsOfExperience float64
	Featured          bool
	IsActive          *bool
	Order             int
}

// StackPatch is a partial stack update; nil fields are left unchanged.
type StackPatch struct {
	Name              *string
	Description       *string
	Category          *domain.StackCategory
	ProficiencyLevel  *domain.Proficiency
	Icon              *string
	Color             *string
	Link              *string
	YearsOfExperience *float64
	Featured          *bool
	IsActive          *bool
	Order             *int
}

// StackService is the Stack half of the content store.
type StackService interface {
	ListPublic(ctx context.Context, in ListInput) ([]*domain.Stack, error)
	ListAll(ctx context.Context) ([]*domain.Stack, error)
	Get(ctx context.Context, id string) (*domain.Stack, error)
	Create(ctx context.Context, in StackInput, createdBy string) (*domain.Stack, error)
	Update(ctx context.Context, id string, patch StackPatch) (*domain.Stack, error)
	Delete(ctx context.Context, id string) error
}

// WorkInput carries the fields accepted when creating a work.
type WorkInput struct {
	Title            string
	Description      string
	ShortDescription string
	Category         *domain.WorkCategory
	Status           *domain.WorkStatus
	Technologies     []string
	Images           []domain.Image
	Links            domain.WorkLinks
	Features         []string
	StartDate        *time.Time
	EndDate          *time.Time
	Featured         bool
	IsActive         *bool
	Order            int
}

// WorkPatch is a partial work update; nil fields are left unchanged.
type WorkPatch struct {
	Title            *string
	Description      *string
	ShortDescription *string
	Category         *domain.WorkCategory
	Status           *domain.WorkStatus
	Technologies     *[]string
	Images           *[]domain.Image
	Links            *domain.WorkLinks
	Features         *[]string
	Duration         *domain.Duration
	Featured         *bool
	IsActive         *bool
	Order            *int
}

// WorkService is the Work half of the content store.
type WorkService interface {
	ListPublic(ctx context.Context, in ListInput) ([]*domain.Work, error)
	GetPublic(ctx context.Context, id string) (*domain.Work, error)
	ListAll(ctx context.Context) ([]*domain.Work, error)
	Get(ctx context.Context, id string) (*domain.Work, error)
	Create(ctx context.Context, in WorkInput, createdBy string) (*domain.Work, error)
	Update(ctx context.Context, id string, patch WorkPatch) (*domain.Work, error)
	Delete(ctx context.Context, id string) error
}

// ContactInput accepts both the current {name,email,subject,message} form and
// the legacy {visitorEmail,message} form.
type ContactInput struct {
	Name         string
	Email        string
	Subject      string
	Message      string
	VisitorEmail string
}

// ContactService relays contact-form submissions.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) error
}
