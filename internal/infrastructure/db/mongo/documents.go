package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// Field names follow the camelCase layout of the existing collections.

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"firstName"`
	LastName    string             `bson:"lastName"`
	Username    string             `bson:"username"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Role        string             `bson:"role"`
	IsActive    bool               `bson:"isActive"`
	Bio         string             `bson:"bio"`
	SocialLinks domain.SocialLinks `bson:"socialLinks"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newUserDoc(u *domain.User) userDoc {
	oid, _ := objectID(u.ID)
	return userDoc{
		ID:          oid,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.PasswordHash,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		Bio:         u.Bio,
		SocialLinks: u.SocialLinks,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           hexOrEmpty(d.ID),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         domain.Role(d.Role),
		IsActive:     d.IsActive,
		Bio:          d.Bio,
		SocialLinks:  d.SocialLinks,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type stackDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Description       string             `bson:"description"`
	Category          string             `bson:"category"`
	ProficiencyLevel  string             `bson:"proficiencyLevel"`
	Icon              string             `bson:"icon"`
	Color             string             `bson:"color"`
	Link              string             `bson:"link"`
	YearsOfExperience float64            `bson:"yearsOfExperience"`
	Featured          bool               `bson:"featured"`
	IsActive          bool               `bson:"isActive"`
	Order             int                `bson:"order"`
	CreatedBy         primitive.ObjectID `bson:"createdBy,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func newStackDoc(s *domain.Stack) stackDoc {
	oid, _ := objectID(s.ID)
	creator, _ := objectID(s.CreatedByID)
	return stackDoc{
		ID:                oid,
		Name:              s.Name,
		Description:       s.Description,
		Category:          string(s.Category),
		ProficiencyLevel:  string(s.ProficiencyLevel),
		Icon:              s.Icon,
		Color:             s.Color,
		Link:              s.Link,
		YearsOfExperience: s.YearsOfExperience,
		Featured:          s.Featured,
		IsActive:          s.IsActive,
		Order:             s.Order,
		CreatedBy:         creator,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (d stackDoc) toDomain() *domain.Stack {
	return &domain.Stack{
		ID:                hexOrEmpty(d.ID),
		Name:              d.Name,
		Description:       d.Description,
		Category:          domain.StackCategory(d.Category),
		ProficiencyLevel:  domain.Proficiency(d.ProficiencyLevel),
		Icon:              d.Icon,
		Color:             d.Color,
		Link:              d.Link,
		YearsOfExperience: d.YearsOfExperience,
		Featured:          d.Featured,
		IsActive:          d.IsActive,
		Order:             d.Order,
		CreatedByID:       hexOrEmpty(d.CreatedBy),
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

type workDoc struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty"`
	Title            string               `bson:"title"`
	Description      string               `bson:"description"`
	ShortDescription string               `bson:"shortDescription"`
	Category         string               `bson:"category"`
	Status           string               `bson:"status"`
	Technologies     []primitive.ObjectID `bson:"technologies"`
	Images           []domain.Image       `bson:"images"`
	Links            domain.WorkLinks     `bson:"links"`
	Features         []string             `bson:"features"`
	Duration         domain.Duration      `bson:"duration"`
	Featured         bool                 `bson:"featured"`
	IsActive         bool                 `bson:"isActive"`
	Order            int                  `bson:"order"`
	CreatedBy        primitive.ObjectID   `bson:"createdBy,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt"`
}

func newWorkDoc(w *domain.Work) workDoc {
	oid, _ := objectID(w.ID)
	creator, _ := objectID(w.CreatedByID)
	return workDoc{
		ID:               oid,
		Title:            w.Title,
		Description:      w.Description,
		ShortDescription: w.ShortDescription,
		Category:         string(w.Category),
		Status:           string(w.Status),
		Technologies:     objectIDs(w.TechnologyIDs),
		Images:           nonNilSlice(w.Images),
		Links:            w.Links,
		Features:         nonNilSlice(w.Features),
		Duration:         w.Duration,
		Featured:         w.Featured,
		IsActive:         w.IsActive,
		Order:            w.Order,
		CreatedBy:        creator,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

func (d workDoc) toDomain() *domain.Work {
	techs := make([]string, len(d.Technologies))
	for i, oid := range d.Technologies {
		techs[i] = oid.Hex()
	}
	return &domain.Work{
		ID:               hexOrEmpty(d.ID),
		Title:            d.Title,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Category:         domain.WorkCategory(d.Category),
		Status:           domain.WorkStatus(d.Status),
		TechnologyIDs:    techs,
		Images:           d.Images,
		Links:            d.Links,
		Features:         d.Features,
		Duration:         d.Duration,
		Featured:         d.Featured,
		IsActive:         d.IsActive,
		Order:            d.Order,
		CreatedByID:      hexOrEmpty(d.CreatedBy),
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

type sessionDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Username  string    `bson:"username"`
	Role      string    `bson:"role"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

func (d sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		UserID:    d.UserID,
		Username:  d.Username,
		Role:      domain.Role(d.Role),
		ExpiresAt: d.ExpiresAt.UTC(),
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
