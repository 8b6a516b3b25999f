package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// messageResponse is the envelope of acknowledgements and of all errors.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	Message string             `json:"message"`
	User    domain.UserProfile `json:"user"`
}

type checkAuthResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *domain.UserProfile `json:"user,omitempty"`
}

// --- Contact ---

// contactRequest fields are all optional here; the contact service fills the
// legacy {visitorEmail, message} form before checking required fields.
type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email" validate:"omitempty,email"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	VisitorEmail string `json:"visitorEmail" validate:"omitempty,email"`
}

// --- Users ---

type socialLinksRequest struct {
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Website  string `json:"website"`
}

type createUserRequest struct {
	FirstName   string             `json:"firstName"   validate:"required"`
	LastName    string             `json:"lastName"    validate:"required"`
	Username    string             `json:"username"    validate:"required"`
	Email       string             `json:"email"       validate:"required,email"`
	Password    string             `json:"password"    validate:"required,min=6"`
	Role        *string            `json:"role"        validate:"omitempty,role"`
	IsActive    *bool              `json:"isActive"`
	Bio         string             `json:"bio"`
	SocialLinks socialLinksRequest `json:"socialLinks"`
}

type updateUserRequest struct {
	FirstName   *string             `json:"firstName"`
	LastName    *string             `json:"lastName"`
	Username    *string             `json:"username"`
	Email       *string             `json:"email"    validate:"omitempty,email"`
	Password    *string             `json:"password" validate:"omitempty,min=6"`
	Role        *string             `json:"role"     validate:"omitempty,role"`
	IsActive    *bool               `json:"isActive"`
	Bio         *string             `json:"bio"`
	SocialLinks *socialLinksRequest `json:"socialLinks"`
}

// --- Stacks ---

type createStackRequest struct {
	Name              string   `json:"name"              validate:"required"`
	Description       string   `json:"description"`
	Category          *string  `json:"category"          validate:"omitempty,stackcategory"`
	ProficiencyLevel  *string  `json:"proficiencyLevel"  validate:"omitempty,proficiency"`
	Icon              string   `json:"icon"`
	Color             *string  `json:"color"             validate:"omitempty,hexcolor"`
	Link              string   `json:"link"`
	YearsOfExperience *float64 `json:"yearsOfExperience" validate:"omitempty,gte=0"`
	Featured          bool     `json:"featured"`
	IsActive          *bool    `json:"isActive"`
	Order             int      `json:"order"`
}

type updateStackRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Category          *string  `json:"category"          validate:"omitempty,stackcategory"`
	ProficiencyLevel  *string  `json:"proficiencyLevel"  validate:"omitempty,proficiency"`
	Icon              *string  `json:"icon"`
	Color             *string  `json:"color"             validate:"omitempty,hexcolor"`
	Link              *string  `json:"link"`
	YearsOfExperience *float64 `json:"yearsOfExperience" validate:"omitempty,gte=0"`
	Featured          *bool    `json:"featured"`
	IsActive          *bool    `json:"isActive"`
	Order             *int     `json:"order"`
}

// --- Works ---

type imageRequest struct {
	URL     string `json:"url"     validate:"required"`
	Caption string `json:"caption"`
	IsMain  bool   `json:"isMain"`
}

type linksRequest struct {
	Live          string `json:"live"`
	Github        string `json:"github"`
	Documentation string `json:"documentation"`
}

type durationRequest struct {
	StartDate *dateValue `json:"startDate"`
	EndDate   *dateValue `json:"endDate"`
}

type createWorkRequest struct {
	Title            string          `json:"title"        validate:"required"`
	Description      string          `json:"description"  validate:"required"`
	ShortDescription string          `json:"shortDescription"`
	Category         *string         `json:"category"     validate:"omitempty,workcategory"`
	Status           *string         `json:"status"       validate:"omitempty,workstatus"`
	Technologies     []string        `json:"technologies" validate:"dive,mongodb"`
	Images           []imageRequest  `json:"images"       validate:"dive"`
	Links            linksRequest    `json:"links"`
	Features         []string        `json:"features"`
	Duration         durationRequest `json:"duration"`
	Featured         bool            `json:"featured"`
	IsActive         *bool           `json:"isActive"`
	Order            int             `json:"order"`
}

type updateWorkRequest struct {
	Title            *string          `json:"title"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription"`
	Category         *string          `json:"category"     validate:"omitempty,workcategory"`
	Status           *string          `json:"status"       validate:"omitempty,workstatus"`
	Technologies     *[]string        `json:"technologies" validate:"omitempty,dive,mongodb"`
	Images           *[]imageRequest  `json:"images"       validate:"omitempty,dive"`
	Links            *linksRequest    `json:"links"`
	Features         *[]string        `json:"features"`
	Duration         *durationRequest `json:"duration"`
	Featured         *bool            `json:"featured"`
	IsActive         *bool            `json:"isActive"`
	Order            *int             `json:"order"`
}

// dateValue accepts RFC 3339 timestamps and bare YYYY-MM-DD dates, the two
// shapes HTML date inputs and JSON serialisers send. null and "" mean unset.
type dateValue struct {
	time.Time
}

func (d *dateValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Invalid("duration", "dates must be strings")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return domain.Invalid("duration", "invalid date %q", s)
}

// ptr returns nil for an absent or empty date.
func (d *dateValue) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
