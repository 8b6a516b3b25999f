package domain

import (
	"regexp"
	"strings"
	"time"
)

// StackCategory groups skills on the portfolio page.
type StackCategory string

const (
	StackFrontend StackCategory = "Frontend"
	StackBackend  StackCategory = "Backend"
	StackDatabase StackCategory = "Database"
	StackDevOps   StackCategory = "DevOps"
	StackMobile   StackCategory = "Mobile"
	StackDesign   StackCategory = "Design"
	StackOther    StackCategory = "Other"
)

var StackCategories = []StackCategory{
	StackFrontend, StackBackend, StackDatabase, StackDevOps, StackMobile, StackDesign, StackOther,
}

func (c StackCategory) Valid() bool {
	for _, v := range StackCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Proficiency is the self-assessed skill level of a Stack.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

var Proficiencies = []Proficiency{
	ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert,
}

func (p Proficiency) Valid() bool {
	for _, v := range Proficiencies {
		if p == v {
			return true
		}
	}
	return false
}

const DefaultStackColor = "#6366f1"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Stack is a skill or technology entry.
type Stack struct {
	ID                string        `json:"_id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Category          StackCategory `json:"category"`
	ProficiencyLevel  Proficiency   `json:"proficiencyLevel"`
	Icon              string        `json:"icon"`
	Color             string        `json:"color"`
	Link              string        `json:"link"`
	YearsOfExperience float64       `json:"yearsOfExperience"`
	Featured          bool          `json:"featured"`
	IsActive          bool          `json:"isActive"`
	Order             int           `json:"order"`
	CreatedByID       string        `json:"-"`
	// CreatedBy is only resolved on dashboard responses.
	CreatedBy *UserSummary `json:"createdBy,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewStack returns a Stack carrying the schema defaults.
func NewStack() *Stack {
	return &Stack{
		Category:         StackOther,
		ProficiencyLevel: ProficiencyIntermediate,
		Color:            DefaultStackColor,
		IsActive:         true,
	}
}

func (s *Stack) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Color = strings.TrimSpace(s.Color)
}

func (s *Stack) Validate() error {
	if s.Name == "" {
		return Invalid("name", "is required")
	}
	if !s.Category.Valid() {
		return Invalid("category", "must be one of: %s", joinEnum(StackCategories))
	}
	if !s.ProficiencyLevel.Valid() {
		return Invalid("proficiencyLevel", "must be one of: %s", joinEnum(Proficiencies))
	}
	if s.Color != "" && !hexColor.MatchString(s.Color) {
		return Invalid("color", "must be a hex color")
	}
	if s.YearsOfExperience < 0 {
		return Invalid("yearsOfExperience", "must be greater than or equal to 0")
	}
	return nil
}

// TechnologyRef is the projection of a Stack embedded in Work responses.
func (s *Stack) TechnologyRef() TechnologyRef {
	return TechnologyRef{
		ID:       s.ID,
		Name:     s.Name,
		Color:    s.Color,
		Icon:     s.Icon,
		Category: s.Category,
	}
}

type TechnologyRef struct {
	ID       string        `json:"_id"`
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Icon     string        `json:"icon"`
	Category StackCategory `json:"category,omitempty"`
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
