package domain

import (
	"errors"
	"testing"
)

func TestNewStack_Defaults(t *testing.T) {
	s := NewStack()
	if s.Category != StackOther || s.ProficiencyLevel != ProficiencyIntermediate {
		t.Fatalf("unexpected enum defaults: %s %s", s.Category, s.ProficiencyLevel)
	}
	if s.Color != DefaultStackColor || !s.IsActive || s.Featured || s.Order != 0 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestStack_Validate(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Stack)
		field string
	}{
		{"valid", func(*Stack) {}, ""},
		{"short hex color", func(s *Stack) { s.Color = "#fff" }, ""},
		{"missing name", func(s *Stack) { s.Name = "" }, "name"},
		{"category outside set", func(s *Stack) { s.Category = "Blockchain" }, "category"},
		{"bad proficiency", func(s *Stack) { s.ProficiencyLevel = "Guru" }, "proficiencyLevel"},
		{"bad color", func(s *Stack) { s.Color = "blue" }, "color"},
		{"negative years", func(s *Stack) { s.YearsOfExperience = -1 }, "yearsOfExperience"},
	}

	for _, tc := range cases {
		s := NewStack()
		s.Name = "Go"
		s.Category = StackBackend
		tc.mut(s)

		err := s.Validate()
		if tc.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Errorf("%s: expected error on %q, got %v", tc.name, tc.field, err)
		}
	}
}

func TestUser_NormalizeAndValidate(t *testing.T) {
	u := &User{FirstName: " Ada ", LastName: "Lovelace", Username: " Ada ", Email: "ADA@Example.com", Role: RoleAdmin}
	u.Normalize()

	if u.Username != "ada" || u.Email != "ada@example.com" || u.FirstName != "Ada" {
		t.Fatalf("unexpected normalization: %+v", u)
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u.Role = "root"
	if err := u.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}

	u.Role = RoleUser
	u.Email = "not-an-email"
	if err := u.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
}

func TestEntityErrorsMatchTaxonomy(t *testing.T) {
	if !errors.Is(ErrStackNotFound, ErrNotFound) || !errors.Is(ErrWorkNotFound, ErrNotFound) {
		t.Fatal("entity not-found errors must match ErrNotFound")
	}
	if !errors.Is(ErrUserExists, ErrDuplicateKey) {
		t.Fatal("ErrUserExists must match ErrDuplicateKey")
	}
	if !errors.Is(ErrNotifierTimeout, ErrNotifier) {
		t.Fatal("ErrNotifierTimeout must match ErrNotifier")
	}
}
