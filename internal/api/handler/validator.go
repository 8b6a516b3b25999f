package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in messages follow the json tags.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, valid := range map[string]func(string) bool{
		"stackcategory": func(s string) bool { return domain.StackCategory(s).Valid() },
		"proficiency":   func(s string) bool { return domain.Proficiency(s).Valid() },
		"workcategory":  func(s string) bool { return domain.WorkCategory(s).Valid() },
		"workstatus":    func(s string) bool { return domain.WorkStatus(s).Valid() },
		"role":          func(s string) bool { return domain.Role(s).Valid() },
	} {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are returned as a
// *domain.ValidationError so the error handler answers 400.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return &domain.ValidationError{Message: strings.Join(msgs, "; ")}
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	// Namespace is "<struct>.<path>"; keep the path for nested fields.
	if _, path, ok := strings.Cut(fe.Namespace(), "."); ok {
		field = path
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "hexcolor":
		return field + " must be a hex color"
	case "mongodb":
		return field + " must be a valid id"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "stackcategory":
		return field + " must be one of: " + enumList(domain.StackCategories)
	case "proficiency":
		return field + " must be one of: " + enumList(domain.Proficiencies)
	case "workcategory":
		return field + " must be one of: " + enumList(domain.WorkCategories)
	case "workstatus":
		return field + " must be one of: " + enumList(domain.WorkStatuses)
	case "role":
		return fmt.Sprintf("%s must be one of: %s, %s, %s", field, domain.RoleAdmin, domain.RoleModerator, domain.RoleUser)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func enumList[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
