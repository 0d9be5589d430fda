package validator

import (
	"reflect"
	"strings"
	"unicode"

	apperrors "github.com/SAP-F-2025/career-orientation-service/internal/errors"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the service's custom rules
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates s and returns ValidationErrors on rule failures
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Engine exposes the underlying validator, e.g. for gin's binding
func (v *Validator) Engine() *validator.Validate {
	return v.structValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_keys", validateQuestionKeys)
	validate.RegisterValidation("access_state", validateAccessState)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("password", validatePassword)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateQuestionKeys checks every key of a map field.
func validateQuestionKeys(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Map || field.Type().Key().Kind() != reflect.String {
		return false
	}
	for _, key := range field.MapKeys() {
		if !scoring.ValidQuestionKey(key.String()) {
			return false
		}
	}
	return true
}

func validateAccessState(fl validator.FieldLevel) bool {
	return models.AccessState(fl.Field().String()).Valid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleUser, models.RoleAdmin:
		return true
	}
	return false
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
