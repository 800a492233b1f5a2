package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/villageedu/api/internal/app/models"
)

var (
	registerOnce sync.Once
	registerErr  error

	// standalone instance for values validated outside request binding
	validate = newValidator()
)

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterGinValidators installs the domain rules on gin's binding engine. Safe to call repeatedly.
func RegisterGinValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		registerErr = registerRules(v)
	})
	return registerErr
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = registerRules(v)
	return v
}

func registerRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		"course_category": func(fl validator.FieldLevel) bool {
			return models.CourseCategoryID(fl.Field().String()).IsValid()
		},
		"course_class": func(fl validator.FieldLevel) bool {
			return models.IsValidCourseClass(fl.Field().String())
		},
		"admin_role": func(fl validator.FieldLevel) bool {
			return models.AdminRole(fl.Field().String()).IsValid()
		},
		"contact_language": func(fl validator.FieldLevel) bool {
			return models.ContactLanguage(fl.Field().String()).IsValid()
		},
		"contact_category": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseContactCategory(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// IsEmail reports whether s is a syntactically valid email address
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// FormatValidationErrors turns a binding error into per-field messages.
// ok is false when err is not a validation error (e.g. malformed JSON).
func FormatValidationErrors(err error) (fields []FieldError, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	for _, e := range verrs {
		fields = append(fields, FieldError{Field: e.Field(), Message: formatFieldError(e)})
	}
	return fields, true
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "lte":
		return e.Field() + " must be less than or equal to " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "uuid":
		return e.Field() + " must be a valid id"
	case "course_category":
		return e.Field() + " must be one of: hindi, english, math, science, computer"
	case "course_class":
		return e.Field() + " must be a class from 1st Class to 12th Class"
	case "admin_role":
		return e.Field() + " must be admin or superadmin"
	case "contact_language":
		return e.Field() + " must be hindi or english"
	case "contact_category":
		return e.Field() + " must be Student, Parent, Teacher, School Admin or Other"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
