// Package inputval provides input validation using waffle/pantry/validate.
//
// This package wraps pantry/validate to provide a convenient interface for
// validating decoded JSON payloads with struct tags. Define validate tags on
// the struct, populate it, and call Validate to get user-friendly messages
// keyed by JSON field name.
//
// Example:
//
//	type SocialLink struct {
//	    Platform string `json:"platform" validate:"required,socialplatform" label:"Platform"`
//	    URL      string `json:"url" validate:"required,httpurl" label:"URL"`
//	}
//
//	if res := inputval.Validate(link); res.HasErrors() {
//	    jsonutil.ValidationError(w, "Invalid social link", res.Fields())
//	    return
//	}
package inputval

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the errors as a field -> message map. When a field has
// more than one error the first one wins.
func (r *Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// customValidator is a singleton validator with custom rules registered.
var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

// emailPattern matches the addresses the contact form accepts.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// httpPattern is the loose "starts with http(s)://" check used for links.
var httpPattern = regexp.MustCompile(`^https?://.+`)

// getValidator returns the singleton validator with custom rules.
func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// httpurl: value must start with http:// or https://
		customValidator.RegisterRuleFunc("httpurl", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsValidHTTPURL(s)
			}
			return false
		}, "httpurl")

		// opthttpurl: empty, or a valid httpurl
		customValidator.RegisterRuleFunc("opthttpurl", func(value any) bool {
			if s, ok := value.(string); ok {
				return s == "" || IsValidHTTPURL(s)
			}
			return false
		}, "opthttpurl")

		// contactemail: empty, or a well-formed address
		customValidator.RegisterRuleFunc("contactemail", func(value any) bool {
			if s, ok := value.(string); ok {
				return s == "" || IsValidEmail(s)
			}
			return false
		}, "contactemail")

		customValidator.RegisterRuleFunc("skillcategory", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsValidSkillCategory(s)
			}
			return false
		}, "skillcategory")

		customValidator.RegisterRuleFunc("socialplatform", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsValidSocialPlatform(s)
			}
			return false
		}, "socialplatform")

		customValidator.RegisterRuleFunc("projectstatus", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsValidProjectStatus(s)
			}
			return false
		}, "projectstatus")

		// requiredtime: time.Time must be set
		customValidator.RegisterRuleFunc("requiredtime", func(value any) bool {
			switch t := value.(type) {
			case time.Time:
				return !t.IsZero()
			case *time.Time:
				return t != nil && !t.IsZero()
			}
			return false
		}, "requiredtime")
	})
	return customValidator
}

// Validate validates a struct and returns a Result with user-friendly errors.
// The struct should have `validate` tags for rules and optional `label` tags
// for user-friendly field names.
//
// Supported validation rules (from pantry/validate):
//   - required: field must not be empty
//   - oneof=a b c: field must be one of the specified values
//   - min=N: string length or numeric value must be >= N
//   - max=N: string length or numeric value must be <= N
//
// Custom validation rules (registered by this package):
//   - httpurl / opthttpurl: value starts with http:// or https:// (opt allows empty)
//   - contactemail: empty or a valid email address
//   - skillcategory, socialplatform, projectstatus: enumerations from models
//   - requiredtime: time.Time must not be zero
//
// Nested structs and slices are walked by pantry/validate; their errors are
// keyed by path ("skills[0].level") and labelled from the nested field.
func Validate(s any) *Result {
	result := &Result{}

	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return result
	}

	typ := reflect.TypeOf(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := fieldLabel(typ, e.Field)
			if label == "" {
				label = e.Field
			}

			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Message: formatMessage(label, e.Rule, e.Param),
			})
		}
	}

	return result
}

// ValidateAbout validates an About document including its nested lists.
func ValidateAbout(a models.About) *Result {
	return Validate(a)
}

// ValidateProject validates a Project document.
func ValidateProject(p models.Project) *Result {
	return Validate(p)
}

// fieldLabel follows a validation path such as "skills[0].level" through
// typ by JSON field name and returns the last field's "label" tag.
func fieldLabel(typ reflect.Type, path string) string {
	var label string
	for _, seg := range strings.Split(path, ".") {
		if i := strings.IndexByte(seg, '['); i >= 0 {
			seg = seg[:i]
		}
		for typ != nil && (typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice) {
			typ = typ.Elem()
		}
		if typ == nil || typ.Kind() != reflect.Struct {
			return ""
		}
		field, ok := fieldByJSONName(typ, seg)
		if !ok {
			return ""
		}
		label = field.Tag.Get("label")
		typ = field.Type
	}
	return label
}

func fieldByJSONName(typ reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}
		if fieldName == name {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

// formatMessage creates a user-friendly message for a validation rule.
func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return label + " must be at least " + param + "."
	case "max":
		return label + " must be at most " + param + "."
	case "httpurl", "opthttpurl":
		return label + " must be a valid URL starting with http:// or https://."
	case "contactemail":
		return "A valid email address is required."
	case "skillcategory":
		return label + " must be one of: " + strings.Join(models.AllSkillCategories(), ", ") + "."
	case "socialplatform":
		return label + " must be one of: " + strings.Join(models.AllSocialPlatforms(), ", ") + "."
	case "projectstatus":
		return label + " must be one of: " + strings.Join(models.AllProjectStatuses(), ", ") + "."
	case "requiredtime":
		return label + " is required."
	default:
		return label + " is invalid."
	}
}

// IsValidEmail checks if the given string looks like an email address.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return emailPattern.MatchString(email)
}

// IsValidHTTPURL checks if the given string is an http:// or https:// URL
// with something after the scheme.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if !httpPattern.MatchString(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
