package predictor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldIssue is one rejected input field.
type FieldIssue struct {
	Field   string `json:"field" yaml:"field"`
	Tag     string `json:"tag" yaml:"tag"`
	Param   string `json:"param,omitempty" yaml:"param,omitempty"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// ValidationError is returned when an Input violates a widget constraint.
type ValidationError struct {
	Issues []FieldIssue `json:"issues" yaml:"issues"`
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		messages[i] = issue.Message
	}
	return strings.Join(messages, "; ")
}

// Code is the machine-readable error code used in API responses.
func (e *ValidationError) Code() string {
	return "VALIDATION_ERROR"
}

// IsValidationError reports whether err carries rejected input.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their wire names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks in against the form constraints.
func (in Input) Validate() error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Issues: []FieldIssue{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	issues := make([]FieldIssue, len(fieldErrs))
	for i, fe := range fieldErrs {
		issues[i] = FieldIssue{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translate(fe),
		}
	}
	return &ValidationError{Issues: issues}
}

var messageWithParam = map[string]string{
	"gte": "%s must be greater than or equal to %s",
	"lte": "%s must be less than or equal to %s",
	"gt":  "%s must be greater than %s",
	"lt":  "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	if template, ok := messageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
