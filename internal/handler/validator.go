package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxActorLength bounds actor identifiers accepted over HTTP
const MaxActorLength = 128

const msgInvalidRequestFormat = "Invalid request format"

// Validator checks decoded request bodies against their validate tags
type Validator struct {
	validate *validator.Validate
}

var (
	shared     *Validator
	sharedOnce sync.Once
)

// InitValidator builds the shared validator. GetValidator calls it lazily.
func InitValidator() {
	shared = newValidator()
}

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	sharedOnce.Do(func() {
		if shared == nil {
			InitValidator()
		}
	})
	return shared
}

func newValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("actor", validateActor); err != nil {
		panic(fmt.Sprintf("register actor validation: %v", err))
	}
	return &Validator{validate: v}
}

// jsonFieldName reports fields by their wire name
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// fixed messages per tag; tags with a parameter are formatted in tagMessage
var tagMessages = map[string]string{
	"required": "This field is required",
	"actor":    "Invalid actor",
	"dive":     "Invalid entry",
}

func tagMessage(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "max":
		return "Must be at most " + fe.Param()
	case "min":
		return "Must be at least " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	}
	return "Invalid value"
}

// FormatValidationError maps each failing field, by json name, to a message
// that does not expose Go type names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": msgInvalidRequestFormat}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[strings.ToLower(fe.Field())] = tagMessage(fe)
	}
	return out
}

// validateActor accepts printable identifiers without whitespace.
// Empty values pass so 'required' decides.
func validateActor(fl validator.FieldLevel) bool {
	actor := fl.Field().String()
	if actor == "" {
		return true
	}
	if len(actor) > MaxActorLength {
		return false
	}
	return strings.IndexFunc(actor, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) < 0
}
