package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var Validate = newValidator()

// messages maps "<json field>.<tag>" to the text shown to clients.
var messages = map[string]string{
	"title.notblank":            "Title is required",
	"startDateTime.required":    "Start date/time is required",
	"endDateTime.required":      "End date/time is required",
	"endDateTime.endafterstart": "End date/time must be after start date/time",
}

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rule a payload broke.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(eventInputStructLevel, EventInput{})
	return v
}

func eventInputStructLevel(sl validator.StructLevel) {
	input := sl.Current().Interface().(EventInput)
	if input.StartDateTime == nil || input.EndDateTime == nil {
		return
	}
	if !input.EndDateTime.After(input.StartDateTime.Time) {
		sl.ReportError(input.EndDateTime, "endDateTime", "EndDateTime", "endafterstart", "")
	}
}

// ValidateEventInput checks the mutate payload and reports all violations at once.
func ValidateEventInput(input *EventInput) error {
	if input == nil {
		return &ValidationError{Violations: []Violation{{Field: "body", Message: "Request body is required"}}}
	}

	err := Validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		violations = append(violations, Violation{Field: fe.Field(), Message: msg})
	}
	return &ValidationError{Violations: violations}
}
