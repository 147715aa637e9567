package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes the first rule an InsertStudent broke.
// Field is the JSON path of the offending field and may be empty when the
// body as a whole could not be read.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validate is safe for concurrent use and caches struct metadata, so one
// instance is shared by every caller.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names ("fatherName") rather than the Go
	// field names ("FatherName"), so server and client agree on the path.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks in against the InsertStudent rules. On success it returns
// a normalized copy with surrounding whitespace trimmed from every field;
// a field that is only whitespace counts as empty.
//
// Validate is a pure function: the HTTP handler and the client form both
// call it, so the two sides can never disagree about what is valid.
func Validate(in InsertStudent) (InsertStudent, *ValidationError) {
	out := InsertStudent{
		Name:        strings.TrimSpace(in.Name),
		FatherName:  strings.TrimSpace(in.FatherName),
		MotherName:  strings.TrimSpace(in.MotherName),
		BrotherName: strings.TrimSpace(in.BrotherName),
		Email:       strings.TrimSpace(in.Email),
		Grade:       strings.TrimSpace(in.Grade),
	}

	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return InsertStudent{}, &ValidationError{Message: err.Error()}
		}
		return InsertStudent{}, fromFieldError(fieldErrs[0])
	}

	return out, nil
}

func fromFieldError(fe validator.FieldError) *ValidationError {
	var msg string
	switch fe.ActualTag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return &ValidationError{Message: msg, Field: fe.Field()}
}

// DecodeInsertStudent reads a JSON InsertStudent from r and validates it.
//
// Unknown keys are ignored. An empty body, malformed JSON, a body that is
// not a single JSON object, or a value of the wrong type (e.g. "name": 42)
// is reported as a ValidationError just like a failed rule.
func DecodeInsertStudent(r io.Reader) (InsertStudent, *ValidationError) {
	var in InsertStudent

	dec := json.NewDecoder(r)
	err := dec.Decode(&in)
	if errors.Is(err, io.EOF) {
		return InsertStudent{}, &ValidationError{Message: "request body is empty"}
	}
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// An empty Field means the top-level value itself was not an
			// object, e.g. [] or "alice".
			if typeErr.Field == "" {
				return InsertStudent{}, &ValidationError{Message: "request body must be a JSON object"}
			}
			return InsertStudent{}, &ValidationError{
				Message: fmt.Sprintf("%s must be a string", typeErr.Field),
				Field:   typeErr.Field,
			}
		}
		return InsertStudent{}, &ValidationError{Message: "request body is not valid JSON"}
	}

	// Exactly one JSON value; anything after it is rejected.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return InsertStudent{}, &ValidationError{Message: "request body must contain a single JSON object"}
	}

	return Validate(in)
}
