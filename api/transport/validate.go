package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/taskmanager/domain"
)

type ProblemKind string

const (
	ProblemMalformed  ProblemKind = "malformed"
	ProblemMissing    ProblemKind = "missing"
	ProblemOutOfRange ProblemKind = "out_of_range"
	ProblemInvalid    ProblemKind = "invalid"
)

// Problem describes why a request body was refused.
type Problem struct {
	Kind    ProblemKind `json:"kind"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}

func (p *Problem) Error() string {
	return p.Message
}

// Err classifies the problem as a validation error.
func (p *Problem) Err() error {
	return domain.WrapError(domain.ErrCodeInvalid, p.Message, p)
}

// Decoded holds either a validated value or the problem that prevented decoding it.
type Decoded[T any] struct {
	Value   T
	Problem *Problem
}

func (d Decoded[T]) OK() bool {
	return d.Problem == nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339, datetime-local values and plain dates. Zone-less values are UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return domain.IsValidStatus(fl.Field().String())
	})
	return v
}

// Decode parses a JSON body into T and validates it before any use case sees it.
func Decode[T any](body []byte) Decoded[T] {
	var out Decoded[T]
	if len(strings.TrimSpace(string(body))) == 0 {
		out.Problem = &Problem{Kind: ProblemMalformed, Message: "request body is required"}
		return out
	}
	if err := json.Unmarshal(body, &out.Value); err != nil {
		out.Problem = malformed(err)
		return out
	}
	if err := validate.Struct(&out.Value); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return out
		}
		out.Problem = fromValidation(err)
	}
	return out
}

func malformed(err error) *Problem {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &Problem{
			Kind:    ProblemMalformed,
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()),
		}
	}
	return &Problem{Kind: ProblemMalformed, Message: "request body is not valid JSON"}
}

func fromValidation(err error) *Problem {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &Problem{Kind: ProblemInvalid, Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &Problem{Kind: ProblemMissing, Field: field, Message: field + " is required"}
	case "min", "max", "gte", "lte":
		return &Problem{Kind: ProblemOutOfRange, Field: field, Message: fmt.Sprintf("%s must be between %d and %d", field, domain.MinPriority, domain.MaxPriority)}
	case "email":
		return &Problem{Kind: ProblemInvalid, Field: field, Message: field + " must be a valid email address"}
	case "timestamp":
		return &Problem{Kind: ProblemInvalid, Field: field, Message: field + " must be a date or date-time"}
	case "taskstatus":
		return &Problem{Kind: ProblemInvalid, Field: field, Message: field + " must be pending or finished"}
	}
	return &Problem{Kind: ProblemInvalid, Field: field, Message: field + " is invalid"}
}
