// Package inputval validates request bodies at the boundary, before any
// workflow code runs. Request structs declare constraints with validate
// tags; failures come back as a list of {path, message} issues.
package inputval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func v() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// maxBodyBytes caps JSON request bodies; uploads go through multipart
// handling with their own limit.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst and validates it. On failure
// it writes the validation envelope and returns false; the handler should
// just return.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respond.Validation(w, []respond.Issue{{Path: "body", Message: "Request body is required"}})
			return false
		}
		respond.Validation(w, []respond.Issue{{Path: "body", Message: decodeMessage(err)}})
		return false
	}

	return Check(w, dst)
}

// Check validates an already-populated struct, writing the validation
// envelope on failure.
func Check(w http.ResponseWriter, dst any) bool {
	if err := v().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respond.Validation(w, toIssues(verrs))
			return false
		}
		respond.Validation(w, []respond.Issue{{Path: "body", Message: err.Error()}})
		return false
	}
	return true
}

func decodeMessage(err error) string {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return fmt.Sprintf("Field %s must be of type %s", ute.Field, ute.Type)
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field") {
		return "Unknown field " + strings.TrimPrefix(msg, "json: unknown field ")
	}
	return "Malformed JSON body"
}

func toIssues(verrs validator.ValidationErrors) []respond.Issue {
	issues := make([]respond.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, respond.Issue{
			Path:    fieldPath(fe),
			Message: message(fe),
		})
	}
	return issues
}

// fieldPath prefers the json tag name the client actually sent.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return lowerFirst(ns)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// message renders validator tags as the human-readable messages the API has
// always emitted.
func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
