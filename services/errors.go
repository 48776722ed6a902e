package services

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Atlas00000/productvisualizer/repository"

	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies every failure a service can return.
type ErrorKind string

const (
	KindStoreUnavailable ErrorKind = "store_unavailable"
	KindValidation       ErrorKind = "validation"
	KindNotFound         ErrorKind = "not_found"
	KindMalformedID      ErrorKind = "malformed_id"
	KindConflict         ErrorKind = "conflict"
	KindUnhandled        ErrorKind = "unhandled"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Details    []string
	Note       string // setup hint for degraded responses
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, "; ")
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ServiceError of the same kind, so the
// sentinels below work with errors.Is.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	return ok && t.Kind == e.Kind
}

const storeSetupNote = "Set MONGODB_URI (or STORE_DRIVER=dynamodb) and restart the server"

var (
	ErrStoreUnavailable = &ServiceError{Kind: KindStoreUnavailable, StatusCode: http.StatusServiceUnavailable, Message: "Database not connected", Note: storeSetupNote}
	ErrValidation       = &ServiceError{Kind: KindValidation, StatusCode: http.StatusBadRequest, Message: "Validation Error"}
	ErrNotFound         = &ServiceError{Kind: KindNotFound, StatusCode: http.StatusNotFound, Message: "Not found"}
	ErrMalformedID      = &ServiceError{Kind: KindMalformedID, StatusCode: http.StatusBadRequest, Message: "Invalid ID format"}
	ErrConflict         = &ServiceError{Kind: KindConflict, StatusCode: http.StatusConflict, Message: "Conflict"}
	ErrUnhandled        = &ServiceError{Kind: KindUnhandled, StatusCode: http.StatusInternalServerError, Message: "Server error"}
)

func newNotFound(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, StatusCode: http.StatusNotFound, Message: message}
}

func newValidationError(details ...string) *ServiceError {
	return &ServiceError{Kind: KindValidation, StatusCode: http.StatusBadRequest, Message: "Validation Error", Details: details}
}

func newMalformedID(id string) *ServiceError {
	return &ServiceError{Kind: KindMalformedID, StatusCode: http.StatusBadRequest, Message: "Invalid ID format", Details: []string{fmt.Sprintf("%q is not a valid id", id)}}
}

// fromRepoError maps repository failures onto the service taxonomy.
func fromRepoError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrStoreUnavailable):
		return &ServiceError{Kind: KindStoreUnavailable, StatusCode: http.StatusServiceUnavailable, Message: "Database not connected", Note: storeSetupNote, Err: err}
	case errors.Is(err, repository.ErrNotFound):
		return newNotFound(notFoundMsg)
	default:
		return &ServiceError{Kind: KindUnhandled, StatusCode: http.StatusInternalServerError, Message: "Server error", Err: err}
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator, reporting fields by their JSON name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateStruct runs struct validation and converts failures into a ValidationError.
func validateStruct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError(err.Error())
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describeFieldError(fe))
	}
	return newValidationError(details...)
}

func describeFieldError(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", path, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", path, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", path, fe.Tag())
	}
}
