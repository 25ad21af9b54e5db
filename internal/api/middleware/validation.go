package middleware

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"meeting-digest/internal/api/errors"
)

// ErrEmptyBody is returned by BindJSON and BindForm when a JSON request has no body
var ErrEmptyBody = stderrors.New("request body is empty")

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// BindJSON decodes and validates a JSON body. An empty body returns
// ErrEmptyBody so callers can report the missing field themselves.
func BindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindWith(req, binding.JSON); err != nil {
		if stderrors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return bindingError(err, "invalid JSON body")
	}
	return validateDomain(req)
}

// BindForm decodes and validates the request fields with the binding the
// content type selects. An empty JSON body returns ErrEmptyBody.
func BindForm(c *gin.Context, req any) error {
	if err := c.ShouldBind(req); err != nil {
		if stderrors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return bindingError(err, "invalid form fields")
	}
	return validateDomain(req)
}

// IsTooLarge reports whether err came from a body over the size limit
func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return stderrors.As(err, &maxErr)
}

func bindingError(err error, fallback string) error {
	if IsTooLarge(err) {
		var maxErr *http.MaxBytesError
		stderrors.As(err, &maxErr)
		return errTooLarge(maxErr.Limit)
	}

	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return errors.NewInvalidArgumentError(fallback, map[string]string{"request": err.Error()})
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			fields[field] = "is required"
		case "uuid", "uuid4":
			fields[field] = "must be a valid id"
		case "max":
			fields[field] = "is too long"
		default:
			fields[field] = "is invalid"
		}
	}
	return errors.NewInvalidArgumentError("Validation failed", fields)
}

func validateDomain(req any) error {
	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

func errTooLarge(limit int64) *errors.APIError {
	return errors.NewPayloadTooLargeError(fmt.Sprintf("Request body exceeds %d bytes", limit))
}
