package handlers

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/middleware"
)

// formFile returns the named multipart file. found is false when the field
// is absent or the request is not multipart; err is set for bodies that are
// too large or cannot be parsed.
func formFile(c *gin.Context, field string) (header *multipart.FileHeader, found bool, err error) {
	header, err = c.FormFile(field)
	switch {
	case err == nil:
		return header, true, nil
	case middleware.IsTooLarge(err):
		return nil, false, errors.NewPayloadTooLargeError("Upload exceeds the size limit")
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
		return nil, false, nil
	default:
		return nil, false, errors.NewInvalidArgumentError("Malformed multipart body", map[string]string{"request": err.Error()})
	}
}
