package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wealthx/paydesk/internal/server/media"
)

var errBadMultipart = errors.New("invalid multipart form")

// formFile opens the multipart file named field. It returns a nil file when
// the field is absent; the caller closes non-nil files with the returned func.
func formFile(c *gin.Context, field string) (*media.File, func(), error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, errBadMultipart
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, errBadMultipart
	}

	return &media.File{Name: fh.Filename, Size: fh.Size, Body: f}, func() { _ = f.Close() }, nil
}
