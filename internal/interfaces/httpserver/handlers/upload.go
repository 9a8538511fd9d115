package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// formUpload is a multipart file read fully into memory.
type formUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u *formUpload) toReport() *report.Upload {
	if u == nil {
		return nil
	}
	return &report.Upload{Filename: u.Filename, Data: u.Data}
}

// formFile reads an optional file field; it returns nil, nil when absent.
func formFile(c *gin.Context, field string) (*formUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return readFileHeader(fh)
}

// formFiles reads every file sent under field.
func formFiles(c *gin.Context, field string) ([]*formUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File[field]
	uploads := make([]*formUpload, 0, len(headers))
	for _, fh := range headers {
		u, err := readFileHeader(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func readFileHeader(fh *multipart.FileHeader) (*formUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return &formUpload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}

// writeUploadError maps multipart failures to 413 or 400.
func writeUploadError(c *gin.Context, field string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, platformerrors.HTTPErrorResponse{
			Error: &platformerrors.HTTPErrorDetail{Message: "Upload too large", Type: "validation_error"},
		})
		return
	}
	platformerrors.WriteValidationError(c, fmt.Sprintf("invalid %s upload: %v", field, err))
}

// formString returns a pointer to the form value when the key was sent.
func formString(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}

// formOptionalBool returns nil when key is absent, else its truthy value.
func formOptionalBool(c *gin.Context, key string) *bool {
	if value, ok := c.GetPostForm(key); ok {
		b := report.ParseTruthy(value)
		return &b
	}
	return nil
}

// formBool returns def when key is absent.
func formBool(c *gin.Context, key string, def bool) bool {
	if b := formOptionalBool(c, key); b != nil {
		return *b
	}
	return def
}
