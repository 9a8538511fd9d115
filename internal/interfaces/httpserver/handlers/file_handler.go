package handlers

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// FileSource streams stored files.
type FileSource interface {
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// FileHandler serves stored uploads and generated artifacts by key.
type FileHandler struct {
	source FileSource
	log    zerolog.Logger
}

func NewFileHandler(source FileSource, name string, log zerolog.Logger) *FileHandler {
	return &FileHandler{
		source: source,
		log:    log.With().Str("component", "file-handler").Str("store", name).Logger(),
	}
}

// Serve godoc
// @Summary      Stream a stored file
// @Tags         files
// @Produce      octet-stream
// @Param        path  path  string  true  "File key"
// @Success      200   "binary data"
// @Failure      404   {object}  responses.ErrorResponse
// @Router       /uploads/{path} [get]
// @Router       /mini-reports/{path} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" {
		platformerrors.WriteNotFound(c, "File not found")
		return
	}

	rc, contentType, err := h.source.Get(c.Request.Context(), key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.log.Warn().Err(err).Str("key", key).Msg("file lookup failed")
		}
		platformerrors.WriteNotFound(c, "File not found")
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
