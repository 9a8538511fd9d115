package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/backup"
	"github.com/igi-pe/report-api/internal/infrastructure/metrics"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/responses"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// BackupService is the export/restore surface used by BackupHandler.
type BackupService interface {
	Export(ctx context.Context) (*backup.Archive, error)
	Import(ctx context.Context, req backup.ImportRequest) (*backup.ImportResult, error)
}

// BackupHandler downloads and restores report backups.
type BackupHandler struct {
	service BackupService
	log     zerolog.Logger
}

func NewBackupHandler(service BackupService, log zerolog.Logger) *BackupHandler {
	return &BackupHandler{
		service: service,
		log:     log.With().Str("component", "backup-handler").Logger(),
	}
}

// Export godoc
// @Summary      Download a backup
// @Description  Zip with reports.xlsx plus images/ and logo/ files.
// @Tags         backup
// @Produce      application/zip
// @Success      200  "Zip archive"
// @Failure      500  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/export-backup [post]
func (h *BackupHandler) Export(c *gin.Context) {
	archive, err := h.service.Export(c.Request.Context())
	metrics.RecordBackup("export", metrics.Status(err))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archive.Filename))
	c.Data(http.StatusOK, "application/zip", archive.Data)
}

// Import godoc
// @Summary      Restore a backup
// @Tags         backup
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file  true   "Backup zip"
// @Param        overwrite  formData  bool  false  "Overwrite existing reports (default true)"
// @Success      200        {object}  backup.ImportResult
// @Failure      400        {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/import-backup [post]
func (h *BackupHandler) Import(c *gin.Context) {
	upload, err := formFile(c, "file")
	if err != nil {
		writeUploadError(c, "file", err)
		return
	}
	if upload == nil {
		platformerrors.WriteValidationError(c, "file is required")
		return
	}

	result, err := h.service.Import(c.Request.Context(), backup.ImportRequest{
		Filename:  upload.Filename,
		Data:      upload.Data,
		Overwrite: formBool(c, "overwrite", true),
	})
	metrics.RecordBackup("import", metrics.Status(err))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	h.log.Info().
		Int("imported", result.Imported).
		Int("updated", result.Updated).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Msg("backup restored")
	c.JSON(http.StatusOK, result)
}
