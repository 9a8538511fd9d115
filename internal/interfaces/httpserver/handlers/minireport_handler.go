package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/minireport"
	"github.com/igi-pe/report-api/internal/infrastructure/metrics"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/responses"
)

// MiniReportService is the grading PDF surface used by MiniReportHandler.
type MiniReportService interface {
	Process(ctx context.Context, uploads []minireport.Upload) (*minireport.Result, error)
}

// MiniReportHandler turns grading report PDFs into structured records and artifacts.
type MiniReportHandler struct {
	service MiniReportService
	log     zerolog.Logger
}

func NewMiniReportHandler(service MiniReportService, log zerolog.Logger) *MiniReportHandler {
	return &MiniReportHandler{
		service: service,
		log:     log.With().Str("component", "minireport-handler").Logger(),
	}
}

// SmallReports godoc
// @Summary      Parse grading report PDFs
// @Description  Accepts one or two PDFs and returns parsed fields with proportions, QR and barcode image URLs.
// @Tags         pdf
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Grading report PDFs (1-2)"
// @Success      200    {object}  minireport.Result
// @Failure      400    {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/pdf/small-reports [post]
func (h *MiniReportHandler) SmallReports(c *gin.Context) {
	files, err := formFiles(c, "files")
	if err != nil {
		writeUploadError(c, "files", err)
		return
	}

	uploads := make([]minireport.Upload, 0, len(files))
	for _, f := range files {
		uploads = append(uploads, minireport.Upload{Filename: f.Filename, ContentType: f.ContentType, Data: f.Data})
	}

	result, err := h.service.Process(c.Request.Context(), uploads)
	if err != nil {
		metrics.RecordMiniReport("error")
		responses.HandleError(c, err, h.log)
		return
	}
	for range result.Reports {
		metrics.RecordMiniReport("success")
	}
	c.JSON(http.StatusOK, result)
}
