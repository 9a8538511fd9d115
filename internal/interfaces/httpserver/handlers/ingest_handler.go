package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/ingest"
	"github.com/igi-pe/report-api/internal/infrastructure/metrics"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/responses"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// IngestService is the spreadsheet upload surface used by IngestHandler.
type IngestService interface {
	Upload(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

// IngestHandler accepts template spreadsheets.
type IngestHandler struct {
	service IngestService
	log     zerolog.Logger
}

func NewIngestHandler(service IngestService, log zerolog.Logger) *IngestHandler {
	return &IngestHandler{
		service: service,
		log:     log.With().Str("component", "ingest-handler").Logger(),
	}
}

// UploadXLSX godoc
// @Summary      Create reports from a template spreadsheet
// @Description  Each eligible row becomes a report. Rows whose style number exists are skipped.
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true   "Template workbook (.xlsx)"
// @Param        company_logo  formData  file    false  "Company logo (png/jpg/jpeg/webp)"
// @Param        diamond_type  formData  string  false  "Diamond phrase override"
// @Param        comment       formData  string  false  "Comment override"
// @Param        isecopy       formData  bool    false  "ISE copy"
// @Param        notice_image  formData  bool    false  "Notice image"
// @Param        igi_logo      formData  bool    false  "IGI logo"
// @Success      200           {object}  ingest.Result
// @Failure      400           {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/upload-xlsx [post]
func (h *IngestHandler) UploadXLSX(c *gin.Context) {
	workbook, err := formFile(c, "file")
	if err != nil {
		writeUploadError(c, "file", err)
		return
	}
	if workbook == nil {
		platformerrors.WriteValidationError(c, "file is required")
		return
	}
	logo, err := formFile(c, "company_logo")
	if err != nil {
		writeUploadError(c, "company_logo", err)
		return
	}

	result, err := h.service.Upload(c.Request.Context(), ingest.Request{
		Workbook:    workbook.Data,
		CompanyLogo: logo.toReport(),
		DiamondType: c.PostForm("diamond_type"),
		Comment:     c.PostForm("comment"),
		Isecopy:     formBool(c, "isecopy", false),
		NoticeImage: formBool(c, "notice_image", false),
		IgiLogo:     formBool(c, "igi_logo", false),
	})
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}

	for range result.Uploaded {
		metrics.RecordIngestRow("uploaded")
	}
	for range result.Skipped {
		metrics.RecordIngestRow("duplicate")
	}
	for range result.MissingImages {
		metrics.RecordIngestRow("missing_image")
	}
	c.JSON(http.StatusOK, result)
}
