package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/requests"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/responses"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// ReportService is the report surface used by ReportHandler.
type ReportService interface {
	List(ctx context.Context, filter report.ListFilter) (*report.ListResult, error)
	Get(ctx context.Context, reportNo string) (*report.Report, error)
	Update(ctx context.Context, reportNo string, params report.UpdateParams) (*report.UpdateResult, error)
	Delete(ctx context.Context, reportNo string) error
	BatchDelete(ctx context.Context, reportNos []string) *report.BatchDeleteResult
	PublicLookup(ctx context.Context, reportNo string) (*report.PublicReport, error)
	RenderCard(ctx context.Context, reportNo string) ([]byte, error)
	ImportPDFArchive(ctx context.Context, archive []byte) (*report.PDFArchiveResult, error)
}

// ReportHandler exposes report CRUD, cards, PDF seeding and the public lookup.
type ReportHandler struct {
	service ReportService
	log     zerolog.Logger
}

func NewReportHandler(service ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With().Str("component", "report-handler").Logger(),
	}
}

// List godoc
// @Summary      List reports
// @Description  Pages through reports, newest first. q matches report numbers case-insensitively.
// @Tags         reports
// @Produce      json
// @Param        q     query     string  false  "Report number fragment"
// @Param        page  query     int     false  "Page (>= 1)"
// @Param        size  query     int     false  "Page size (1-100)"
// @Success      200   {object}  report.ListResult
// @Failure      400   {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	var query requests.ListReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	result, err := h.service.List(c.Request.Context(), report.ListFilter{Query: query.Q, Page: query.Page, Size: query.Size})
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Param        report_no  path      string  true  "Report number"
// @Success      200        {object}  report.Report
// @Failure      404        {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/{report_no} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	rep, err := h.service.Get(c.Request.Context(), c.Param("report_no"))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Update godoc
// @Summary      Update a report
// @Description  Partial multipart update. Sent fields replace stored values; image and company_logo replace files.
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        report_no      path      string  true   "Report number"
// @Param        description    formData  string  false  "Description"
// @Param        shape_and_cut  formData  string  false  "Shape and cut"
// @Param        tot_est_weight formData  string  false  "Total estimated weight"
// @Param        color          formData  string  false  "Color"
// @Param        clarity        formData  string  false  "Clarity"
// @Param        style_number   formData  string  false  "Style number"
// @Param        image_filename formData  string  false  "Image filename"
// @Param        comment        formData  string  false  "Comment"
// @Param        notice_image   formData  bool    false  "Notice image"
// @Param        isecopy        formData  bool    false  "ISE copy"
// @Param        igi_logo       formData  bool    false  "IGI logo"
// @Param        image          formData  file    false  "Report image"
// @Param        company_logo   formData  file    false  "Company logo"
// @Success      200            {object}  report.UpdateResult
// @Failure      400            {object}  responses.ErrorResponse
// @Failure      404            {object}  responses.ErrorResponse
// @Failure      409            {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/{report_no} [put]
func (h *ReportHandler) Update(c *gin.Context) {
	image, err := formFile(c, "image")
	if err != nil {
		writeUploadError(c, "image", err)
		return
	}
	logo, err := formFile(c, "company_logo")
	if err != nil {
		writeUploadError(c, "company_logo", err)
		return
	}

	params := report.UpdateParams{
		Description:   formString(c, "description"),
		ShapeAndCut:   formString(c, "shape_and_cut"),
		TotEstWeight:  formString(c, "tot_est_weight"),
		Color:         formString(c, "color"),
		Clarity:       formString(c, "clarity"),
		StyleNumber:   formString(c, "style_number"),
		ImageFilename: formString(c, "image_filename"),
		Comment:       formString(c, "comment"),
		NoticeImage:   formOptionalBool(c, "notice_image"),
		Isecopy:       formOptionalBool(c, "isecopy"),
		IgiLogo:       formOptionalBool(c, "igi_logo"),
		Image:         image.toReport(),
		CompanyLogo:   logo.toReport(),
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("report_no"), params)
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete godoc
// @Summary      Delete a report
// @Tags         reports
// @Produce      json
// @Param        report_no  path      string  true  "Report number"
// @Success      200        {object}  responses.MessageResponse
// @Failure      404        {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/{report_no} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	reportNo := c.Param("report_no")
	if err := h.service.Delete(c.Request.Context(), reportNo); err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.MessageResponse{Msg: fmt.Sprintf("Report %s deleted", reportNo)})
}

// BatchDelete godoc
// @Summary      Delete several reports
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        request  body      requests.BatchDeleteRequest  true  "Report numbers"
// @Success      200      {object}  report.BatchDeleteResult
// @Failure      400      {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/batch-delete [post]
func (h *ReportHandler) BatchDelete(c *gin.Context) {
	var req requests.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.BatchDelete(c.Request.Context(), req.ReportNo))
}

// Card godoc
// @Summary      Render the report card
// @Tags         reports
// @Produce      png
// @Param        report_no  path  string  true  "Report number"
// @Success      200        "PNG image"
// @Failure      404        {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/{report_no}/card [get]
func (h *ReportHandler) Card(c *gin.Context) {
	reportNo := c.Param("report_no")
	png, err := h.service.RenderCard(c.Request.Context(), reportNo)
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s_card.png"`, reportNo))
	c.Data(http.StatusOK, "image/png", png)
}

// UploadPDFArchive godoc
// @Summary      Seed report PDFs from a zip
// @Description  Stores every PDF in the archive as pdfs/<name>.pdf.
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Zip of PDFs"
// @Success      200   {object}  report.PDFArchiveResult
// @Failure      400   {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/reports/upload-pdf-zip [post]
func (h *ReportHandler) UploadPDFArchive(c *gin.Context) {
	upload, err := formFile(c, "file")
	if err != nil {
		writeUploadError(c, "file", err)
		return
	}
	if upload == nil || !strings.HasSuffix(strings.ToLower(upload.Filename), ".zip") {
		platformerrors.WriteValidationError(c, "Please upload a valid .zip file")
		return
	}
	result, err := h.service.ImportPDFArchive(c.Request.Context(), upload.Data)
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PublicReport godoc
// @Summary      Public report lookup
// @Description  Returns the seeded PDF path when one exists, else the stored record.
// @Tags         public
// @Produce      json
// @Param        report_no  path      string  true  "Report number"
// @Success      200        {object}  responses.PublicPDFResponse
// @Failure      404        {object}  responses.ErrorResponse
// @Router       /v1/public-report/{report_no} [get]
func (h *ReportHandler) PublicReport(c *gin.Context) {
	result, err := h.service.PublicLookup(c.Request.Context(), c.Param("report_no"))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	if result.PDFPath != "" {
		c.JSON(http.StatusOK, responses.PublicPDFResponse{PDFPath: result.PDFPath})
		return
	}
	c.JSON(http.StatusOK, result.Report)
}
