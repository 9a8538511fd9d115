package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	cfg      *config.Config
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider, cfg *config.Config) *Routes {
	return &Routes{cfg: cfg, handlers: provider}
}

// Register attaches the /v1 API and the file routes. requireAuth guards
// everything except account endpoints, the public lookup and file reads.
func (r *Routes) Register(router gin.IRouter, requireAuth gin.HandlerFunc) {
	group := router.Group("/v1")

	authGroup := group.Group("/auth")
	authGroup.POST("/register", r.handlers.Auth.Register)
	authGroup.POST("/login", r.handlers.Auth.Login)
	authGroup.GET("/verify-token", r.handlers.Auth.VerifyToken)

	group.GET("/public-report/:report_no", r.handlers.Reports.PublicReport)

	reports := group.Group("/reports", requireAuth)
	reports.GET("", r.handlers.Reports.List)
	reports.POST("/upload-xlsx", r.handlers.Ingest.UploadXLSX)
	reports.POST("/upload-pdf-zip", r.handlers.Reports.UploadPDFArchive)
	reports.POST("/export-backup", r.handlers.Backup.Export)
	reports.POST("/import-backup", r.handlers.Backup.Import)
	reports.POST("/batch-delete", r.handlers.Reports.BatchDelete)
	reports.GET("/:report_no", r.handlers.Reports.Get)
	reports.PUT("/:report_no", r.handlers.Reports.Update)
	reports.DELETE("/:report_no", r.handlers.Reports.Delete)
	reports.GET("/:report_no/card", r.handlers.Reports.Card)

	pdf := group.Group("/pdf", requireAuth)
	pdf.POST("/small-reports", r.handlers.MiniReports.SmallReports)

	router.GET(r.cfg.UploadsURLPrefix+"/*path", r.handlers.Uploads.Serve)
	router.GET(r.cfg.MiniReportsURLPrefix+"/*path", r.handlers.Artifacts.Serve)
}
