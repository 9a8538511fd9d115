package responses

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// ErrorResponse documents the error envelope in swagger.
type ErrorResponse = platformerrors.HTTPErrorResponse

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// VerifyTokenResponse reports the subject of a valid token.
type VerifyTokenResponse struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// PublicPDFResponse points at a seeded report PDF.
type PublicPDFResponse struct {
	PDFPath string `json:"pdf_path"`
}

// HandleError writes err using the platform error envelope.
func HandleError(c *gin.Context, err error, log zerolog.Logger) {
	platformerrors.WriteError(c, err, log)
}

// HandleBindError reports a request that failed binding or validation.
func HandleBindError(c *gin.Context, err error) {
	platformerrors.WriteValidationError(c, err.Error())
}
