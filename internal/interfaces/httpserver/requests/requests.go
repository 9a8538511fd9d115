package requests

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRequest is the account registration body.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,notblank"`
}

// LoginForm mirrors the OAuth2 password form.
type LoginForm struct {
	Username string `form:"username" binding:"required,notblank"`
	Password string `form:"password" binding:"required"`
}

// VerifyTokenQuery carries the token to check.
type VerifyTokenQuery struct {
	Token string `form:"token" binding:"required,notblank"`
}

// ListReportsQuery pages through reports.
type ListReportsQuery struct {
	Q    string `form:"q"`
	Page int    `form:"page,default=1" binding:"min=1"`
	Size int    `form:"size,default=10" binding:"min=1,max=100"`
}

// BatchDeleteRequest lists the reports to delete.
type BatchDeleteRequest struct {
	ReportNo []string `json:"report_no" binding:"required,min=1,dive,notblank"`
}

// RegisterValidators adds the custom tags used above to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("notblank", notBlank)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
