package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/account"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/requests"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/responses"
)

// AccountService is the account surface used by AuthHandler.
type AccountService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*account.Token, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

// AuthHandler exposes registration, login and token checks.
type AuthHandler struct {
	service AccountService
	log     zerolog.Logger
}

func NewAuthHandler(service AccountService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With().Str("component", "auth-handler").Logger(),
	}
}

// Register godoc
// @Summary      Register an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      requests.RegisterRequest  true  "Credentials"
// @Success      201      {object}  responses.MessageResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	if err := h.service.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, responses.MessageResponse{Msg: "User registered successfully"})
}

// Login godoc
// @Summary      Exchange credentials for a bearer token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  account.Token
// @Failure      401       {object}  responses.ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form requests.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	token, err := h.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, token)
}

// VerifyToken godoc
// @Summary      Check an access token
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Access token"
// @Success      200    {object}  responses.VerifyTokenResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Router       /v1/auth/verify-token [get]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var query requests.VerifyTokenQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleBindError(c, err)
		return
	}
	email, err := h.service.VerifyToken(c.Request.Context(), query.Token)
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.VerifyTokenResponse{Email: email, Status: "Token is valid"})
}
