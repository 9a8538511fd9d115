package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// SubjectKey is the gin context key holding the authenticated email.
const SubjectKey = "auth_subject"

// Validator accepts locally issued HS256 tokens and, when a JWKS URL is
// configured, RS256 tokens signed by the external identity provider.
type Validator struct {
	cfg    *config.Config
	log    zerolog.Logger
	tokens *Tokens
	jwks   *keyfunc.JWKS
}

// NewValidator initializes JWKS fetching when AUTH_JWKS_URL is set.
func NewValidator(ctx context.Context, cfg *config.Config, tokens *Tokens, log zerolog.Logger) (*Validator, error) {
	v := &Validator{
		cfg:    cfg,
		log:    log.With().Str("component", "auth-validator").Logger(),
		tokens: tokens,
	}
	if cfg.AuthJWKSURL == "" {
		return v, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			v.log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}
	v.jwks = jwks
	return v, nil
}

// Ready reports whether remote keys are loaded, or true when none are configured.
func (v *Validator) Ready() bool {
	if v.cfg.AuthJWKSURL == "" {
		return true
	}
	return v.jwks != nil && v.jwks.Len() > 0
}

// Close stops the background JWKS refresh.
func (v *Validator) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// Middleware rejects requests without a valid bearer token.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			platformerrors.WriteUnauthorized(c, "Not authenticated")
			return
		}

		subject, err := v.Subject(tokenString)
		if err != nil {
			v.log.Debug().Err(err).Msg("bearer token rejected")
			platformerrors.WriteUnauthorized(c, "Could not validate credentials")
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

// Subject validates token and returns its subject.
func (v *Validator) Subject(token string) (string, error) {
	subject, err := v.tokens.Subject(token)
	if err == nil || v.jwks == nil {
		return subject, err
	}
	return v.remoteSubject(token)
}

func (v *Validator) remoteSubject(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.AuthIssuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.AuthIssuer))
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc, opts...); err != nil {
		return "", err
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email, nil
	}
	return claims.GetSubject()
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
