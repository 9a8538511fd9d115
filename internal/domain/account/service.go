package account

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// bcrypt ignores everything past 72 bytes and newer versions reject longer input.
const maxPasswordBytes = 72

// Service registers users and exchanges credentials for tokens.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	log    zerolog.Logger
}

func NewService(repo Repository, tokens TokenIssuer, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		log:    log.With().Str("component", "account-service").Logger(),
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return platformerrors.Validation(ctx, platformerrors.LayerDomain, "Email already registered", "2c4e6a8c-0e2a-4c4e-8a6c-9e1a3c5e7a01")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to hash password", err, "3d5f7b9d-1f3b-4d5f-9b7d-0f2b4d6f8b12")
	}
	return s.repo.Create(ctx, &User{Email: email, HashedPassword: hashed})
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(password, user.HashedPassword) {
		return nil, unauthorized(ctx, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to issue token", err, "4e6a8cae-2a4c-4e6a-ac8e-1a3c5e7a9c23")
	}
	return &Token{AccessToken: token, TokenType: "bearer"}, nil
}

// VerifyToken returns the email a valid token was issued for.
func (s *Service) VerifyToken(ctx context.Context, token string) (string, error) {
	subject, err := s.tokens.Subject(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return "", unauthorized(ctx, "Invalid or expired token")
	}
	return subject, nil
}

// HashPassword hashes the first 72 bytes of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares the first 72 bytes of password against hashed.
func VerifyPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(password)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func unauthorized(ctx context.Context, message string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, message, nil, "5f7b9dbf-3b5d-4f7b-bd9f-2b4d6f8b0d34")
}
