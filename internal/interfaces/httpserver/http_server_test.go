package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/domain/account"
	"github.com/igi-pe/report-api/internal/domain/backup"
	"github.com/igi-pe/report-api/internal/domain/ingest"
	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/infrastructure/auth"
	reportrepo "github.com/igi-pe/report-api/internal/infrastructure/repository/report"
	"github.com/igi-pe/report-api/internal/infrastructure/storage"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/handlers"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*account.User
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[email], nil
}

func (m *memoryUsers) Create(_ context.Context, user *account.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uint(len(m.users) + 1)
	m.users[user.Email] = user
	return nil
}

type stubCard struct{}

func (stubCard) Render(*report.Report, []byte) ([]byte, error) { return []byte("png"), nil }

type testServer struct {
	handler http.Handler
	repo    *reportrepo.InMemoryRepository
	uploads *storage.LocalStorage
}

func newTestServer(t *testing.T, checks map[string]httpserver.HealthCheck) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()
	cfg := &config.Config{
		ServiceName:          "report-api",
		Environment:          "test",
		CORSAllowedOrigins:   []string{"http://localhost:3000"},
		MaxUploadBytes:       1 << 20,
		UploadsURLPrefix:     "/uploads",
		MiniReportsURLPrefix: "/mini-reports",
		ShutdownTimeout:      time.Second,
	}

	uploads, err := storage.NewLocalStorage(t.TempDir(), log)
	require.NoError(t, err)
	artifacts, err := storage.NewLocalStorage(t.TempDir(), log)
	require.NoError(t, err)

	repo := reportrepo.NewInMemoryRepository()
	tokens := auth.NewTokens("test-secret", time.Hour)
	validator, err := auth.NewValidator(context.Background(), cfg, tokens, log)
	require.NoError(t, err)

	provider := handlers.NewProvider(handlers.Services{
		Accounts:  account.NewService(&memoryUsers{users: map[string]*account.User{}}, tokens, log),
		Reports:   report.NewService(cfg, repo, uploads, stubCard{}, log),
		Ingest:    ingest.NewService(repo, uploads, log),
		Backup:    backup.NewService(repo, uploads, log),
		Uploads:   uploads,
		Artifacts: artifacts,
	}, log)

	srv, err := httpserver.New(cfg, log, provider, validator, checks)
	require.NoError(t, err)
	return &testServer{handler: srv.Handler(), repo: repo, uploads: uploads}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	body := strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, http.StatusCreated, s.do(req).Code)

	form := url.Values{"username": {email}, "password": {password}}
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var token account.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, s.repo.Create(context.Background(), &report.Report{ReportNo: "12J000000001", Color: "D"}))
	token := s.login(t, "staff@example.com", "s3cret")

	w := s.do(httptest.NewRequest(http.MethodGet, "/v1/reports", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = s.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":1,"size":10,"total":1,"items":[{"report_no":"12J000000001","style_number":null}]}`, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/v1/auth/verify-token?token="+url.QueryEscape(token), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"staff@example.com","status":"Token is valid"}`, w.Body.String())
}

func TestPublicLookupAndFileRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, s.repo.Create(context.Background(), &report.Report{ReportNo: "12J000000001", Color: "F"}))

	w := s.do(httptest.NewRequest(http.MethodGet, "/v1/public-report/12J000000001", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"color":"F"`)

	pdf := "%PDF-1.4\n%%EOF\n"
	require.NoError(t, s.uploads.Put(context.Background(), report.PDFKey("12J000000001"), strings.NewReader(pdf), int64(len(pdf)), "application/pdf"))

	w = s.do(httptest.NewRequest(http.MethodGet, "/v1/public-report/12J000000001", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pdf_path":"uploads/pdfs/12J000000001.pdf"}`, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/uploads/pdfs/12J000000001.pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pdf, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/mini-reports/missing/qrcode.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/v1/public-report/NOPE", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestHealthAndReadiness(t *testing.T) {
	healthy := newTestServer(t, map[string]httpserver.HealthCheck{
		"database": func(context.Context) error { return nil },
	})
	w := healthy.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w = healthy.do(httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w = healthy.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	broken := newTestServer(t, map[string]httpserver.HealthCheck{
		"database": func(context.Context) error { return errors.New("connection refused") },
	})
	w = broken.do(httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/v1/reports", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := s.do(req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
