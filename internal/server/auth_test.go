package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/types"
)

func newAuthedServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BCRYPT_COST", "10")

	return newTestServer(t, Config{
		AuthUsername: "operator",
		AuthPassword: "hunter2",
	})
}

func login(t *testing.T, s *Server, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(types.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	s := newAuthedServer(t)

	rec := login(t, s, "operator", "hunter2")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newAuthedServer(t)

	rec := login(t, s, "operator", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_WrongUsername(t *testing.T) {
	s := newAuthedServer(t)

	rec := login(t, s, "intruder", "hunter2")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	s := newAuthedServer(t)

	rec := login(t, s, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := newAuthedServer(t)

	body, contentType := multipartBody(t, "resume.txt", resumeText, map[string][]string{
		"job": {"Backend Engineer posting"},
	})
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutes_AcceptValidToken(t *testing.T) {
	s := newAuthedServer(t)

	loginRec := login(t, s, "operator", "hunter2")
	require.Equal(t, http.StatusOK, loginRec.Code)
	var loginResp types.LoginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginResp))

	body, contentType := multipartBody(t, "resume.txt", resumeText, map[string][]string{
		"job": {"Backend Engineer posting"},
	})
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth_SkipsAuth(t *testing.T) {
	s := newAuthedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "s3cret", LifetimeHours: 1})

	token, err := svc.GenerateToken("operator")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(&config.JWTConfig{Secret: "one", LifetimeHours: 1})
	verifier := NewJWTService(&config.JWTConfig{Secret: "two", LifetimeHours: 1})

	token, err := issuer.GenerateToken("operator")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsEmptyToken(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "s3cret", LifetimeHours: 1})
	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}
