package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tokens, err := NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHandler(NewService(NewInMemoryUserRepository()), tokens, true)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/password/forgot", h.ForgotPassword)
	r.POST("/auth/password/reset", h.ResetPassword)

	return r
}

func post(r *gin.Engine, path string, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var validUser = map[string]string{
	"name":     "Test User",
	"email":    "test@example.com",
	"password": "Password@123",
}

func TestRegisterSuccess(t *testing.T) {
	r := setupTestRouter(t)

	w := post(r, "/auth/register", validUser)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	r := setupTestRouter(t)

	w := post(r, "/auth/register", map[string]string{"email": "test@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupTestRouter(t)

	// First request (should succeed)
	post(r, "/auth/register", validUser)

	// Second request (should fail)
	w := post(r, "/auth/register", validUser)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestLoginReturnsToken(t *testing.T) {
	r := setupTestRouter(t)
	post(r, "/auth/register", validUser)

	w := post(r, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "Password@123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("expected token in response, got %s", w.Body.String())
	}

	w = post(r, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	r := setupTestRouter(t)
	post(r, "/auth/register", validUser)

	w := post(r, "/auth/password/forgot", map[string]string{"email": "test@example.com"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.Code)
	}

	var resp struct {
		ResetToken string `json:"reset_token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.ResetToken == "" {
		t.Fatal("expected reset token outside production")
	}

	w = post(r, "/auth/password/reset", map[string]string{
		"token":        resp.ResetToken,
		"new_password": "Brand@NewPass1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = post(r, "/auth/password/reset", map[string]string{
		"token":        resp.ResetToken,
		"new_password": "Brand@NewPass2",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected reused token to fail with 400, got %d", w.Code)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	r := setupTestRouter(t)

	w := post(r, "/auth/password/forgot", map[string]string{"email": "ghost@example.com"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("reset_token")) {
		t.Fatal("unknown email must not produce a token")
	}
}
