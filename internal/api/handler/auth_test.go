package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newAuthHandler() *Auth {
	return NewAuth(nil)
}

// --- Login ---

func TestAuthLogin_InvalidJSON(t *testing.T) {
	h := newAuthHandler()
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodPost, "/api/auth/login", "{bad json")

	h.Login(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestAuthLogin_MissingPassword(t *testing.T) {
	h := newAuthHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "a@b.test",
	})

	h.Login(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestAuthLogin_NoIdentifier(t *testing.T) {
	h := newAuthHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/auth/login", map[string]any{
		"password": "secret123",
	})

	h.Login(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "email or phone is required")
}

// --- Register ---

func TestAuthRegister_MissingFields(t *testing.T) {
	h := newAuthHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/auth/register", map[string]any{
		"email": "a@b.test",
	})

	h.Register(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestAuthRegister_BadUserType(t *testing.T) {
	h := newAuthHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/auth/register", map[string]any{
		"email":        "a@b.test",
		"phone":        "+911234567890",
		"password":     "secret123",
		"user_type":    "admin",
		"company_name": "Acme Exports",
	})

	h.Register(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestAuthRegister_ShortPassword(t *testing.T) {
	h := newAuthHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/auth/register", map[string]any{
		"email":        "a@b.test",
		"phone":        "+911234567890",
		"password":     "short",
		"user_type":    "buyer",
		"company_name": "Acme Exports",
	})

	h.Register(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
