package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddlewareAllowsPatch(t *testing.T) {
	m := NewCORSMiddleware()

	rec := httptest.NewRecorder()
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/1/status", nil))

	// Status transitions ride PATCH; the preflight must advertise it.
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestCORSMiddlewareShortCircuitsPreflight(t *testing.T) {
	m := NewCORSMiddleware()

	reached := false
	rec := httptest.NewRecorder()
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, reached)
}
