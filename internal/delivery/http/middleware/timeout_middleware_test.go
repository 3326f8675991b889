package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutMiddlewareSetsDeadline(t *testing.T) {
	m := NewTimeoutMiddleware(5 * time.Second)

	var deadline time.Time
	var ok bool
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))

	require.True(t, ok, "request context must carry a deadline")
	remaining := time.Until(deadline)
	assert.Greater(t, remaining, 4*time.Second)
	assert.LessOrEqual(t, remaining, 5*time.Second)
}

func TestTimeoutMiddlewareTightensExistingDeadline(t *testing.T) {
	m := NewTimeoutMiddleware(time.Nanosecond)

	var err error
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
		err = r.Context().Err()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
