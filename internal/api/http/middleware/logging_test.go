package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pviana/daily-diet-server/internal/testutil"
)

func TestLogging_Handle(t *testing.T) {
	t.Run("passes response through unchanged", func(t *testing.T) {
		mw := NewLogging(testutil.MakeNoopLogger())

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		})

		rec := httptest.NewRecorder()
		mw.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meal", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "short and stout", rec.Body.String())
	})

	t.Run("defaults to 200 when handler never writes a header", func(t *testing.T) {
		mw := NewLogging(testutil.MakeNoopLogger())

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		rec := httptest.NewRecorder()
		mw.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
