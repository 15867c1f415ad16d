package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"qms-backend/internal/platform/logger"
)

func TestRequestLog_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Out: &buf})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLog(log))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) { http.Error(w, "nope", http.StatusNotFound) })
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	cases := []struct {
		path  string
		level string
	}{
		{"/ok", "level=info"},
		{"/missing", "level=warn"},
		{"/boom", "level=error"},
	}

	for _, tc := range cases {
		buf.Reset()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

		line := buf.String()
		assert.Contains(t, line, tc.level, tc.path)
		assert.Contains(t, line, "path="+tc.path)
		assert.Contains(t, line, "method=GET")
		assert.Regexp(t, `request_id=\S+`, line)
	}
}
