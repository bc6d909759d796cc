package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(NewStructuredLogger(logger))
	router.Post("/validate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(`{"number":"4111111111111111"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusTeapot, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/validate", entry["path"])
	require.Equal(t, float64(http.StatusTeapot), entry["status"])
	require.Equal(t, float64(2), entry["bytes"])
	require.NotEmpty(t, entry["request_id"])
	require.NotContains(t, buf.String(), "4111111111111111")
}
