package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"alfaraz/spareparts/internal/handler"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompress(t *testing.T) {
	payload := `{"message":"Order placed","total":41}`
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	})
	h := handler.Compress(inner)

	t.Run("client accepts brotli", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/parts", nil)
		req.Header.Set("Accept-Encoding", "gzip, br")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
		decoded, err := io.ReadAll(brotli.NewReader(w.Body))
		require.NoError(t, err)
		assert.Equal(t, payload, string(decoded))
	})

	t.Run("client does not accept brotli", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/parts", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, w.Body.String())
	})

	t.Run("zero q-value refuses brotli", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/parts", nil)
		req.Header.Set("Accept-Encoding", "gzip, br;q=0")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, w.Body.String())
	})

	t.Run("nonzero q-value accepts brotli", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/parts", nil)
		req.Header.Set("Accept-Encoding", "br;q=0.5")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
		decoded, err := io.ReadAll(brotli.NewReader(w.Body))
		require.NoError(t, err)
		assert.Equal(t, payload, string(decoded))
	})
}

func TestRequestLogger_RequestID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := handler.RequestLogger(zap.NewNop())(inner)

	// A generated id is echoed back
	req := httptest.NewRequest(http.MethodGet, "/parts", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// An incoming id is honored
	req = httptest.NewRequest(http.MethodGet, "/parts", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
