package rag_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdicto/internal/config"
	"verdicto/internal/domain"
	"verdicto/internal/generator"
	"verdicto/internal/generator/rag"
)

func newClient(url, token string) *rag.Client {
	return rag.NewClient(&config.GeneratorConfig{
		BaseURL:          url,
		APIToken:         token,
		TimeoutSecs:      5,
		MaxResponseBytes: 1 << 20,
	})
}

func TestClient_Generate_Success(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/documents/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"{\"conflicts\":[]}","sources":[]}`))
	}))
	defer server.Close()

	answer, err := newClient(server.URL, "secret-token").Generate(context.Background(), "compare these")

	require.NoError(t, err)
	assert.Equal(t, `{"conflicts":[]}`, answer)
	assert.Equal(t, "compare these", gotBody["query"])
}

func TestClient_Generate_NoTokenNoAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"answer":"fine"}`))
	}))
	defer server.Close()

	answer, err := newClient(server.URL, "").Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "fine", answer)
}

func TestClient_Generate_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"index warming up"}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL, "").Generate(context.Background(), "p")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamFailed))

	var upErr *generator.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Equal(t, "rag", upErr.Provider)
	assert.Contains(t, upErr.Error(), "index warming up")
}

func TestClient_Generate_Non2xxMultibyteBody(t *testing.T) {
	for name, body := range map[string]string{
		"long accented body": "x" + strings.Repeat("é", 600),
		"invalid bytes":      "bad gateway \xff\xfe",
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := newClient(server.URL, "").Generate(context.Background(), "p")

			require.Error(t, err)
			assert.True(t, utf8.ValidString(err.Error()))
		})
	}
}

func TestClient_Generate_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer server.Close()

	_, err := newClient(server.URL, "").Generate(context.Background(), "p")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamFailed))
}

func TestClient_Generate_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newClient(url, "").Generate(context.Background(), "p")

	require.Error(t, err)
	var upErr *generator.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, 0, upErr.StatusCode)
	assert.True(t, strings.HasPrefix(upErr.Error(), "rag unreachable"))
}

func TestClient_Generate_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(server.URL, "").Generate(ctx, "p")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamFailed))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
