package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tokenquote/internal/httpx"
	"tokenquote/internal/provider"
)

var _ provider.HTTPClient = (*httpx.Client)(nil)

func TestClient_SetsDefaultHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tokenquote/1.0", r.Header.Get("User-Agent"))
		require.Equal(t, "yes", r.Header.Get("X-Extra"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := httpx.New(2 * time.Second)
	c.Headers = map[string]string{"X-Extra": "yes"}

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, httpx.GetJSON(t.Context(), c, srv.URL, nil, &out))
	require.True(t, out.OK)
}

func TestGetJSON_AcceptsPlainHTTPClient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	var c provider.HTTPClient = srv.Client()
	require.NoError(t, httpx.GetJSON(t.Context(), c, srv.URL, nil, &out))
	require.True(t, out.OK)
}

func TestGetJSON_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var out map[string]any
	err := httpx.GetJSON(t.Context(), httpx.New(time.Second), srv.URL, nil, &out)

	var se *httpx.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusTooManyRequests, se.Code)
	require.Contains(t, se.Body, "slow down")
}

func TestGetJSON_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	var out map[string]any
	err := httpx.GetJSON(t.Context(), httpx.New(time.Second), srv.URL, nil, &out)
	require.ErrorContains(t, err, "decoding response")
}

func TestGetJSON_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	var out map[string]any
	err := httpx.GetJSON(ctx, httpx.New(5*time.Second), srv.URL, nil, &out)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}
