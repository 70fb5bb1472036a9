package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tokenquote/internal/engine"
	"tokenquote/internal/provider"
	"tokenquote/internal/provider/mock"
	"tokenquote/internal/resolve"
)

const listings = `{"status":{"error_code":0},"data":[
	{"id":1,"name":"Bitcoin","symbol":"BTC","quote":{"USD":{"price":64000.5,"percent_change_24h":-0.456}}}
]}`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"coinmarketcap": {"api_key": "k"},
		"dexscreener": {"enabled": false},
		"logo": {"enabled": false}
	}`), 0o600))
	return path
}

func fakeUpstream(t *testing.T) func(time.Duration) provider.HTTPClient {
	ctrl := gomock.NewController(t)
	hc := mock.NewMockHTTPClient(ctrl)
	hc.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		body := `{"status":{"error_code":0},"data":{"1":{"id":1,"logo":"btc.png"}}}`
		if strings.Contains(req.URL.Path, "/listings/latest") {
			body = listings
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}, nil
	}).AnyTimes()
	return func(time.Duration) provider.HTTPClient { return hc }
}

func TestResolveCommand_Text(t *testing.T) {
	// Arrange: not parallel, the command reads the working directory
	cfg := writeConfig(t)
	var stdout, stderr bytes.Buffer

	// Act
	code := run(t.Context(), []string{"resolve", "--config", cfg, "btc"}, &stdout, &stderr, fakeUpstream(t))

	// Assert
	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	require.Contains(t, out, "Bitcoin (BTC)")
	require.Contains(t, out, "$64000.500000")
	require.Contains(t, out, "-0.46%")
	require.Contains(t, out, "BTCUSD")
	require.Contains(t, out, "btc.png")
}

func TestResolveCommand_JSON(t *testing.T) {
	cfg := writeConfig(t)
	var stdout, stderr bytes.Buffer

	code := run(t.Context(), []string{"resolve", "--json", "--config", cfg, "bitcoin"}, &stdout, &stderr, fakeUpstream(t))
	require.Equal(t, 0, code, stderr.String())

	var q resolve.Quote
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &q))
	require.Equal(t, "BTC", q.Symbol)
	require.Equal(t, "CoinMarketCap", q.Source)
}

func TestResolveCommand_NotFound(t *testing.T) {
	cfg := writeConfig(t)
	var stdout, stderr bytes.Buffer

	code := run(t.Context(), []string{"resolve", "--config", cfg, "nope"}, &stdout, &stderr, fakeUpstream(t))
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "not found")
}

func TestProvidersCommand(t *testing.T) {
	cfg := writeConfig(t)
	var stdout, stderr bytes.Buffer

	code := run(t.Context(), []string{"providers", "--refresh", "--json", "--config", cfg}, &stdout, &stderr, fakeUpstream(t))
	require.Equal(t, 0, code, stderr.String())

	var list []engine.ProviderStatus
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "CoinMarketCap", list[0].Name)
	require.Equal(t, 1, list[0].Entries)
}
