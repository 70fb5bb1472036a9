package engine_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tokenquote/internal/config"
	"tokenquote/internal/engine"
	"tokenquote/internal/provider"
	"tokenquote/internal/provider/mock"
	"tokenquote/internal/resolve"
)

const (
	cmcListings = `{"status":{"error_code":0},"data":[
		{"id":1,"name":"Bitcoin","symbol":"BTC","quote":{"USD":{"price":64000,"percent_change_24h":2.5}}},
		{"id":1027,"name":"Ethereum","symbol":"ETH","quote":{"USD":{"price":3000,"percent_change_24h":1.5}}}
	]}`
	cmcInfo    = `{"status":{"error_code":0},"data":{"1":{"id":1,"logo":"btc.png"},"1027":{"id":1027,"logo":""}}}`
	dexSearch  = `{"pairs":[
		{"chainId":"bsc","baseToken":{"name":"Pepe","symbol":"PEPE"},"priceUsd":"0.1","liquidity":{"usd":50}},
		{"chainId":"ethereum","baseToken":{"name":"Pepe","symbol":"PEPE"},"priceUsd":"0.2","liquidity":{"usd":500},"info":{"imageUrl":"pepe.png"}}
	]}`
	logoSearch = `{"coins":[{"id":"ethereum","symbol":"eth","large":"logo.png"}]}`
)

func respond(body string) *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}
}

// routedClient answers each upstream API by path.
func routedClient(t *testing.T) *mock.MockHTTPClient {
	ctrl := gomock.NewController(t)
	hc := mock.NewMockHTTPClient(ctrl)
	hc.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		switch p := req.URL.Path; {
		case strings.Contains(p, "/listings/latest"):
			return respond(cmcListings), nil
		case strings.Contains(p, "/cryptocurrency/info"):
			return respond(cmcInfo), nil
		case strings.Contains(p, "/latest/dex/search"):
			return respond(dexSearch), nil
		case strings.Contains(p, "/api/v3/search"):
			return respond(logoSearch), nil
		}
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(""))}, nil
	}).AnyTimes()
	return hc
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.CoinMarketCap.APIKey = "k"
	cfg.Logo.MinRequestIntervalSec = 0
	return cfg
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestEngine_ResolvesFromRefreshedDirectoryWithLogoBackfill(t *testing.T) {
	t.Parallel()

	// Arrange
	e := engine.New(testConfig(), routedClient(t), quietLogger())
	h := e.StartBackgroundRefresh(t.Context())
	defer h.Stop()
	require.NoError(t, h.WaitInitial(t.Context()))

	// Act
	q, err := e.Resolve(t.Context(), "eth")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Ethereum", q.Name)
	require.Equal(t, "ETH", q.Symbol)
	require.True(t, decimal.NewFromInt(3000).Equal(q.Price))
	require.True(t, decimal.RequireFromString("1.5").Equal(*q.Change24h))
	require.Equal(t, "logo.png", *q.LogoURL)
	require.Equal(t, "ETHUSD", *q.ChartSymbol)
	require.Equal(t, "CoinMarketCap", q.Source)
}

func TestEngine_AddressUsesLiveSearch(t *testing.T) {
	t.Parallel()

	e := engine.New(testConfig(), routedClient(t), quietLogger())
	h := e.StartBackgroundRefresh(t.Context())
	defer h.Stop()
	require.NoError(t, h.WaitInitial(t.Context()))

	q, err := e.Resolve(t.Context(), "0x6982508145454Ce325dDbE47a25d4ec3d2311933")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("0.2").Equal(q.Price))
	require.Equal(t, "ethereum", *q.Network)
	require.Equal(t, "pepe.png", *q.LogoURL)
}

func TestEngine_EmptyInput(t *testing.T) {
	t.Parallel()

	// Arrange: no upstream call is allowed
	ctrl := gomock.NewController(t)
	hc := mock.NewMockHTTPClient(ctrl)
	hc.EXPECT().Do(gomock.Any()).Times(0)
	e := engine.New(testConfig(), hc, quietLogger())

	// Act
	_, err := e.Resolve(t.Context(), "   ")

	// Assert
	require.Error(t, err)
	require.NotErrorIs(t, err, resolve.ErrNotFound)
}

func TestEngine_SkipsCoinMarketCapWithoutKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CoinMarketCap.APIKey = ""
	cfg.CoinCap.Enabled = true

	e := engine.New(cfg, routedClient(t), quietLogger())

	var names []string
	for _, p := range e.Providers() {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"CoinCap", "DexScreener", "CoinGecko"}, names)
}

func TestEngine_ProvidersReportSnapshotState(t *testing.T) {
	t.Parallel()

	e := engine.New(testConfig(), routedClient(t), quietLogger())

	before := e.Providers()
	require.Equal(t, engine.RoleDirectory, before[0].Role)
	require.False(t, before[0].HasData)
	require.Equal(t, 5*time.Minute, before[0].Interval)

	h := e.StartBackgroundRefresh(t.Context())
	defer h.Stop()
	require.NoError(t, h.WaitInitial(t.Context()))

	after := e.Providers()
	require.True(t, after[0].HasData)
	require.Equal(t, 2, after[0].Entries)
	require.False(t, after[0].FetchedAt.IsZero())
}

func TestEngine_UpstreamDownIsUnavailable(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	hc := mock.NewMockHTTPClient(ctrl)
	hc.EXPECT().Do(gomock.Any()).Return(&http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader(""))}, nil).AnyTimes()

	e := engine.New(testConfig(), hc, quietLogger())
	h := e.StartBackgroundRefresh(t.Context())
	defer h.Stop()
	require.NoError(t, h.WaitInitial(t.Context()))

	_, err := e.Resolve(t.Context(), "btc")
	require.True(t, provider.IsUnavailable(err), "got %v", err)
}
