package coingecko_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tokenquote/internal/provider"
	"tokenquote/internal/provider/coingecko"
	"tokenquote/internal/provider/mock"
)

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body))}
}

func TestFetchBulk_PagesUntilShortPage(t *testing.T) {
	t.Parallel()

	// Arrange: first page full (2 rows), second page short
	ctrl := gomock.NewController(t)
	httpClient := mock.NewMockHTTPClient(ctrl)
	gomock.InOrder(
		httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/api/v3/coins/markets", req.URL.Path)
			require.Equal(t, "1", req.URL.Query().Get("page"))
			require.Equal(t, "2", req.URL.Query().Get("per_page"))
			require.Equal(t, "usd", req.URL.Query().Get("vs_currency"))
			require.Equal(t, "demo", req.Header.Get("x-cg-demo-api-key"))
			return jsonResponse(http.StatusOK, `[
				{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png","current_price":64000.5,"price_change_percentage_24h":2.5},
				{"id":"ethereum","symbol":"eth","name":"Ethereum","image":"","current_price":3000,"price_change_percentage_24h":null}
			]`), nil
		}),
		httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "2", req.URL.Query().Get("page"))
			return jsonResponse(http.StatusOK, `[
				{"id":"dead","symbol":"dead","name":"Dead","current_price":null}
			]`), nil
		}),
	)
	p := coingecko.New(coingecko.Config{APIKey: "demo", PerPage: 2, Pages: 5}, httpClient)

	// Act
	snap, err := p.FetchBulk(t.Context())

	// Assert
	require.NoError(t, err)
	require.Len(t, snap.Entries, 2)
	require.Equal(t, "btc", snap.Entries[0].Symbol)
	require.Equal(t, "CoinGecko", snap.Entries[0].Network)
	require.True(t, decimal.RequireFromString("2.5").Equal(*snap.Entries[0].Change24h))
	require.Equal(t, "https://img/btc.png", *snap.Entries[0].LogoURL)
	require.Nil(t, snap.Entries[1].LogoURL)
	require.Nil(t, snap.Entries[1].Change24h)
}

func TestFetchBulk_FailedPageFailsFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := mock.NewMockHTTPClient(ctrl)
	gomock.InOrder(
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, `[{"symbol":"a","name":"A","current_price":1},{"symbol":"b","name":"B","current_price":2}]`), nil),
		httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusTooManyRequests, `{"status":{"error_code":429}}`), nil),
	)
	p := coingecko.New(coingecko.Config{PerPage: 2, Pages: 3}, httpClient)

	_, err := p.FetchBulk(t.Context())
	require.True(t, provider.IsUnavailable(err))
}

func TestFindLogo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		code    int
		want    string
		wantErr func(error) bool
	}{
		{
			name: "first symbol match wins",
			code: http.StatusOK,
			body: `{"coins":[{"symbol":"ETHW","large":"https://img/ethw.png"},{"symbol":"ETH","large":"https://img/eth.png"},{"symbol":"eth","large":"https://img/other.png"}]}`,
			want: "https://img/eth.png",
		},
		{
			name: "thumb fallback",
			code: http.StatusOK,
			body: `{"coins":[{"symbol":"ETH","thumb":"https://img/eth-thumb.png"}]}`,
			want: "https://img/eth-thumb.png",
		},
		{
			name:    "no match",
			code:    http.StatusOK,
			body:    `{"coins":[{"symbol":"ETHW","large":"x"}]}`,
			wantErr: func(err error) bool { return err == provider.ErrNotFound },
		},
		{
			name:    "empty result",
			code:    http.StatusOK,
			body:    `{"coins":[]}`,
			wantErr: func(err error) bool { return err == provider.ErrNotFound },
		},
		{
			name:    "server error",
			code:    http.StatusServiceUnavailable,
			body:    ``,
			wantErr: provider.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := mock.NewMockHTTPClient(ctrl)
			httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
				require.Equal(t, "/api/v3/search", req.URL.Path)
				require.Equal(t, "eth", req.URL.Query().Get("query"))
				return jsonResponse(tt.code, tt.body), nil
			})
			p := coingecko.New(coingecko.Config{}, httpClient)

			got, err := p.FindLogo(t.Context(), "eth")
			if tt.wantErr != nil {
				require.True(t, tt.wantErr(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindLogo_EmptySymbolSkipsRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := mock.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Times(0)

	_, err := coingecko.New(coingecko.Config{}, httpClient).FindLogo(t.Context(), " ")
	require.ErrorIs(t, err, provider.ErrNotFound)
}
