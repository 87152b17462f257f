package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "secret key"})
}

func TestLookup(t *testing.T) {
	var gotPath, gotToken string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"companyName":"Netflix Inc.","latestPrice":512.34,"symbol":"NFLX"}`))
	})

	q, err := client.Lookup(context.Background(), "nflx")
	require.NoError(t, err)
	assert.Equal(t, "/stable/stock/nflx/quote", gotPath)
	assert.Equal(t, "secret key", gotToken)
	assert.Equal(t, "NFLX", q.Symbol)
	assert.Equal(t, "Netflix Inc.", q.Name)
	assert.Equal(t, "512.34", q.Price.String())
}

func TestLookupAcceptsQuotedPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"companyName":"Apple","latestPrice":"150.5","symbol":"AAPL"}`))
	})

	q, err := client.Lookup(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "150.5", q.Price.String())
}

func TestLookupFailsClosed(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Unknown symbol", http.StatusNotFound)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"companyName":`))
		},
		"missing price": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"companyName":"Apple","symbol":"AAPL"}`))
		},
		"null price": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"companyName":"Apple","latestPrice":null,"symbol":"AAPL"}`))
		},
		"missing name": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"latestPrice":1,"symbol":"AAPL"}`))
		},
		"bad price": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"companyName":"Apple","latestPrice":"abc","symbol":"AAPL"}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, handler)
			q, err := client.Lookup(context.Background(), "AAPL")
			assert.Nil(t, q)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestLookupNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	_, err := client.Lookup(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrUnavailable)
}
