package tool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTool_Success(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"forecast":[{"day":1,"condition":"sunny"}],"city":"Tokyo"}`))
	}))
	defer srv.Close()

	ht := NewHTTPTool("get_weather", "Fetches weather", srv.URL, func(o *HTTPToolOptions) {
		o.APIKey = "secret"
	})

	res, err := ht.Call(context.Background(), map[string]any{"q": "Tokyo", "days": 7, "aqi": "no"})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "Tokyo", res.Payload["city"])
	assert.Equal(t, "Tokyo", gotQuery["q"])
	assert.Equal(t, "7", gotQuery["days"])
	assert.Equal(t, "secret", gotQuery["key"])
}

func TestHTTPTool_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	ht := NewHTTPTool("get_weather", "Fetches weather", srv.URL)

	res, err := ht.Call(context.Background(), map[string]any{"q": "Tokyo"})
	require.NoError(t, err)

	assert.True(t, res.IsError())
	assert.Contains(t, res.Message, "502")
}

func TestHTTPTool_UpstreamErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	ht := NewHTTPTool("get_weather", "Fetches weather", srv.URL)

	res, err := ht.Call(context.Background(), map[string]any{"q": "Tokyo"})
	require.NoError(t, err)

	assert.True(t, res.IsError())
	assert.Equal(t, "invalid api key", res.Message)
}

func TestHTTPTool_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	ht := NewHTTPTool("get_weather", "Fetches weather", srv.URL)

	_, err := ht.Call(context.Background(), map[string]any{"q": "Tokyo"})
	assert.Error(t, err)
}

func TestHTTPTool_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	ht := NewHTTPTool("get_weather", "Fetches weather", srv.URL)

	_, err := ht.Call(context.Background(), map[string]any{"q": "Tokyo"})
	assert.Error(t, err)
}
