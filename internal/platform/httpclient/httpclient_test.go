package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_SendsHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "vet", r.URL.Query().Get("q"))
		assert.Equal(t, "petify-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/", UserAgent: "petify-test/1.0"})
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "search", url.Values{"q": {"vet"}}, &out))
	assert.True(t, out.OK)
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil)
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusTooManyRequests, herr.StatusCode)
	assert.Equal(t, "slow down", herr.Body)
}

func TestResolveURL(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)

	_, err = c.resolveURL("/relative")
	assert.Error(t, err)

	u, err := c.resolveURL("https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", u)

	_, err = New(Options{BaseURL: "::not a url"})
	assert.Error(t, err)
}
