package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/pkg/logger"
)

func TestMediaFlowRewrite(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"mediaflow_proxy_url": "https://mfp.example.com/proxy/stream",
			"query_params": {"api_password": "pw"},
			"destination_url": "https://vixcloud.co/playlist/42.m3u8",
			"request_headers": {"referer": "https://vixcloud.co/"}
		}`))
	}))
	defer ts.Close()

	m := NewMediaFlow(logger.NewWithLevel(logger.LevelError))
	creds := models.ProxyCredentials{BaseURL: ts.URL, Password: "pw"}

	proxied := m.Rewrite(context.Background(), "https://vixcloud.co/embed/42", "VixCloud", creds)
	require.NotEmpty(t, proxied)

	assert.Equal(t, "https://vixcloud.co/embed/42", gotQuery.Get("d"))
	assert.Equal(t, "pw", gotQuery.Get("api_password"))
	assert.Equal(t, "VixCloud", gotQuery.Get("host"))
	assert.Equal(t, "false", gotQuery.Get("redirect_stream"))

	assert.True(t, strings.HasPrefix(proxied, "https://mfp.example.com/proxy/stream?api_password=pw"))
	assert.Contains(t, proxied, "&d="+url.QueryEscape("https://vixcloud.co/playlist/42.m3u8"))
	assert.Contains(t, proxied, "&h_referer="+url.QueryEscape("https://vixcloud.co/"))
}

func TestMediaFlowRewriteMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer ts.Close()

	m := NewMediaFlow(logger.NewWithLevel(logger.LevelError))
	creds := models.ProxyCredentials{BaseURL: ts.URL, Password: "pw"}

	assert.Empty(t, m.Rewrite(context.Background(), "https://vixcloud.co/embed/42", "VixCloud", creds))
}

func TestMediaFlowRewriteMissingFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query_params": {"api_password": "pw"}}`))
	}))
	defer ts.Close()

	m := NewMediaFlow(logger.NewWithLevel(logger.LevelError))
	creds := models.ProxyCredentials{BaseURL: ts.URL, Password: "pw"}

	assert.Empty(t, m.Rewrite(context.Background(), "https://vixcloud.co/embed/42", "VixCloud", creds))
}

func TestMediaFlowRewriteErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	m := NewMediaFlow(logger.NewWithLevel(logger.LevelError))
	creds := models.ProxyCredentials{BaseURL: ts.URL, Password: "pw"}

	assert.Empty(t, m.Rewrite(context.Background(), "https://vixcloud.co/embed/42", "VixCloud", creds))
}

func TestMediaFlowRewriteUnreachableRelay(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	m := NewMediaFlow(logger.NewWithLevel(logger.LevelError))
	creds := models.ProxyCredentials{BaseURL: ts.URL, Password: "pw"}

	assert.Empty(t, m.Rewrite(context.Background(), "https://vixcloud.co/embed/42", "VixCloud", creds))
}

func TestConstrainedHost(t *testing.T) {
	assert.True(t, ConstrainedHost(models.ProxyCredentials{BaseURL: "https://user-mfp.hf.space"}))
	assert.False(t, ConstrainedHost(models.ProxyCredentials{BaseURL: "https://mfp.example.com"}))
}
