package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italostream/italostream/pkg/logger"
)

func TestSplitStreamID(t *testing.T) {
	id, season, episode := splitStreamID("tt0111161")
	assert.Equal(t, "tt0111161", id)
	assert.Zero(t, season)
	assert.Zero(t, episode)

	id, season, episode = splitStreamID("tt0903747:2:5")
	assert.Equal(t, "tt0903747", id)
	assert.Equal(t, 2, season)
	assert.Equal(t, 5, episode)
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://site.example/show/1", absoluteURL("https://site.example", "/show/1"))
	assert.Equal(t, "https://site.example/show/1", absoluteURL("https://site.example/", "show/1"))
	assert.Equal(t, "https://other.example/x", absoluteURL("https://site.example", "https://other.example/x"))
	assert.Equal(t, "", absoluteURL("https://site.example", ""))
}

func TestRetryableStatus(t *testing.T) {
	assert.True(t, retryableStatus(http.StatusTooManyRequests))
	assert.True(t, retryableStatus(http.StatusInternalServerError))
	assert.True(t, retryableStatus(http.StatusBadGateway))
	assert.False(t, retryableStatus(http.StatusNotFound))
	assert.False(t, retryableStatus(http.StatusOK))
}

func TestFetchRetriesOnServerError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer ts.Close()

	c := newScrapeClient(logger.NewWithLevel(logger.LevelError))
	body, err := c.fetch(context.Background(), ts.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newScrapeClient(logger.NewWithLevel(logger.LevelError))
	_, err := c.fetch(context.Background(), ts.URL, nil)

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"name": "test"}`))
	}))
	defer ts.Close()

	c := newScrapeClient(logger.NewWithLevel(logger.LevelError))

	var payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.getJSON(context.Background(), ts.URL, &payload))
	assert.Equal(t, "test", payload.Name)
}
