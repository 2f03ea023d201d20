package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/errors"
	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/internal/providers"
	"github.com/italostream/italostream/pkg/logger"
)

type fakeProvider struct {
	name       string
	candidates []models.CandidateMedia
	episodes   []models.Episode
	raws       []models.RawStream
	searchErr  error
	delay      time.Duration
	panics     bool
}

func (f *fakeProvider) Name() string                        { return f.name }
func (f *fakeProvider) Handles(providers.ContentClass) bool { return true }

func (f *fakeProvider) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	if f.panics {
		panic("broken provider")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.candidates, f.searchErr
}

func (f *fakeProvider) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	return f.episodes, nil
}

func (f *fakeProvider) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	return f.raws, nil
}

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	cfg := &config.ServerConfig{Name: "ItaloStream", Icon: "🍿"}
	log := logger.NewWithLevel(logger.LevelError)
	return &Resolver{
		cfg:        cfg,
		mediaflow:  NewMediaFlow(log),
		normalizer: NewNormalizer(cfg.Name, cfg.Icon),
		log:        log,
	}
}

func workingFake(name, streamURL string) *fakeProvider {
	return &fakeProvider{
		name:       name,
		candidates: []models.CandidateMedia{{Title: name + " hit", URL: "https://" + name + ".example/show"}},
		episodes:   []models.Episode{{Number: 1, URL: "https://" + name + ".example/ep1"}},
		raws:       []models.RawStream{{URL: streamURL, Quality: "1080p", Delivery: models.DeliveryDirect}},
	}
}

func TestFanOutPreservesDeclarationOrder(t *testing.T) {
	r := testResolver(t)

	// the first provider finishes last; output order must not change
	slow := workingFake("guardaserie", "https://slow.example/v.m3u8")
	slow.delay = 100 * time.Millisecond
	fast := workingFake("lordchannel", "https://fast.example/v.m3u8")

	selected := []providers.Provider{slow, fast}
	streams := r.fanOut(context.Background(), selected, func(ctx context.Context, p providers.Provider) []models.Stream {
		return r.resolveWithProvider(ctx, p, "tt1:1:1", 1, models.ProviderConfig{})
	})

	require.Len(t, streams, 2)
	assert.Equal(t, "https://slow.example/v.m3u8", streams[0].URL)
	assert.Equal(t, "https://fast.example/v.m3u8", streams[1].URL)
}

func TestFanOutIsolatesFailures(t *testing.T) {
	r := testResolver(t)

	selected := []providers.Provider{
		&fakeProvider{name: "streamingcommunity", searchErr: assert.AnError},
		&fakeProvider{name: "lordchannel", panics: true},
		workingFake("guardaserie", "https://ok.example/v.m3u8"),
	}

	streams := r.fanOut(context.Background(), selected, func(ctx context.Context, p providers.Provider) []models.Stream {
		return r.resolveWithProvider(ctx, p, "tt1:1:1", 1, models.ProviderConfig{})
	})

	require.Len(t, streams, 1)
	assert.Equal(t, "https://ok.example/v.m3u8", streams[0].URL)
}

func TestResolveWithProviderEpisodeSelection(t *testing.T) {
	r := testResolver(t)
	p := &fakeProvider{
		name:       "guardaserie",
		candidates: []models.CandidateMedia{{Title: "Show", URL: "https://x.example/show"}},
		episodes: []models.Episode{
			{Number: 1, URL: "https://x.example/ep1"},
			{Number: 2, URL: "https://x.example/ep2"},
		},
		raws: []models.RawStream{{URL: "https://x.example/v.m3u8", Quality: "HD", Delivery: models.DeliveryIframe}},
	}

	streams := r.resolveWithProvider(context.Background(), p, "tt1:1:2", 2, models.ProviderConfig{})
	require.Len(t, streams, 1)

	// asking for an episode the provider does not list yields nothing
	assert.Empty(t, r.resolveWithProvider(context.Background(), p, "tt1:1:9", 9, models.ProviderConfig{}))
}

func TestResolveWithProviderDropsCandidateOnRelayFailure(t *testing.T) {
	r := testResolver(t)
	p := workingFake(constants.ProviderStreamingCommunity, "https://vixcloud.co/playlist/1.m3u8")

	// proxy enabled but the relay is unreachable, so the header-requiring
	// candidate is dropped rather than served unplayable
	pc := models.ProviderConfig{
		ProxyEnabled: true,
		Proxy:        models.ProxyCredentials{BaseURL: "http://127.0.0.1:1", Password: "pw"},
	}

	streams := r.resolveWithProvider(context.Background(), p, "tt1:1:1", 1, pc)
	assert.Empty(t, streams)
}

func TestResolveWithProviderEmptySearch(t *testing.T) {
	r := testResolver(t)
	p := &fakeProvider{name: "lordchannel"}

	assert.Empty(t, r.resolveWithProvider(context.Background(), p, "tt1", 0, models.ProviderConfig{}))
}

func TestResolveUnknownContentType(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve(context.Background(), "movie", "bogus123", models.ProviderConfig{})
	require.Error(t, err)

	var se *errors.StreamError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, errors.ErrorTypeUnknownContentType, se.Type)
}

func TestResolveAnimePlaceholder(t *testing.T) {
	cfg := &config.ServerConfig{
		Name: "ItaloStream",
		Icon: "🍿",
		Providers: map[string]bool{
			constants.ProviderAnimeSaturn: true,
		},
	}
	log := logger.NewWithLevel(logger.LevelError)
	registry := providers.NewRegistry(cfg, log)
	r := &Resolver{
		cfg:        cfg,
		registry:   registry,
		mediaflow:  NewMediaFlow(log),
		normalizer: NewNormalizer(cfg.Name, cfg.Icon),
		log:        log,
	}

	// the provider exists but the request token does not enable it, so no
	// source is consulted and the placeholder takes over
	pc := models.ProviderConfig{Enabled: map[string]bool{}}
	streams, err := r.Resolve(context.Background(), "anime", "anime_animesaturn_naruto", pc)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, animeUnavailableURL, streams[0].URL)
}

func TestResolveNoProvidersEnabled(t *testing.T) {
	cfg := &config.ServerConfig{
		Name: "ItaloStream",
		Icon: "🍿",
		Providers: map[string]bool{
			constants.ProviderStreamingCommunity: true,
			constants.ProviderLordChannel:        true,
		},
	}
	log := logger.NewWithLevel(logger.LevelError)
	r := &Resolver{
		cfg:        cfg,
		registry:   providers.NewRegistry(cfg, log),
		mediaflow:  NewMediaFlow(log),
		normalizer: NewNormalizer(cfg.Name, cfg.Icon),
		log:        log,
	}

	// no provider is enabled by the request, so nothing is consulted
	pc := models.ProviderConfig{Enabled: map[string]bool{}}
	_, err := r.Resolve(context.Background(), "movie", "tt0000000", pc)
	require.Error(t, err)

	var se *errors.StreamError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, errors.ErrorTypeNoStreamsFound, se.Type)
}

func TestResolveAnimeMalformedID(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve(context.Background(), "anime", "anime_broken", models.ProviderConfig{})
	require.Error(t, err)

	var se *errors.StreamError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, errors.ErrorTypeUnknownContentType, se.Type)
}

func TestSplitRequestID(t *testing.T) {
	base, season, episode := splitRequestID("tt0111161")
	assert.Equal(t, "tt0111161", base)
	assert.Zero(t, season)
	assert.Zero(t, episode)

	base, season, episode = splitRequestID("tt0903747:2:5")
	assert.Equal(t, "tt0903747", base)
	assert.Equal(t, 2, season)
	assert.Equal(t, 5, episode)

	base, season, episode = splitRequestID("kitsu:1234:7")
	assert.Equal(t, "kitsu:1234", base)
	assert.Zero(t, season)
	assert.Equal(t, 7, episode)

	base, _, episode = splitRequestID("anime_animesaturn_naruto:3")
	assert.Equal(t, "anime_animesaturn_naruto", base)
	assert.Equal(t, 3, episode)
}
