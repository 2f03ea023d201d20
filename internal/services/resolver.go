package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/errors"
	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/internal/providers"
	"github.com/italostream/italostream/pkg/logger"
)

// animeUnavailableURL is the placeholder played when no anime source could
// produce a stream; the anime catalog flow substitutes it instead of failing
// the request.
const animeUnavailableURL = "https://example.com/not_found.mp4"

// Resolver is the aggregation orchestrator. It classifies the content id,
// fans resolution out to the selected providers, and assembles the merged
// stream list in provider declaration order.
type Resolver struct {
	cfg        *config.ServerConfig
	registry   *providers.Registry
	kitsu      KitsuService
	mediaflow  *MediaFlow
	normalizer *Normalizer
	tv         TVService
	log        logger.Logger
}

func NewResolver(cfg *config.ServerConfig, registry *providers.Registry, kitsu KitsuService, mediaflow *MediaFlow, tv TVService, log logger.Logger) *Resolver {
	return &Resolver{
		cfg:        cfg,
		registry:   registry,
		kitsu:      kitsu,
		mediaflow:  mediaflow,
		normalizer: NewNormalizer(cfg.Name, cfg.Icon),
		tv:         tv,
		log:        log,
	}
}

// Resolve returns the streams for one content id under the request's
// provider configuration.
func (r *Resolver) Resolve(ctx context.Context, contentType, id string, pc models.ProviderConfig) ([]models.Stream, error) {
	switch {
	case contentType == "tv":
		return r.resolveTV(ctx, id)
	case strings.HasPrefix(id, "anime_"):
		return r.resolveAnime(ctx, id, pc)
	case strings.HasPrefix(id, "kitsu:"):
		return r.resolveKitsu(ctx, id, pc)
	case strings.HasPrefix(id, "tt"):
		return r.resolveGeneric(ctx, id, pc)
	default:
		return nil, errors.NewUnknownContentTypeError(id)
	}
}

func (r *Resolver) resolveTV(ctx context.Context, id string) ([]models.Stream, error) {
	ch, ok := ChannelByID(id)
	if !ok {
		return nil, errors.NewNoStreamsFoundError(id)
	}

	raws := r.tv.Streams(ctx, ch.ID)
	if len(raws) == 0 {
		return nil, errors.NewNoStreamsFoundError(id)
	}

	streams := make([]models.Stream, 0, len(raws))
	for i, raw := range raws {
		streams = append(streams, r.normalizer.ChannelStream(ch, raw, i+1))
	}
	return streams, nil
}

func (r *Resolver) resolveGeneric(ctx context.Context, id string, pc models.ProviderConfig) ([]models.Stream, error) {
	selected := r.registry.Select(providers.ClassGeneric, pc)
	_, _, episode := splitRequestID(id)

	streams := r.fanOut(ctx, selected, func(ctx context.Context, p providers.Provider) []models.Stream {
		return r.resolveWithProvider(ctx, p, id, episode, pc)
	})
	if len(streams) == 0 {
		return nil, errors.NewNoStreamsFoundError(id)
	}
	return streams, nil
}

func (r *Resolver) resolveKitsu(ctx context.Context, id string, pc models.ProviderConfig) ([]models.Stream, error) {
	title, err := r.kitsu.Title(ctx, id)
	if err != nil {
		r.log.Warnf("kitsu title lookup failed for %s: %v", id, err)
		return nil, errors.NewNoStreamsFoundError(id)
	}

	_, _, episode := splitRequestID(id)
	selected := r.registry.Select(providers.ClassKitsu, pc)

	streams := r.fanOut(ctx, selected, func(ctx context.Context, p providers.Provider) []models.Stream {
		return r.resolveWithProvider(ctx, p, title, episode, pc)
	})
	if len(streams) == 0 {
		return nil, errors.NewNoStreamsFoundError(id)
	}
	return streams, nil
}

// resolveAnime serves the synthetic ids minted by the search catalog. The
// catalog flow never 404s: an empty result substitutes a placeholder stream
// so the client shows the entry as unavailable instead of erroring.
func (r *Resolver) resolveAnime(ctx context.Context, id string, pc models.ProviderConfig) ([]models.Stream, error) {
	base, _, episode := splitRequestID(id)

	source, slug, ok := ParseSyntheticID(base)
	if !ok {
		return nil, errors.NewUnknownContentTypeError(id)
	}

	var streams []models.Stream
	if p, found := r.registry.Get(source); found && pc.IsEnabled(source) {
		streams = r.resolveWithProvider(ctx, p, SlugToQuery(slug), episode, pc)
	}

	if len(streams) == 0 {
		streams = []models.Stream{{
			Name:  r.cfg.Name,
			Title: r.cfg.Icon + "No stream available for this title",
			URL:   animeUnavailableURL,
		}}
	}
	return streams, nil
}

// resolveWithProvider runs one provider's full pipeline: search, pick the
// first candidate, list episodes, pick the requested one, extract and
// normalize the links. Any failure yields an empty result for this provider
// only.
func (r *Resolver) resolveWithProvider(ctx context.Context, p providers.Provider, query string, episode int, pc models.ProviderConfig) []models.Stream {
	candidates, err := p.Search(ctx, query)
	if err != nil {
		r.log.Warnf("%v", errors.NewProviderUnavailableError(p.Name(), err))
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}
	candidate := candidates[0]

	episodes, err := p.Episodes(ctx, candidate.URL)
	if err != nil {
		r.log.Warnf("%v", errors.NewProviderUnavailableError(p.Name(), err))
		return nil
	}
	if len(episodes) == 0 {
		return nil
	}

	target := episodes[0]
	if episode > 0 {
		found := false
		for _, ep := range episodes {
			if ep.Number == episode {
				target = ep
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	raws, err := p.StreamLinks(ctx, target.URL)
	if err != nil {
		r.log.Warnf("%v", errors.NewProviderUnavailableError(p.Name(), err))
		return nil
	}

	var out []models.Stream
	for _, raw := range raws {
		stream := r.normalizer.Normalize(raw, p.Name(), candidate.Title)

		if host, needs := RelayHost(p.Name()); needs && pc.ProxyEnabled {
			proxied := r.mediaflow.Rewrite(ctx, raw.URL, host, pc.Proxy)
			if proxied == "" {
				// relay failed; the native URL would not play without
				// injected headers, so the candidate is dropped
				continue
			}
			stream = r.normalizer.Proxied(stream, proxied)
			out = append(out, stream)

			if p.Name() == constants.ProviderStreamingCommunity && ConstrainedHost(pc.Proxy) {
				out = append(out, r.normalizer.ConstrainedHostWarning(stream, p.Name()))
			}
			continue
		}

		out = append(out, stream)
	}
	return out
}

// fanOut starts one goroutine per provider and joins their results in
// declaration order. Each provider gets its own deadline; a provider that
// panics, errs or overruns contributes nothing. Slot joining keeps the
// output deterministic regardless of completion order.
func (r *Resolver) fanOut(ctx context.Context, selected []providers.Provider, resolve func(context.Context, providers.Provider) []models.Stream) []models.Stream {
	if len(selected) == 0 {
		return nil
	}

	type slotResult struct {
		index   int
		streams []models.Stream
	}

	// Buffered to capacity so late finishers never block after the
	// collector stops reading.
	results := make(chan slotResult, len(selected))

	for i, p := range selected {
		i, p := i, p
		go func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.log.Errorf("provider %s panicked: %v", p.Name(), rec)
					results <- slotResult{index: i}
				}
			}()

			pctx, cancel := context.WithTimeout(ctx, constants.ProviderTimeout)
			defer cancel()

			results <- slotResult{index: i, streams: resolve(pctx, p)}
		}()
	}

	slots := make([][]models.Stream, len(selected))
	deadline := time.After(constants.ProviderTimeout + time.Second)
	for received := 0; received < len(selected); received++ {
		select {
		case res := <-results:
			slots[res.index] = res.streams
		case <-deadline:
			r.log.Warnf("abandoning %d providers still running", len(selected)-received)
			received = len(selected)
		}
	}

	var merged []models.Stream
	for _, streams := range slots {
		merged = append(merged, streams...)
	}
	return merged
}

// splitRequestID splits "base:season:episode" request ids. Plain ids return
// zero season and episode; "base:episode" ids return the trailing number as
// the episode.
func splitRequestID(id string) (base string, season, episode int) {
	parts := strings.Split(id, ":")
	if strings.HasPrefix(id, "kitsu:") {
		// kitsu ids spend their first segment on the namespace
		parts = append([]string{parts[0] + ":" + parts[1]}, parts[2:]...)
	}

	base = parts[0]
	switch len(parts) {
	case 2:
		episode, _ = strconv.Atoi(parts[1])
	case 3:
		season, _ = strconv.Atoi(parts[1])
		episode, _ = strconv.Atoi(parts[2])
	}
	return base, season, episode
}
