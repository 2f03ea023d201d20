// Package providers implements the upstream source capabilities.
//
// Every provider is an untrusted, slow, independently failing site wrapped
// behind the same three-operation contract: search, list episodes, extract
// stream links. Failures never propagate past this boundary as anything
// other than an error return; callers treat a failing provider exactly like
// one that found nothing.
package providers

import (
	"context"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/pkg/logger"
)

// ContentClass partitions the identifier namespaces a provider can serve.
type ContentClass int

const (
	// ClassGeneric covers movie/series requests addressed by external
	// database ids ("tt...").
	ClassGeneric ContentClass = iota
	// ClassKitsu covers anime requests addressed by "kitsu:" ids.
	ClassKitsu
	// ClassAnime covers the synthetic "anime_<provider>_<slug>" ids built
	// by the search catalog.
	ClassAnime
)

// Provider is the Source Capability contract.
type Provider interface {
	// Name returns the canonical provider name.
	Name() string

	// Handles reports whether this provider serves identifiers of the
	// given class.
	Handles(class ContentClass) bool

	// Search returns candidate media for a query. The query is either a
	// free-text title or a namespaced content id, depending on class.
	Search(ctx context.Context, query string) ([]models.CandidateMedia, error)

	// Episodes lists the episodes reachable from a candidate's locator.
	Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error)

	// StreamLinks extracts raw playable candidates for one episode.
	StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error)
}

// Registry holds the providers globally enabled by the server configuration,
// in fixed declaration order.
type Registry struct {
	order     []string
	providers map[string]Provider
}

// NewRegistry constructs every globally enabled provider. The registry is
// built once at startup and read-only afterwards.
func NewRegistry(cfg *config.ServerConfig, log logger.Logger) *Registry {
	sc := newScrapeClient(log)

	// Construction order matches constants.ProviderOrder; stream assembly
	// relies on it.
	all := []Provider{
		NewStreamingCommunity(cfg, sc),
		NewLordChannel(cfg, sc),
		NewGuardaSerie(cfg, sc),
		NewAnimeWorld(cfg, sc),
		NewAnimeSaturn(cfg, sc),
		NewAnimeUnity(cfg, sc),
		NewGogoAnime(cfg, sc),
	}

	r := &Registry{providers: make(map[string]Provider, len(all))}
	for _, p := range all {
		if !cfg.ProviderEnabled(p.Name()) {
			continue
		}
		r.providers[p.Name()] = p
		r.order = append(r.order, p.Name())
	}
	return r
}

// Get returns a provider by canonical name.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Select returns, in declaration order, the providers that serve the given
// class and are enabled by the per-request configuration.
func (r *Registry) Select(class ContentClass, pc models.ProviderConfig) []Provider {
	var out []Provider
	for _, name := range r.order {
		p := r.providers[name]
		if p.Handles(class) && pc.IsEnabled(name) {
			out = append(out, p)
		}
	}
	return out
}

// Names returns the registered provider names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// HasAnimeSearch reports whether at least one anime-searchable provider is
// registered; the anime catalogs only appear in the manifest when true.
func (r *Registry) HasAnimeSearch() bool {
	for _, name := range r.order {
		if r.providers[name].Handles(ClassAnime) {
			return true
		}
	}
	return false
}
