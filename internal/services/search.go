package services

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/mozillazg/go-unidecode"
	"github.com/sourcegraph/conc/pool"

	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/internal/providers"
	"github.com/italostream/italostream/pkg/logger"
)

// SearchMerger fans an anime search out to every enabled anime provider and
// merges the per-provider results into one deduplicated catalog page.
type SearchMerger struct {
	registry *providers.Registry
	log      logger.Logger
}

func NewSearchMerger(registry *providers.Registry, log logger.Logger) *SearchMerger {
	return &SearchMerger{registry: registry, log: log}
}

// SearchAll queries the anime providers concurrently and merges results in
// provider declaration order. Duplicate titles keep the first provider's
// entry; the merged list is capped. A failing provider contributes nothing.
func (s *SearchMerger) SearchAll(ctx context.Context, query string, pc models.ProviderConfig) []models.CandidateMedia {
	selected := s.registry.Select(providers.ClassAnime, pc)
	if len(selected) == 0 {
		return nil
	}

	slots := make([][]models.CandidateMedia, len(selected))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(len(selected))
	for i, prov := range selected {
		p.Go(func() {
			results, err := prov.Search(ctx, query)
			if err != nil {
				s.log.Warnf("anime search failed on %s: %v", prov.Name(), err)
				return
			}
			// only the merged list is capped; truncating per provider
			// would starve the page when a single provider is enabled
			for j := range results {
				results[j].Source = prov.Name()
			}
			mu.Lock()
			slots[i] = results
			mu.Unlock()
		})
	}
	p.Wait()

	return mergeCandidates(slots)
}

// mergeCandidates flattens per-provider result slots in slot order, dropping
// duplicate titles (first provider wins) and capping the merged list.
func mergeCandidates(slots [][]models.CandidateMedia) []models.CandidateMedia {
	seen := make(map[string]bool)
	var merged []models.CandidateMedia
	for _, results := range slots {
		for _, c := range results {
			key := normalizeTitleKey(c.Title)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, c)
			if len(merged) >= constants.SearchResultCap {
				return merged
			}
		}
	}
	return merged
}

var (
	titlePunctRegex = regexp.MustCompile(`[^\w\s]`)
	titleSpaceRegex = regexp.MustCompile(`\s+`)
)

// normalizeTitleKey reduces a title to its dedup key: punctuation stripped,
// lowercased, runs of whitespace collapsed.
func normalizeTitleKey(title string) string {
	key := titlePunctRegex.ReplaceAllString(title, "")
	key = strings.ToLower(key)
	key = titleSpaceRegex.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// SyntheticID builds the catalog id for an anime search hit. Punctuation is
// stripped and spaces become underscores. The source name never contains an
// underscore, so the provider segment is recoverable.
func SyntheticID(source, title string) string {
	slug := unidecode.Unidecode(title)
	slug = titlePunctRegex.ReplaceAllString(slug, "")
	slug = strings.ToLower(slug)
	slug = titleSpaceRegex.ReplaceAllString(strings.TrimSpace(slug), "_")
	return "anime_" + source + "_" + slug
}

// ParseSyntheticID splits a synthetic anime id into its provider and slug
// segments.
func ParseSyntheticID(id string) (source, slug string, ok bool) {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) != 3 || parts[0] != "anime" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// SlugToQuery turns a synthetic id's slug segment back into a searchable
// title.
func SlugToQuery(slug string) string {
	return strings.ReplaceAll(slug, "_", " ")
}
