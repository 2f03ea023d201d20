// Package services implements the stream resolution pipeline: the
// aggregation orchestrator, the stream-link normalizer, the MFP proxy
// rewriter, the anime search merger and the live TV branch.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/italostream/italostream/internal/cache"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/database"
	"github.com/italostream/italostream/pkg/httputil"
	"github.com/italostream/italostream/pkg/logger"
	"github.com/italostream/italostream/pkg/ratelimiter"
)

const kitsuAPIBase = "https://kitsu.io/api/edge"

// KitsuService resolves kitsu ids to canonical titles.
type KitsuService interface {
	Title(ctx context.Context, kitsuID string) (string, error)
}

// Kitsu resolves titles against the Kitsu API, memoized in the LRU cache and
// persisted in bolt so restarts do not re-query ids already seen.
type Kitsu struct {
	client  *http.Client
	cache   *cache.LRUCache
	db      database.Database
	limiter ratelimiter.RateLimiter
	logger  logger.Logger
}

func NewKitsu(memCache *cache.LRUCache, db database.Database, log logger.Logger) *Kitsu {
	return &Kitsu{
		client:  httputil.NewHTTPClient(10 * time.Second),
		cache:   memCache,
		db:      db,
		limiter: ratelimiter.NewTokenBucket(constants.KitsuRateBurst, constants.KitsuRateLimit),
		logger:  log,
	}
}

type kitsuAnimeResponse struct {
	Data struct {
		Attributes struct {
			CanonicalTitle string `json:"canonicalTitle"`
			Titles         struct {
				En   string `json:"en"`
				EnJp string `json:"en_jp"`
			} `json:"titles"`
		} `json:"attributes"`
	} `json:"data"`
}

// Title resolves "kitsu:<id>" (optionally "kitsu:<id>:<ep>") to the entry's
// canonical title.
func (k *Kitsu) Title(ctx context.Context, kitsuID string) (string, error) {
	id := strings.TrimPrefix(kitsuID, "kitsu:")
	if idx := strings.Index(id, ":"); idx >= 0 {
		id = id[:idx]
	}

	cacheKey := "kitsu:" + id
	if v, ok := k.cache.Get(cacheKey); ok {
		return v.(string), nil
	}

	if k.db != nil {
		if entry, err := k.db.GetKitsuTitle(id); err == nil && entry != nil {
			k.cache.Set(cacheKey, entry.Title)
			return entry.Title, nil
		}
	}

	k.limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/anime/%s", kitsuAPIBase, id), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.api+json")

	resp, err := k.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("kitsu API returned status %d for id %s", resp.StatusCode, id)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var decoded kitsuAnimeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode kitsu response: %w", err)
	}

	title := decoded.Data.Attributes.CanonicalTitle
	if title == "" {
		title = decoded.Data.Attributes.Titles.En
	}
	if title == "" {
		title = decoded.Data.Attributes.Titles.EnJp
	}
	if title == "" {
		return "", fmt.Errorf("kitsu entry %s has no usable title", id)
	}

	k.cache.Set(cacheKey, title)
	if k.db != nil {
		if err := k.db.StoreKitsuTitle(&database.KitsuTitle{KitsuID: id, Title: title}); err != nil {
			k.logger.Warnf("[kitsu] failed to persist title for %s: %v", id, err)
		}
	}

	return title, nil
}
