package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
)

const defaultAUDomain = "www.animeunity.to"

// AnimeUnity exposes an undocumented JSON archive API; playback goes through
// VixCloud embeds.
type AnimeUnity struct {
	base   string
	client *scrapeClient
}

func NewAnimeUnity(cfg *config.ServerConfig, client *scrapeClient) *AnimeUnity {
	return &AnimeUnity{
		base:   "https://" + cfg.Domain(constants.ProviderAnimeUnity, defaultAUDomain),
		client: client,
	}
}

func (p *AnimeUnity) Name() string { return constants.ProviderAnimeUnity }

func (p *AnimeUnity) Handles(class ContentClass) bool { return class == ClassAnime }

type auSearchResponse struct {
	Records []struct {
		ID       int    `json:"id"`
		Slug     string `json:"slug"`
		Title    string `json:"title"`
		TitleEng string `json:"title_eng"`
		ImageURL string `json:"imageurl"`
	} `json:"records"`
}

func (p *AnimeUnity) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	var resp auSearchResponse
	searchURL := fmt.Sprintf("%s/archivio/get-animes?title=%s", p.base, url.QueryEscape(query))
	if err := p.client.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, err
	}

	var out []models.CandidateMedia
	for _, rec := range resp.Records {
		title := rec.Title
		if title == "" {
			title = rec.TitleEng
		}
		out = append(out, models.CandidateMedia{
			Title:    title,
			URL:      fmt.Sprintf("%s/info_api/%d-%s/episodes", p.base, rec.ID, rec.Slug),
			ImageURL: rec.ImageURL,
			Source:   p.Name(),
		})
		if len(out) >= constants.SearchResultCap {
			break
		}
	}
	return out, nil
}

type auEpisodesResponse struct {
	Episodes []struct {
		ID     int    `json:"id"`
		Number string `json:"number"`
	} `json:"episodes"`
}

func (p *AnimeUnity) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	var resp auEpisodesResponse
	if err := p.client.getJSON(ctx, mediaURL, &resp); err != nil {
		return nil, err
	}

	eps := make([]models.Episode, 0, len(resp.Episodes))
	next := 1
	for _, e := range resp.Episodes {
		number := next
		if n, err := strconv.Atoi(e.Number); err == nil && n >= 1 {
			number = n
		}
		next = number + 1
		eps = append(eps, models.Episode{
			Number: number,
			Title:  "Episodio " + e.Number,
			URL:    fmt.Sprintf("%s/embed-url/%d", p.base, e.ID),
		})
	}
	return eps, nil
}

func (p *AnimeUnity) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	// The embed-url endpoint answers with the bare VixCloud embed address.
	body, err := p.client.fetch(ctx, episodeURL, nil)
	if err != nil {
		return nil, err
	}

	embed := string(body)
	if embed == "" {
		return nil, fmt.Errorf("empty embed response from %s", episodeURL)
	}

	return []models.RawStream{{
		URL:      embed,
		Quality:  "HD",
		Delivery: models.DeliveryIframe,
		Server:   "VixCloud",
	}}, nil
}
