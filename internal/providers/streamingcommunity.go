package providers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
)

const defaultSCDomain = "streamingcommunity.computer"

// StreamingCommunity talks to the site's undocumented JSON API. Streams are
// served through VixCloud and need header injection for playback.
type StreamingCommunity struct {
	base   string
	client *scrapeClient
}

func NewStreamingCommunity(cfg *config.ServerConfig, client *scrapeClient) *StreamingCommunity {
	return &StreamingCommunity{
		base:   "https://" + cfg.Domain(constants.ProviderStreamingCommunity, defaultSCDomain),
		client: client,
	}
}

func (p *StreamingCommunity) Name() string { return constants.ProviderStreamingCommunity }

func (p *StreamingCommunity) Handles(class ContentClass) bool { return class == ClassGeneric }

type scSearchResponse struct {
	Data []struct {
		ID     int    `json:"id"`
		Slug   string `json:"slug"`
		Name   string `json:"name"`
		Images []struct {
			Type     string `json:"type"`
			Filename string `json:"filename"`
		} `json:"images"`
	} `json:"data"`
}

func (p *StreamingCommunity) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	id, season, _ := splitStreamID(query)

	var resp scSearchResponse
	searchURL := fmt.Sprintf("%s/api/search?q=%s", p.base, url.QueryEscape(id))
	if err := p.client.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, err
	}

	var out []models.CandidateMedia
	for _, it := range resp.Data {
		image := ""
		for _, img := range it.Images {
			if img.Type == "poster" {
				image = fmt.Sprintf("https://cdn.%s/images/%s", defaultSCDomain, img.Filename)
				break
			}
		}
		out = append(out, models.CandidateMedia{
			Title:    it.Name,
			URL:      fmt.Sprintf("%s/api/titles/%d-%s?season=%d", p.base, it.ID, it.Slug, season),
			ImageURL: image,
			Source:   p.Name(),
		})
		if len(out) >= constants.SearchResultCap {
			break
		}
	}
	return out, nil
}

type scTitleResponse struct {
	ScwsID   int    `json:"scws_id"`
	Slug     string `json:"slug"`
	Quality  string `json:"quality"`
	Episodes []struct {
		ID     int    `json:"id"`
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"episodes"`
}

func (p *StreamingCommunity) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	var resp scTitleResponse
	if err := p.client.getJSON(ctx, mediaURL, &resp); err != nil {
		return nil, err
	}

	// Movies carry no episode list; the title itself is the playable unit.
	if len(resp.Episodes) == 0 {
		return []models.Episode{{
			Number: 1,
			Title:  resp.Slug,
			URL:    fmt.Sprintf("https://vixcloud.co/embed/%d", resp.ScwsID),
		}}, nil
	}

	eps := make([]models.Episode, 0, len(resp.Episodes))
	next := 1
	for _, e := range resp.Episodes {
		number := e.Number
		if number < 1 {
			number = next
		}
		next = number + 1
		eps = append(eps, models.Episode{
			Number: number,
			Title:  e.Name,
			URL:    fmt.Sprintf("https://vixcloud.co/embed/%d", e.ID),
		})
	}
	return eps, nil
}

var (
	scPlaylistRegex = regexp.MustCompile(`url:\s*'([^']+)'`)
	scQualityRegex  = regexp.MustCompile(`"quality":\s*(\d+)`)
)

func (p *StreamingCommunity) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	body, err := p.client.fetch(ctx, episodeURL, nil)
	if err != nil {
		return nil, err
	}

	m := scPlaylistRegex.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("no playlist found in %s", episodeURL)
	}

	quality := "HD"
	if qm := scQualityRegex.FindSubmatch(body); qm != nil {
		quality = string(qm[1]) + "p"
	}

	return []models.RawStream{{
		URL:      string(m[1]),
		Quality:  quality,
		Delivery: models.DeliveryDirect,
		Server:   "VixCloud",
	}}, nil
}
