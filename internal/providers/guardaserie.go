package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
)

const defaultGSDomain = "guardaserie.academy"

// GuardaSerie scrapes the series archive; episode players are embedded as
// data-link attributes on the episode list.
type GuardaSerie struct {
	base   string
	client *scrapeClient
}

func NewGuardaSerie(cfg *config.ServerConfig, client *scrapeClient) *GuardaSerie {
	return &GuardaSerie{
		base:   "https://" + cfg.Domain(constants.ProviderGuardaSerie, defaultGSDomain),
		client: client,
	}
}

func (p *GuardaSerie) Name() string { return constants.ProviderGuardaSerie }

func (p *GuardaSerie) Handles(class ContentClass) bool { return class == ClassGeneric }

func (p *GuardaSerie) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	id, season, _ := splitStreamID(query)

	searchURL := fmt.Sprintf("%s/?story=%s&do=search&subaction=search", p.base, url.QueryEscape(id))
	doc, err := p.client.document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var out []models.CandidateMedia
	doc.Find("div.mlnew a.mlnh-thumb").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		mediaURL := absoluteURL(p.base, href)
		if season > 0 {
			mediaURL += "#season-" + strconv.Itoa(season)
		}
		out = append(out, models.CandidateMedia{
			Title:    strings.TrimSpace(s.AttrOr("title", s.Text())),
			URL:      mediaURL,
			ImageURL: absoluteURL(p.base, s.Find("img").AttrOr("src", "")),
			Source:   p.Name(),
		})
		return len(out) < constants.SearchResultCap
	})
	return out, nil
}

func (p *GuardaSerie) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	season := 1
	if idx := strings.Index(mediaURL, "#season-"); idx >= 0 {
		if n, err := strconv.Atoi(mediaURL[idx+len("#season-"):]); err == nil {
			season = n
		}
		mediaURL = mediaURL[:idx]
	}

	doc, err := p.client.document(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	var eps []models.Episode
	next := 1
	selector := fmt.Sprintf("div.season-%d li a[data-link]", season)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		link, ok := s.Attr("data-link")
		if !ok || link == "" {
			return
		}
		number := next
		if n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr("data-num", ""))); err == nil && n >= 1 {
			number = n
		}
		next = number + 1
		eps = append(eps, models.Episode{
			Number: number,
			Title:  strings.TrimSpace(s.Text()),
			URL:    absoluteURL(p.base, link),
		})
	})
	return eps, nil
}

func (p *GuardaSerie) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	// data-link already points at the embed host.
	return []models.RawStream{{
		URL:      episodeURL,
		Quality:  "HD",
		Delivery: models.DeliveryIframe,
	}}, nil
}
