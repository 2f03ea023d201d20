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

const defaultAWDomain = "www.animeworld.ac"

// AnimeWorld serves the kitsu-addressed anime branch. Episode pages expose a
// direct download link per audio track, so a single episode usually yields
// two playable candidates (original audio and Italian dub).
type AnimeWorld struct {
	base   string
	client *scrapeClient
}

func NewAnimeWorld(cfg *config.ServerConfig, client *scrapeClient) *AnimeWorld {
	return &AnimeWorld{
		base:   "https://" + cfg.Domain(constants.ProviderAnimeWorld, defaultAWDomain),
		client: client,
	}
}

func (p *AnimeWorld) Name() string { return constants.ProviderAnimeWorld }

func (p *AnimeWorld) Handles(class ContentClass) bool { return class == ClassKitsu }

func (p *AnimeWorld) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	searchURL := fmt.Sprintf("%s/search?keyword=%s", p.base, url.QueryEscape(query))
	doc, err := p.client.document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var out []models.CandidateMedia
	doc.Find("div.film-list div.item").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a.name").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		out = append(out, models.CandidateMedia{
			Title:    strings.TrimSpace(link.Text()),
			URL:      absoluteURL(p.base, href),
			ImageURL: s.Find("img").AttrOr("src", ""),
			Source:   p.Name(),
		})
		return len(out) < constants.SearchResultCap
	})
	return out, nil
}

func (p *AnimeWorld) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	doc, err := p.client.document(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	var eps []models.Episode
	next := 1
	doc.Find("div.server.active ul.episodes li a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		number := next
		if n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr("data-episode-num", s.Text()))); err == nil && n >= 1 {
			number = n
		}
		next = number + 1
		eps = append(eps, models.Episode{
			Number: number,
			Title:  "Episodio " + strconv.Itoa(number),
			URL:    absoluteURL(p.base, href),
		})
	})
	return eps, nil
}

func (p *AnimeWorld) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	doc, err := p.client.document(ctx, episodeURL)
	if err != nil {
		return nil, err
	}

	var out []models.RawStream
	if href, ok := doc.Find("a#alternativeDownloadLink").Attr("href"); ok && href != "" {
		out = append(out, models.RawStream{
			URL:      href,
			Quality:  "HD",
			Delivery: models.DeliveryDirect,
			Server:   "Original",
		})
	}
	if href, ok := doc.Find("a#downloadLink").Attr("href"); ok && href != "" {
		out = append(out, models.RawStream{
			URL:      href,
			Quality:  "HD",
			Delivery: models.DeliveryDirect,
			Server:   "Italian",
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no download links in %s", episodeURL)
	}
	return out, nil
}
