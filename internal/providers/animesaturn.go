package providers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
)

const defaultASDomain = "www.animesaturn.cx"

// AnimeSaturn scrapes the anime archive listing and per-episode watch pages.
type AnimeSaturn struct {
	base   string
	client *scrapeClient
}

func NewAnimeSaturn(cfg *config.ServerConfig, client *scrapeClient) *AnimeSaturn {
	return &AnimeSaturn{
		base:   "https://" + cfg.Domain(constants.ProviderAnimeSaturn, defaultASDomain),
		client: client,
	}
}

func (p *AnimeSaturn) Name() string { return constants.ProviderAnimeSaturn }

func (p *AnimeSaturn) Handles(class ContentClass) bool { return class == ClassAnime }

func (p *AnimeSaturn) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	searchURL := fmt.Sprintf("%s/animelist?search=%s", p.base, url.QueryEscape(query))
	doc, err := p.client.document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var out []models.CandidateMedia
	doc.Find("div.item-archivio").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		title := strings.TrimSpace(link.AttrOr("title", link.Text()))
		if title == "" {
			return true
		}

		img := s.Find("img").First()
		image := img.AttrOr("src", img.AttrOr("data-src", ""))

		out = append(out, models.CandidateMedia{
			Title:    title,
			URL:      absoluteURL(p.base, href),
			ImageURL: absoluteURL(p.base, image),
			Source:   p.Name(),
		})
		return len(out) < constants.SearchResultCap
	})
	return out, nil
}

var asEpisodeNumRegex = regexp.MustCompile(`(?i)(?:episodio[- ]?|ep[- ]?)(\d+)`)

func (p *AnimeSaturn) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	doc, err := p.client.document(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	var eps []models.Episode
	next := 1
	doc.Find(`a[href*="/ep/"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		title := strings.TrimSpace(s.Text())

		// Sites do not always number their episodes; fall back to
		// discovery order starting at 1.
		number := next
		if m := asEpisodeNumRegex.FindStringSubmatch(title); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
				number = n
			}
		}
		next = number + 1

		eps = append(eps, models.Episode{
			Number: number,
			Title:  title,
			URL:    absoluteURL(p.base, href),
		})
	})
	return eps, nil
}

var asStreamRegex = regexp.MustCompile(`(https?://[^"'\s]+\.(?:m3u8|mp4)[^"'\s]*)`)

func (p *AnimeSaturn) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	doc, err := p.client.document(ctx, episodeURL)
	if err != nil {
		return nil, err
	}

	var out []models.RawStream

	// The episode page links a watch page which carries the actual file.
	if watchHref, ok := doc.Find(`a[href*="/watch"]`).First().Attr("href"); ok {
		if streams := p.watchStreams(ctx, absoluteURL(p.base, watchHref)); len(streams) > 0 {
			out = append(out, streams...)
		}
	}

	doc.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			out = append(out, models.RawStream{
				URL:      absoluteURL(p.base, src),
				Quality:  "HD",
				Delivery: models.DeliveryIframe,
			})
		}
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("no streams found in %s", episodeURL)
	}
	return out, nil
}

func (p *AnimeSaturn) watchStreams(ctx context.Context, watchURL string) []models.RawStream {
	body, err := p.client.fetch(ctx, watchURL, nil)
	if err != nil {
		p.client.log.Debugf("[animesaturn] watch page fetch failed: %v", err)
		return nil
	}

	var out []models.RawStream
	seen := make(map[string]bool)
	for _, m := range asStreamRegex.FindAllStringSubmatch(string(body), -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, models.RawStream{
			URL:      m[1],
			Quality:  "HD",
			Delivery: models.DeliveryDirect,
		})
	}
	return out
}
