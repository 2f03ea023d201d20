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

const defaultLCDomain = "lordchannel.net"

// LordChannel scrapes the site's search and player pages.
type LordChannel struct {
	base   string
	client *scrapeClient
}

func NewLordChannel(cfg *config.ServerConfig, client *scrapeClient) *LordChannel {
	return &LordChannel{
		base:   "https://" + cfg.Domain(constants.ProviderLordChannel, defaultLCDomain),
		client: client,
	}
}

func (p *LordChannel) Name() string { return constants.ProviderLordChannel }

func (p *LordChannel) Handles(class ContentClass) bool { return class == ClassGeneric }

func (p *LordChannel) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	id, season, _ := splitStreamID(query)

	searchURL := fmt.Sprintf("%s/search/?story=%s&do=search&subaction=search", p.base, url.QueryEscape(id))
	doc, err := p.client.document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var out []models.CandidateMedia
	doc.Find("div.list-film a.film-link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		title := strings.TrimSpace(s.AttrOr("title", s.Text()))
		mediaURL := absoluteURL(p.base, href)
		if season > 0 {
			mediaURL += "?stagione=" + strconv.Itoa(season)
		}
		out = append(out, models.CandidateMedia{
			Title:    title,
			URL:      mediaURL,
			ImageURL: absoluteURL(p.base, s.Find("img").AttrOr("data-src", "")),
			Source:   p.Name(),
		})
		return len(out) < constants.SearchResultCap
	})
	return out, nil
}

var lcEpisodeNumRegex = regexp.MustCompile(`(?i)episodio[- ]?(\d+)`)

func (p *LordChannel) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	doc, err := p.client.document(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	var eps []models.Episode
	next := 1
	doc.Find("div.tab-content a.episode-link").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		title := strings.TrimSpace(s.Text())
		number := next
		if m := lcEpisodeNumRegex.FindStringSubmatch(title); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
				number = n
			}
		}
		next = number + 1
		eps = append(eps, models.Episode{Number: number, Title: title, URL: absoluteURL(p.base, href)})
	})

	// Movie pages have no episode tabs; the page itself is the target.
	if len(eps) == 0 {
		eps = append(eps, models.Episode{Number: 1, URL: mediaURL})
	}
	return eps, nil
}

func (p *LordChannel) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	doc, err := p.client.document(ctx, episodeURL)
	if err != nil {
		return nil, err
	}

	quality := "720p"
	if strings.Contains(doc.Find("span.quality").Text(), "FULL HD") {
		quality = "1080p"
	}

	var out []models.RawStream
	doc.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", s.AttrOr("data-src", ""))
		if src == "" {
			return
		}
		out = append(out, models.RawStream{
			URL:      absoluteURL(p.base, src),
			Quality:  quality,
			Delivery: models.DeliveryIframe,
		})
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("no player found in %s", episodeURL)
	}
	return out, nil
}
