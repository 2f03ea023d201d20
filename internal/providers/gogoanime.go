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

const defaultGADomain = "gogoanime.by"

// GogoAnime scrapes the English-language catalog; episode pages carry one
// embed iframe per mirror server.
type GogoAnime struct {
	base   string
	client *scrapeClient
}

func NewGogoAnime(cfg *config.ServerConfig, client *scrapeClient) *GogoAnime {
	return &GogoAnime{
		base:   "https://" + cfg.Domain(constants.ProviderGogoAnime, defaultGADomain),
		client: client,
	}
}

func (p *GogoAnime) Name() string { return constants.ProviderGogoAnime }

func (p *GogoAnime) Handles(class ContentClass) bool { return class == ClassAnime }

func (p *GogoAnime) Search(ctx context.Context, query string) ([]models.CandidateMedia, error) {
	searchURL := fmt.Sprintf("%s/search.html?keyword=%s", p.base, url.QueryEscape(query))
	doc, err := p.client.document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var out []models.CandidateMedia
	doc.Find("ul.items li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("p.name a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		out = append(out, models.CandidateMedia{
			Title:    strings.TrimSpace(link.AttrOr("title", link.Text())),
			URL:      absoluteURL(p.base, href),
			ImageURL: s.Find("div.img img").AttrOr("src", ""),
			Source:   p.Name(),
		})
		return len(out) < constants.SearchResultCap
	})
	return out, nil
}

func (p *GogoAnime) Episodes(ctx context.Context, mediaURL string) ([]models.Episode, error) {
	doc, err := p.client.document(ctx, mediaURL)
	if err != nil {
		return nil, err
	}

	// The anime page only lists episode ranges; episode pages follow the
	// "<slug>-episode-<n>" convention.
	slug := strings.TrimPrefix(mediaURL, p.base+"/")
	slug = strings.TrimPrefix(slug, "category/")

	last := 0
	doc.Find("#episode_page a").Each(func(_ int, s *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr("ep_end", ""))); err == nil && n > last {
			last = n
		}
	})
	if last == 0 {
		return nil, fmt.Errorf("no episode ranges in %s", mediaURL)
	}

	eps := make([]models.Episode, 0, last)
	for n := 1; n <= last; n++ {
		eps = append(eps, models.Episode{
			Number: n,
			Title:  fmt.Sprintf("Episode %d", n),
			URL:    fmt.Sprintf("%s/%s-episode-%d", p.base, slug, n),
		})
	}
	return eps, nil
}

func (p *GogoAnime) StreamLinks(ctx context.Context, episodeURL string) ([]models.RawStream, error) {
	doc, err := p.client.document(ctx, episodeURL)
	if err != nil {
		return nil, err
	}

	var out []models.RawStream
	doc.Find("div.play-video iframe, div.anime_video_body iframe").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		out = append(out, models.RawStream{
			URL:      src,
			Quality:  "HD",
			Delivery: models.DeliveryIframe,
		})
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("no embed found in %s", episodeURL)
	}
	return out, nil
}
