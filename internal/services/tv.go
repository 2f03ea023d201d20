package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/pkg/httputil"
	"github.com/italostream/italostream/pkg/logger"
)

// TVService resolves live TV channels into playable sources.
type TVService interface {
	Streams(ctx context.Context, channelID string) []models.RawStream
}

type TV struct {
	cfg    *config.ServerConfig
	client *http.Client
	log    logger.Logger
}

func NewTV(cfg *config.ServerConfig, log logger.Logger) *TV {
	return &TV{
		cfg:    cfg,
		client: httputil.NewBrowserClient(constants.ScrapeTimeout),
		log:    log,
	}
}

// Streams gathers every applicable source for a channel, in the registry's
// source order. A source kind is consulted only when the server enables it.
// Extraction failures drop the single source, never the channel.
func (t *TV) Streams(ctx context.Context, channelID string) []models.RawStream {
	ch, ok := ChannelByID(channelID)
	if !ok {
		return nil
	}

	var out []models.RawStream

	if ch.URL != "" && t.cfg.TVSourceEnabled(constants.TVSourceDirect) {
		out = append(out, models.RawStream{
			URL:      ch.URL,
			Quality:  "HD",
			Delivery: models.DeliveryDirect,
			Server:   "Direct",
		})
	}
	if t.cfg.TVSourceEnabled(constants.TVSourceExtra) {
		for _, u := range ch.ExtraURLs {
			out = append(out, models.RawStream{
				URL:      u,
				Quality:  "HD",
				Delivery: models.DeliveryDirect,
				Server:   "Direct",
			})
		}
	}
	if ch.OkruID != "" && t.cfg.TVSourceEnabled(constants.TVSourceOkru) {
		if u, err := t.okruManifest(ctx, ch.OkruID); err != nil {
			t.log.Warnf("okru extraction failed for %s: %v", ch.ID, err)
		} else {
			out = append(out, models.RawStream{
				URL:      u,
				Quality:  "HD",
				Delivery: models.DeliveryDirect,
				Server:   "OK.ru",
			})
		}
	}
	if ch.SkyID != "" && t.cfg.TVSourceEnabled(constants.TVSourceSky) {
		if u, err := t.skyLivestream(ctx, ch.SkyID); err != nil {
			t.log.Warnf("sky extraction failed for %s: %v", ch.ID, err)
		} else {
			out = append(out, models.RawStream{
				URL:      u,
				Quality:  "HD",
				Delivery: models.DeliveryDirect,
				Server:   "Sky",
			})
		}
	}
	if ch.VaryName != "" && t.cfg.TVSourceEnabled(constants.TVSourceVary) {
		out = append(out, models.RawStream{
			URL:      fmt.Sprintf("https://live3.msf.cdn.mediaset.net/content/hls_h0_clr_vos/live/channel(%s)/index.m3u8", ch.VaryName),
			Quality:  "HD",
			Delivery: models.DeliveryDirect,
			Server:   "Mediaset",
		})
	}
	if ch.DLHDNum != "" && t.cfg.TVSourceEnabled(constants.TVSourceDLHD) {
		out = append(out, models.RawStream{
			URL:      fmt.Sprintf("https://xyzdddd.mizhls.ru/lb/premium%s/index.m3u8", ch.DLHDNum),
			Quality:  "HD",
			Delivery: models.DeliveryDirect,
			Server:   "DLHD",
		})
	}

	return out
}

var okruManifestRegex = regexp.MustCompile(`"hlsManifestUrl":"([^"]+)"`)

// okruManifest scrapes the HLS manifest URL out of an OK.ru embed page.
func (t *TV) okruManifest(ctx context.Context, videoID string) (string, error) {
	body, err := t.get(ctx, "https://ok.ru/videoembed/"+videoID)
	if err != nil {
		return "", err
	}

	page := html.UnescapeString(string(body))
	m := okruManifestRegex.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("no manifest in embed page for %s", videoID)
	}
	return strings.ReplaceAll(m[1], `&`, "&"), nil
}

// skyLivestream asks the Sky VDP API for a channel's livestream URL.
func (t *TV) skyLivestream(ctx context.Context, skyID string) (string, error) {
	body, err := t.get(ctx, "https://apid.sky.it/vdp/v1/getLivestream?id="+skyID+"&isMobile=false")
	if err != nil {
		return "", err
	}

	var payload struct {
		StreamingURL string `json:"streaming_url"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding sky response: %w", err)
	}
	if payload.StreamingURL == "" {
		return "", fmt.Errorf("empty streaming_url for %s", skyID)
	}
	return payload.StreamingURL, nil
}

func (t *TV) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
