package services

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/cehbz/torrentname"

	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
	"github.com/italostream/italostream/pkg/httputil"
)

// providerLabels maps canonical provider names to their display labels.
var providerLabels = map[string]string{
	constants.ProviderStreamingCommunity: "StreamingCommunity",
	constants.ProviderLordChannel:        "LordChannel",
	constants.ProviderGuardaSerie:        "GuardaSerie",
	constants.ProviderAnimeWorld:         "AnimeWorld",
	constants.ProviderAnimeSaturn:        "AnimeSaturn",
	constants.ProviderAnimeUnity:         "AnimeUnity",
	constants.ProviderGogoAnime:          "GogoAnime",
}

// playbackHeaders lists, per provider, the request headers the player must
// send for the native (unproxied) stream to work.
var playbackHeaders = map[string]map[string]string{
	constants.ProviderStreamingCommunity: {
		"user-agent": httputil.DefaultUserAgent,
	},
	constants.ProviderAnimeUnity: {
		"referer": "https://" + defaultAUReferer + "/",
	},
}

const defaultAUReferer = "www.animeunity.to"

// relayHosts names the MFP extractor host label per provider whose streams
// require the relay when one is configured.
var relayHosts = map[string]string{
	constants.ProviderStreamingCommunity: "VixCloud",
	constants.ProviderAnimeUnity:         "VixCloud",
}

// Normalizer converts raw provider candidates into client-facing stream
// descriptors. It is stateless and pure: the same input always produces the
// same descriptor.
type Normalizer struct {
	name string
	icon string
}

func NewNormalizer(name, icon string) *Normalizer {
	return &Normalizer{name: name, icon: icon}
}

// Normalize builds the canonical descriptor for one raw stream. provider is
// the canonical provider name; contentName, when non-empty, is shown under
// the provider label.
func (n *Normalizer) Normalize(raw models.RawStream, provider, contentName string) models.Stream {
	label, ok := providerLabels[provider]
	if !ok {
		label = provider
	}
	quality := qualityOf(raw)

	name := n.name
	if quality != "" {
		name += "\n" + quality
	}

	title := n.icon + label
	if raw.Server != "" {
		title += " " + raw.Server
	}
	if quality != "" && quality != "HD" {
		title += " " + quality
	}
	if contentName != "" {
		title += "\n " + contentName
	}

	_, needsHeaders := playbackHeaders[provider]

	stream := models.Stream{
		Name:  name,
		Title: title,
		URL:   raw.URL,
		BehaviorHints: &models.StreamBehaviorHints{
			NotWebReady: raw.Delivery == models.DeliveryIframe || needsHeaders,
			BingeGroup:  provider + strings.ToLower(quality),
		},
	}
	if headers, ok := playbackHeaders[provider]; ok {
		stream.BehaviorHints.ProxyHeaders = &models.ProxyHeaders{Request: headers}
	}
	return stream
}

// RelayHost returns the MFP host label for a provider whose streams require
// header injection, and whether the provider requires it at all.
func RelayHost(provider string) (string, bool) {
	host, ok := relayHosts[provider]
	return host, ok
}

// Proxied rebinds a normalized descriptor to its relay-routed URL: the proxy
// injects the headers, so the hints are cleared and the stream becomes web
// ready.
func (n *Normalizer) Proxied(stream models.Stream, proxiedURL string) models.Stream {
	stream.URL = proxiedURL
	stream.BehaviorHints = &models.StreamBehaviorHints{
		NotWebReady: false,
		BingeGroup:  stream.BehaviorHints.BingeGroup,
	}
	return stream
}

// ConstrainedHostWarning builds the extra warning-only descriptor emitted
// alongside a proxied stream when the relay runs on a sandboxed host.
func (n *Normalizer) ConstrainedHostWarning(stream models.Stream, provider string) models.Stream {
	label, ok := providerLabels[provider]
	if !ok {
		label = provider
	}
	return models.Stream{
		Name:  n.name,
		Title: n.icon + label + "\n This proxied link will most likely not work on this relay host",
		URL:   stream.URL,
	}
}

// ChannelStream builds the descriptor for one live TV source.
func (n *Normalizer) ChannelStream(channel Channel, raw models.RawStream, index int) models.Stream {
	return models.Stream{
		Title: fmt.Sprintf("%sServer %d %s %s", n.icon, index, raw.Server, channel.Title),
		URL:   raw.URL,
		BehaviorHints: &models.StreamBehaviorHints{
			NotWebReady: raw.Delivery == models.DeliveryIframe,
			BingeGroup:  "tv" + channel.ID,
		},
	}
}

var resolutionRegex = regexp.MustCompile(`(?i)^\d{3,4}p$`)

// qualityOf extracts a display quality from the raw candidate: the
// provider's own hint when it looks like a resolution, otherwise whatever a
// release-name parse of the URL's filename yields, otherwise the hint as-is.
func qualityOf(raw models.RawStream) string {
	hint := strings.TrimSpace(raw.Quality)
	if resolutionRegex.MatchString(hint) {
		return strings.ToLower(hint)
	}

	if parsed := torrentname.Parse(path.Base(raw.URL)); parsed != nil && parsed.Resolution != "" {
		return parsed.Resolution
	}

	return hint
}
