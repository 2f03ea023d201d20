package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
)

func testNormalizer() *Normalizer {
	return NewNormalizer("ItaloStream", "🍿")
}

func TestNormalizeDirectStream(t *testing.T) {
	n := testNormalizer()
	raw := models.RawStream{
		URL:      "https://vixcloud.co/playlist/123.m3u8",
		Quality:  "1080p",
		Delivery: models.DeliveryDirect,
		Server:   "VixCloud",
	}

	stream := n.Normalize(raw, constants.ProviderStreamingCommunity, "Il Nome della Rosa")

	assert.Equal(t, "ItaloStream\n1080p", stream.Name)
	assert.Contains(t, stream.Title, "StreamingCommunity")
	assert.Contains(t, stream.Title, "Il Nome della Rosa")
	assert.Equal(t, raw.URL, stream.URL)

	require.NotNil(t, stream.BehaviorHints)
	assert.Equal(t, "streamingcommunity1080p", stream.BehaviorHints.BingeGroup)
	// native VixCloud playback needs an injected user agent
	assert.True(t, stream.BehaviorHints.NotWebReady)
	require.NotNil(t, stream.BehaviorHints.ProxyHeaders)
	assert.NotEmpty(t, stream.BehaviorHints.ProxyHeaders.Request["user-agent"])
}

func TestNormalizeIframeStream(t *testing.T) {
	n := testNormalizer()
	raw := models.RawStream{
		URL:      "https://supervideo.tv/e/abc",
		Quality:  "720p",
		Delivery: models.DeliveryIframe,
	}

	stream := n.Normalize(raw, constants.ProviderLordChannel, "")

	assert.Contains(t, stream.Title, "LordChannel")
	require.NotNil(t, stream.BehaviorHints)
	assert.True(t, stream.BehaviorHints.NotWebReady)
	assert.Nil(t, stream.BehaviorHints.ProxyHeaders)
	assert.Equal(t, "lordchannel720p", stream.BehaviorHints.BingeGroup)
}

func TestNormalizeServerLabel(t *testing.T) {
	n := testNormalizer()
	raw := models.RawStream{
		URL:      "https://cdn.animeworld.ac/ep1.mp4",
		Quality:  "HD",
		Delivery: models.DeliveryDirect,
		Server:   "Italian",
	}

	stream := n.Normalize(raw, constants.ProviderAnimeWorld, "One Piece")
	assert.Contains(t, stream.Title, "AnimeWorld Italian")
}

func TestNormalizeIsDeterministic(t *testing.T) {
	n := testNormalizer()
	raw := models.RawStream{
		URL:      "https://example.org/a.m3u8",
		Quality:  "1080p",
		Delivery: models.DeliveryDirect,
	}

	first := n.Normalize(raw, constants.ProviderGuardaSerie, "X")
	second := n.Normalize(raw, constants.ProviderGuardaSerie, "X")
	assert.Equal(t, first, second)
}

func TestProxiedClearsPlaybackHints(t *testing.T) {
	n := testNormalizer()
	raw := models.RawStream{
		URL:      "https://vixcloud.co/playlist/123.m3u8",
		Quality:  "1080p",
		Delivery: models.DeliveryDirect,
	}
	stream := n.Normalize(raw, constants.ProviderStreamingCommunity, "")

	proxied := n.Proxied(stream, "https://mfp.example.com/proxy?d=abc")

	assert.Equal(t, "https://mfp.example.com/proxy?d=abc", proxied.URL)
	require.NotNil(t, proxied.BehaviorHints)
	assert.False(t, proxied.BehaviorHints.NotWebReady)
	assert.Nil(t, proxied.BehaviorHints.ProxyHeaders)
	assert.Equal(t, stream.BehaviorHints.BingeGroup, proxied.BehaviorHints.BingeGroup)
}

func TestConstrainedHostWarning(t *testing.T) {
	n := testNormalizer()
	stream := models.Stream{URL: "https://mfp.example.com/proxy?d=abc"}

	warning := n.ConstrainedHostWarning(stream, constants.ProviderStreamingCommunity)
	assert.Contains(t, warning.Title, "StreamingCommunity")
	assert.Contains(t, warning.Title, "not work")
	assert.Equal(t, stream.URL, warning.URL)
}

func TestChannelStream(t *testing.T) {
	n := testNormalizer()
	ch := Channel{ID: "rai1", Name: "Rai 1", Title: "Rai 1"}
	raw := models.RawStream{
		URL:      "https://mediapolis.rai.it/live.m3u8",
		Delivery: models.DeliveryDirect,
		Server:   "Direct",
	}

	stream := n.ChannelStream(ch, raw, 1)
	assert.Equal(t, "🍿Server 1 Direct Rai 1", stream.Title)
	assert.Equal(t, "tvrai1", stream.BehaviorHints.BingeGroup)
	assert.False(t, stream.BehaviorHints.NotWebReady)
}

func TestQualityOf(t *testing.T) {
	assert.Equal(t, "1080p", qualityOf(models.RawStream{Quality: "1080p", URL: "https://x/y.m3u8"}))
	assert.Equal(t, "720p", qualityOf(models.RawStream{Quality: "720P", URL: "https://x/y.m3u8"}))
	assert.Equal(t, "HD", qualityOf(models.RawStream{Quality: "HD", URL: "https://x/playlist.m3u8"}))
}
