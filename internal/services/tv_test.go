package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italostream/italostream/internal/config"
	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/pkg/logger"
)

func testTV(t *testing.T, sources ...string) *TV {
	t.Helper()
	cfg := &config.ServerConfig{TVSources: make(map[string]bool)}
	for _, kind := range sources {
		cfg.TVSources[kind] = true
	}
	return NewTV(cfg, logger.NewWithLevel(logger.LevelError))
}

func TestTVStreamsHonorsSourceFlags(t *testing.T) {
	// la7 carries a direct URL and a DLHD number; neither needs the network
	tv := testTV(t, constants.TVSourceDirect, constants.TVSourceDLHD)

	streams := tv.Streams(context.Background(), "la7")
	require.Len(t, streams, 2)
	assert.Equal(t, "Direct", streams[0].Server)
	assert.Equal(t, "DLHD", streams[1].Server)

	tv = testTV(t, constants.TVSourceDirect)
	streams = tv.Streams(context.Background(), "la7")
	require.Len(t, streams, 1)
	assert.Equal(t, "Direct", streams[0].Server)
}

func TestTVStreamsIncludesExtraURLs(t *testing.T) {
	ch, ok := ChannelByID("skytg24")
	require.True(t, ok)
	require.NotEmpty(t, ch.ExtraURLs)

	tv := testTV(t, constants.TVSourceDirect, constants.TVSourceExtra)
	streams := tv.Streams(context.Background(), "skytg24")
	require.Len(t, streams, 2)
	assert.Equal(t, ch.URL, streams[0].URL)
	assert.Equal(t, ch.ExtraURLs[0], streams[1].URL)

	tv = testTV(t, constants.TVSourceDirect)
	streams = tv.Streams(context.Background(), "skytg24")
	require.Len(t, streams, 1)
}

func TestTVStreamsUnknownChannel(t *testing.T) {
	tv := testTV(t, constants.TVSources...)
	assert.Nil(t, tv.Streams(context.Background(), "nope"))
}
