package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/italostream/italostream/internal/constants"
)

func TestApplyDefaultsEnablesAllTVSources(t *testing.T) {
	cfg := &ServerConfig{}
	cfg.applyDefaults()

	for _, kind := range constants.TVSources {
		assert.True(t, cfg.TVSourceEnabled(kind), kind)
	}
	assert.False(t, cfg.TVSourceEnabled("unknown"))
}

func TestTVSourcesFromEnv(t *testing.T) {
	t.Setenv("TV_SOURCES", "direct, DLHD")

	cfg := &ServerConfig{}
	cfg.loadFromEnv()
	cfg.applyDefaults()

	assert.True(t, cfg.TVSourceEnabled(constants.TVSourceDirect))
	assert.True(t, cfg.TVSourceEnabled(constants.TVSourceDLHD))
	assert.False(t, cfg.TVSourceEnabled(constants.TVSourceSky))
	assert.False(t, cfg.TVSourceEnabled(constants.TVSourceOkru))
}
