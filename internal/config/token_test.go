package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/italostream/italostream/internal/constants"
)

func TestParseTokenProviderCodes(t *testing.T) {
	pc := ParseToken("SC|AS|AU")

	assert.True(t, pc.IsEnabled(constants.ProviderStreamingCommunity))
	assert.True(t, pc.IsEnabled(constants.ProviderAnimeSaturn))
	assert.True(t, pc.IsEnabled(constants.ProviderAnimeUnity))
	assert.False(t, pc.IsEnabled(constants.ProviderLordChannel))
	assert.False(t, pc.IsEnabled(constants.ProviderGuardaSerie))
	assert.False(t, pc.LiveTV)
	assert.False(t, pc.ProxyEnabled)
}

func TestParseTokenEncodedDelimiter(t *testing.T) {
	pc := ParseToken("SC%7CLC%7CLIVETV")

	assert.True(t, pc.IsEnabled(constants.ProviderStreamingCommunity))
	assert.True(t, pc.IsEnabled(constants.ProviderLordChannel))
	assert.True(t, pc.LiveTV)
}

func TestParseTokenMFPCredentials(t *testing.T) {
	pc := ParseToken("SC|MFP[https://mfp.example.com,supersecret)")

	assert.True(t, pc.ProxyEnabled)
	assert.Equal(t, "https://mfp.example.com", pc.Proxy.BaseURL)
	assert.Equal(t, "supersecret", pc.Proxy.Password)
}

func TestParseTokenMFPPasswordWithParens(t *testing.T) {
	// the credential segment closes on the first paren, so a password may
	// not contain one but trailing parens after the close are harmless
	pc := ParseToken("SC|MFP[http://relay.example,secret))")

	assert.True(t, pc.ProxyEnabled)
	assert.Equal(t, "http://relay.example", pc.Proxy.BaseURL)
	assert.Equal(t, "secret", pc.Proxy.Password)
}

func TestParseTokenMFPTrailingSlash(t *testing.T) {
	pc := ParseToken("MFP[https://mfp.example.com/,pw)")

	assert.True(t, pc.ProxyEnabled)
	assert.Equal(t, "https://mfp.example.com", pc.Proxy.BaseURL)
}

func TestParseTokenMalformedMFP(t *testing.T) {
	cases := []string{
		"SC|MFP[https://mfp.example.com,pw", // no close
		"SC|MFP[https://mfp.example.com)",   // no comma
		"SC|MFP[,pw)",                       // empty url
		"SC|MFP[https://mfp.example.com,)",  // empty password
	}
	for _, token := range cases {
		pc := ParseToken(token)
		assert.False(t, pc.ProxyEnabled, "token %q should not enable the proxy", token)
		assert.True(t, pc.IsEnabled(constants.ProviderStreamingCommunity), "token %q should still enable providers", token)
	}
}

func TestParseTokenUnknownCodesIgnored(t *testing.T) {
	pc := ParseToken("SC|XX|bogus|")

	assert.True(t, pc.IsEnabled(constants.ProviderStreamingCommunity))
	for name, enabled := range pc.Enabled {
		if name != constants.ProviderStreamingCommunity {
			assert.False(t, enabled, "provider %s should stay disabled", name)
		}
	}
}

func TestParseTokenEmpty(t *testing.T) {
	pc := ParseToken("")

	for name, enabled := range pc.Enabled {
		assert.False(t, enabled, "provider %s should be disabled", name)
	}
	assert.False(t, pc.LiveTV)
	assert.False(t, pc.ProxyEnabled)
}
