package config

import (
	"strings"

	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/internal/models"
)

const (
	tokenDelimiter        = "|"
	tokenDelimiterEncoded = "%7C"
	mfpOpen               = "MFP["
	mfpClose              = ")"
)

// ParseToken parses the per-request configuration path segment into a
// ProviderConfig.
//
// The token is a list of provider short-codes joined by "|" (or its
// percent-encoded form), optionally carrying an "MFP[<url>,<password>)"
// segment with the relay credentials. Unknown codes are ignored and a
// malformed MFP segment simply leaves the proxy disabled; parsing never
// fails.
func ParseToken(token string) models.ProviderConfig {
	pc := models.ProviderConfig{
		Enabled: make(map[string]bool, len(constants.ProviderOrder)),
	}
	for _, name := range constants.ProviderOrder {
		pc.Enabled[name] = false
	}

	normalized := strings.ReplaceAll(token, tokenDelimiterEncoded, tokenDelimiter)

	pc.Proxy, pc.ProxyEnabled = parseMFP(normalized)

	for _, segment := range strings.Split(normalized, tokenDelimiter) {
		segment = strings.TrimSpace(segment)
		if segment == constants.LiveTVCode {
			pc.LiveTV = true
			continue
		}
		if strings.HasPrefix(segment, mfpOpen) {
			continue
		}
		if name, ok := constants.ShortCodes[segment]; ok {
			pc.Enabled[name] = true
		}
	}

	return pc
}

// parseMFP extracts the relay credentials from an "MFP[url,password)"
// segment: content runs from the single open bracket to the first close
// paren, split on the first comma.
func parseMFP(token string) (models.ProxyCredentials, bool) {
	var creds models.ProxyCredentials

	start := strings.Index(token, mfpOpen)
	if start < 0 {
		return creds, false
	}
	rest := token[start+len(mfpOpen):]

	end := strings.Index(rest, mfpClose)
	if end < 0 {
		return creds, false
	}
	content := rest[:end]

	comma := strings.Index(content, ",")
	if comma < 0 {
		return creds, false
	}

	creds.BaseURL = strings.TrimSpace(content[:comma])
	creds.Password = strings.TrimSpace(content[comma+1:])
	creds.BaseURL = strings.TrimSuffix(creds.BaseURL, "/")

	return creds, creds.BaseURL != "" && creds.Password != ""
}
