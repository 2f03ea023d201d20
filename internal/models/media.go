package models

// DeliveryType classifies how a raw link plays back.
type DeliveryType string

const (
	DeliveryDirect DeliveryType = "direct"
	DeliveryIframe DeliveryType = "iframe"
)

// CandidateMedia is a single hit from a provider's search. URL is a
// source-internal locator, only meaningful to the provider that produced it.
type CandidateMedia struct {
	Title    string
	URL      string
	ImageURL string
	Source   string
}

// Episode is one entry of a provider's episode listing. Numbers need not be
// contiguous; providers assign sequential numbers starting at 1 when the
// site does not expose one.
type Episode struct {
	Number int
	Title  string
	URL    string
}

// RawStream is a provider's raw playable candidate before normalization.
type RawStream struct {
	URL      string
	Quality  string // free text: "HD", "1080p", ...
	Delivery DeliveryType
	Server   string // origin host label, optional
}

// ProxyCredentials holds the optional MFP relay coordinates parsed from the
// per-request configuration token.
type ProxyCredentials struct {
	BaseURL  string
	Password string
}

// ProviderConfig is the per-request provider-enable map. Built once from the
// configuration token, read-only afterwards.
type ProviderConfig struct {
	Enabled      map[string]bool
	LiveTV       bool
	Proxy        ProxyCredentials
	ProxyEnabled bool
}

// IsEnabled reports whether the request enabled the named provider.
func (pc ProviderConfig) IsEnabled(provider string) bool {
	return pc.Enabled[provider]
}
