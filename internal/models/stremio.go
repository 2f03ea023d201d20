// Package models defines the wire types exchanged with Stremio clients and
// the intermediate types produced by the source providers.
package models

type Manifest struct {
	ID            string        `json:"id"`
	Version       string        `json:"version"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Types         []string      `json:"types"`
	Resources     []string      `json:"resources"`
	Catalogs      []Catalog     `json:"catalogs"`
	BehaviorHints BehaviorHints `json:"behaviorHints"`
	IDPrefixes    []string      `json:"idPrefixes,omitempty"`
	Logo          string        `json:"logo,omitempty"`
}

type BehaviorHints struct {
	Configurable          bool `json:"configurable"`
	ConfigurationRequired bool `json:"configurationRequired,omitempty"`
}

type Catalog struct {
	Type  string       `json:"type"`
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Extra []ExtraField `json:"extra,omitempty"`
}

type ExtraField struct {
	Name       string   `json:"name"`
	Options    []string `json:"options,omitempty"`
	IsRequired bool     `json:"isRequired,omitempty"`
}

type Meta struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Poster      string   `json:"poster,omitempty"`
	PosterShape string   `json:"posterShape,omitempty"`
	Background  string   `json:"background,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	URL         string   `json:"url,omitempty"`
}

type CatalogResponse struct {
	Metas []Meta `json:"metas"`
}

type MetaResponse struct {
	Meta Meta `json:"meta"`
}

// Stream is the client-facing stream descriptor. URL is always absolute and
// directly fetchable (or relay-routed), never a source-internal locator.
type Stream struct {
	Name          string               `json:"name,omitempty"`
	Title         string               `json:"title,omitempty"`
	URL           string               `json:"url"`
	BehaviorHints *StreamBehaviorHints `json:"behaviorHints,omitempty"`
}

type StreamBehaviorHints struct {
	NotWebReady  bool          `json:"notWebReady,omitempty"`
	BingeGroup   string        `json:"bingeGroup,omitempty"`
	ProxyHeaders *ProxyHeaders `json:"proxyHeaders,omitempty"`
}

// ProxyHeaders carries request headers the playback client must send; only
// used when the upstream mandates Referer/Origin/User-Agent values.
type ProxyHeaders struct {
	Request map[string]string `json:"request,omitempty"`
}

type StreamResponse struct {
	Streams []Stream `json:"streams"`
}
