package constants

// Canonical provider names used across internal packages.
const (
	ProviderStreamingCommunity = "streamingcommunity"
	ProviderLordChannel        = "lordchannel"
	ProviderGuardaSerie        = "guardaserie"
	ProviderAnimeWorld         = "animeworld"
	ProviderAnimeSaturn        = "animesaturn"
	ProviderAnimeUnity         = "animeunity"
	ProviderGogoAnime          = "gogoanime"
)

// ShortCodes maps the per-request configuration short-codes to canonical
// provider names. Unknown codes in a token are ignored.
var ShortCodes = map[string]string{
	"SC": ProviderStreamingCommunity,
	"LC": ProviderLordChannel,
	"GS": ProviderGuardaSerie,
	"AW": ProviderAnimeWorld,
	"AS": ProviderAnimeSaturn,
	"AU": ProviderAnimeUnity,
	"GA": ProviderGogoAnime,
}

// ProviderOrder fixes the declaration order of providers. Stream results are
// always appended in this order, regardless of which provider answers first.
var ProviderOrder = []string{
	ProviderStreamingCommunity,
	ProviderLordChannel,
	ProviderGuardaSerie,
	ProviderAnimeWorld,
	ProviderAnimeSaturn,
	ProviderAnimeUnity,
	ProviderGogoAnime,
}

// LiveTVCode is the pseudo short-code that keeps the TV catalog in the
// manifest; it does not enable a stream provider.
const LiveTVCode = "LIVETV"
