// Package constants defines application-wide constants and default values.
package constants

const (
	// Addon metadata
	AddonID          = "org.stremio.italostream"
	AddonVersion     = "1.6.0"
	AddonName        = "ItaloStream"
	AddonIcon        = "🍿"
	AddonDescription = "Addon providing HTTPS streams for Italian movies, series, live TV and anime from multiple sources"
	AddonLogo        = "https://creazilla-store.fra1.digitaloceanspaces.com/emojis/49647/pizza-emoji-clipart-md.png"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 // hours

	// Rate limiting for the Kitsu metadata API
	KitsuRateLimit = 10 // requests per second
	KitsuRateBurst = 4  // burst capacity
)

// TVSources lists the live TV source kinds that can be toggled in the
// server configuration. Names match the TV_SOURCES env codes.
var TVSources = []string{
	TVSourceDirect,
	TVSourceExtra,
	TVSourceOkru,
	TVSourceSky,
	TVSourceVary,
	TVSourceDLHD,
}

const (
	TVSourceDirect = "direct"
	TVSourceExtra  = "extra"
	TVSourceOkru   = "okru"
	TVSourceSky    = "sky"
	TVSourceVary   = "vary"
	TVSourceDLHD   = "dlhd"
)

// TVGenres lists the channel genres offered by the live TV catalog.
var TVGenres = []string{
	"Rai",
	"Mediaset",
	"Sky",
	"Euronews",
	"La7",
	"Warner Bros",
	"Sportitalia",
	"DAZN",
	"Pluto",
	"A+E",
	"Paramount",
}
