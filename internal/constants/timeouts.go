package constants

import "time"

const (
	// Request timeout for an entire stream request
	RequestTimeout = 30 * time.Second

	// Per-provider bound for a single capability call; a provider that
	// exceeds it is treated the same as a failed one.
	ProviderTimeout = 15 * time.Second

	// Timeout for a single relay (MFP) extractor call
	RelayTimeout = 10 * time.Second

	// Timeout for scraper HTTP requests
	ScrapeTimeout = 10 * time.Second
)

const (
	// Maximum merged results returned by the anime search catalog; the
	// scrapers also stop collecting hits at this bound, so a single
	// enabled provider can still fill a full page
	SearchResultCap = 20

	// Scraper retry policy (mirrors the upstream sites' flakiness on
	// 429/5xx answers)
	ScrapeRetries    = 3
	ScrapeRetryDelay = time.Second
)
