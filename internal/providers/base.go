package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go/v4"

	"github.com/italostream/italostream/internal/constants"
	"github.com/italostream/italostream/pkg/httputil"
	"github.com/italostream/italostream/pkg/logger"
)

// scrapeClient is the HTTP layer shared by all site scrapers: browser-like
// headers, bounded timeout, and retries on the status codes these sites
// habitually answer under load.
type scrapeClient struct {
	http *http.Client
	log  logger.Logger
}

func newScrapeClient(log logger.Logger) *scrapeClient {
	return &scrapeClient{
		http: httputil.NewBrowserClient(constants.ScrapeTimeout),
		log:  log,
	}
}

type retryableStatusError struct {
	status int
	url    string
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("status %d for %s", e.status, e.url)
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// fetch performs a GET with retry and returns the response body.
func (c *scrapeClient) fetch(ctx context.Context, url string, header http.Header) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			for k, vs := range header {
				for _, v := range vs {
					req.Header.Add(k, v)
				}
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if retryableStatus(resp.StatusCode) {
				return &retryableStatusError{status: resp.StatusCode, url: url}
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("status %d for %s", resp.StatusCode, url))
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(constants.ScrapeRetries),
		retry.Delay(constants.ScrapeRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// document fetches a page and parses it with goquery.
func (c *scrapeClient) document(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.fetch(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return doc, nil
}

// getJSON fetches a URL and decodes the JSON response into v.
func (c *scrapeClient) getJSON(ctx context.Context, url string, v interface{}) error {
	body, err := c.fetch(ctx, url, http.Header{"Accept": []string{"application/json"}})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

// splitStreamID splits a "tt123:1:2" style query into its id, season and
// episode parts. Season and episode are zero for movies.
func splitStreamID(query string) (id string, season, episode int) {
	parts := strings.Split(query, ":")
	id = parts[0]
	if len(parts) == 3 {
		season, _ = strconv.Atoi(parts[1])
		episode, _ = strconv.Atoi(parts[2])
	}
	return id, season, episode
}

// absoluteURL resolves href against base when href is site-relative.
func absoluteURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}
