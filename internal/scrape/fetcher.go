package scrape

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/bilgisen/headlines/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (compatible; HeadlinesBot/1.0)"
)

// FetcherConfig controls outbound page requests.
type FetcherConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// Fetcher performs single-attempt GET requests for HTML pages.
type Fetcher struct {
	client *resty.Client
	log    *zerolog.Logger
}

func NewFetcher(cfg FetcherConfig, log *zerolog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Fetcher{
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetRetryCount(0).
			SetLogger(logger.Resty(log)).
			SetHeader("User-Agent", cfg.UserAgent).
			SetHeader("Accept", "text/html,application/xhtml+xml"),
		log: logger.Or(log),
	}
}

// Fetch retrieves the markup at pageURL. Any non-2xx status or transport
// failure is returned as a *FetchError; there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()
	f.log.Debug().Str("url", pageURL).Msg("Fetching page")

	resp, err := f.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		ferr := classifyFetchError(pageURL, err)
		f.log.Error().
			Err(err).
			Str("url", pageURL).
			Str("kind", string(ferr.Kind)).
			Dur("elapsed", time.Since(start)).
			Msg("Error fetching page")
		return "", ferr
	}

	if !resp.IsSuccess() {
		f.log.Warn().
			Str("url", pageURL).
			Int("status", resp.StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("Failed to fetch page")
		return "", &FetchError{Kind: FetchStatusCode, URL: pageURL, StatusCode: resp.StatusCode()}
	}

	body := resp.String()
	f.log.Info().
		Str("url", pageURL).
		Int("status", resp.StatusCode()).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched page")

	return body, nil
}

// classifyFetchError maps client errors onto FetchError kinds. The HTTP
// client reports every network-level failure (DNS, refused connection,
// timeout, bad URL) as a *url.Error.
func classifyFetchError(pageURL string, err error) *FetchError {
	var uerr *url.Error
	if errors.As(err, &uerr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &FetchError{Kind: FetchTransport, URL: pageURL, Err: err}
	}
	return &FetchError{Kind: FetchUnknown, URL: pageURL, Err: err}
}
