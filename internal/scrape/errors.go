package scrape

import "fmt"

// FetchErrorKind classifies why a page could not be fetched.
type FetchErrorKind string

const (
	FetchStatusCode FetchErrorKind = "status_code"
	FetchTransport  FetchErrorKind = "transport"
	FetchUnknown    FetchErrorKind = "unknown"
)

// FetchError is returned by Fetcher.Fetch for every unsuccessful fetch.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchStatusCode:
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %s error: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionErrorKind names the structurally required element that was missing.
type ExtractionErrorKind string

const (
	NoHeadline ExtractionErrorKind = "no_headline"
	NoLink     ExtractionErrorKind = "no_link"
)

// ExtractionError means the markup holds nothing usable as a headline.
type ExtractionError struct {
	Kind     ExtractionErrorKind
	Selector string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract headline: %s (%s): %v", e.Kind, e.Selector, e.Err)
	}
	return fmt.Sprintf("extract headline: %s (%s)", e.Kind, e.Selector)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
