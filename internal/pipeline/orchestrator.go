package pipeline

import (
	"context"
	"time"

	"github.com/bilgisen/headlines/internal/ai"
	"github.com/bilgisen/headlines/internal/logger"
	"github.com/bilgisen/headlines/internal/models"
	"github.com/bilgisen/headlines/internal/scrape"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// PageFetcher returns the markup at a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor reads the headline and article body out of markup.
type Extractor interface {
	ExtractHeadline(markup string) (*scrape.Headline, error)
	ExtractArticleBody(markup string) string
}

// Translator translates text; failures are carried in the Outcome.
type Translator interface {
	Translate(ctx context.Context, text, language string) ai.Outcome
}

// Config holds the per-site settings of the orchestrator.
type Config struct {
	HomepageURL  string
	SourcePrefix string
	Language     string
}

// Orchestrator turns the current top headline into a translated/original pair.
// It keeps no state between calls.
type Orchestrator struct {
	cfg        Config
	fetcher    PageFetcher
	extractor  Extractor
	translator Translator
	log        *zerolog.Logger
}

func New(cfg Config, fetcher PageFetcher, extractor Extractor, translator Translator, log *zerolog.Logger) *Orchestrator {
	if cfg.Language == "" {
		cfg.Language = ai.DefaultLanguage
	}
	return &Orchestrator{
		cfg:        cfg,
		fetcher:    fetcher,
		extractor:  extractor,
		translator: translator,
		log:        logger.Or(log),
	}
}

// BuildHeadlineResponse fetches the homepage, extracts the top headline,
// fetches its article body and translates title and body into language
// (the configured default when empty).
//
// Only a failed homepage fetch or a missing headline/anchor yields an error.
// Image, body and translation problems degrade the record instead.
func (o *Orchestrator) BuildHeadlineResponse(ctx context.Context, language string) (*models.HeadlineResponse, error) {
	start := time.Now()
	if language == "" {
		language = o.cfg.Language
	}

	homepage, err := o.fetcher.Fetch(ctx, o.cfg.HomepageURL)
	if err != nil {
		o.log.Error().Err(err).Str("url", o.cfg.HomepageURL).Msg("Homepage fetch failed")
		return nil, &Error{Stage: StageFetch, Err: err}
	}

	headline, err := o.extractor.ExtractHeadline(homepage)
	if err != nil {
		o.log.Error().Err(err).Str("url", o.cfg.HomepageURL).Msg("No headline found")
		return nil, &Error{Stage: StageExtract, Err: err}
	}
	if headline.Image == nil {
		o.log.Info().Str("link", headline.Link).Msg("No lead image found")
	}

	body := o.fetchBody(ctx, headline.Link)
	title, translatedBody := o.translate(ctx, headline.Title, body, language)

	original := models.HeadlineRecord{
		Title: o.cfg.SourcePrefix + headline.Title,
		Link:  headline.Link,
		Image: headline.Image,
		Body:  body,
	}
	translated := models.HeadlineRecord{
		Title: o.cfg.SourcePrefix + title.String(),
		Link:  headline.Link,
		Image: headline.Image,
		Body:  translatedBody.String(),
	}

	o.log.Info().
		Str("link", headline.Link).
		Str("language", language).
		Bool("title_translated", title.OK()).
		Bool("body_translated", translatedBody.OK()).
		Int("body_chars", len([]rune(body))).
		Dur("duration", time.Since(start)).
		Msg("Built headline response")

	return models.NewHeadlineResponse(translated, original), nil
}

// fetchBody returns "" when the article page cannot be fetched.
func (o *Orchestrator) fetchBody(ctx context.Context, link string) string {
	article, err := o.fetcher.Fetch(ctx, link)
	if err != nil {
		o.log.Warn().Err(err).Str("link", link).Msg("Article fetch failed, continuing without body")
		return ""
	}

	body := o.extractor.ExtractArticleBody(article)
	if body == "" {
		o.log.Info().Str("link", link).Msg("No article body found")
	}
	return body
}

// translate runs the two independent translations concurrently.
func (o *Orchestrator) translate(ctx context.Context, title, body, language string) (ai.Outcome, ai.Outcome) {
	var titleOut, bodyOut ai.Outcome

	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		titleOut = o.translator.Translate(ctx, title, language)
	})
	p.Go(func() {
		bodyOut = o.translator.Translate(ctx, body, language)
	})
	p.Wait()

	return titleOut, bodyOut
}
