package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bilgisen/headlines/internal/ai"
	"github.com/bilgisen/headlines/internal/cache"
	"github.com/bilgisen/headlines/internal/models"
	"github.com/bilgisen/headlines/internal/pipeline"
	"github.com/bilgisen/headlines/internal/scrape"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBuilder struct {
	resp      *models.HeadlineResponse
	err       error
	languages []string
}

func (s *stubBuilder) BuildHeadlineResponse(_ context.Context, language string) (*models.HeadlineResponse, error) {
	s.languages = append(s.languages, language)
	return s.resp, s.err
}

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, url string) (string, error) {
	if page, ok := m[url]; ok {
		return page, nil
	}
	return "", &scrape.FetchError{Kind: scrape.FetchStatusCode, URL: url, StatusCode: http.StatusNotFound}
}

func newTestApp(builder HeadlineBuilder, limiter cache.Limiter) *fiber.App {
	log := zerolog.Nop()
	return NewServer(ServerConfig{HTTPTimeout: 5 * time.Second, CORSOrigins: "http://localhost:3000"},
		NewHandlers(builder, &log), limiter, &log)
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body), string(data))
	return resp.StatusCode, body
}

func geminiStub(t *testing.T, text string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newPipeline(t *testing.T, baseURL string, fetcher pipeline.PageFetcher, llmURL string) *pipeline.Orchestrator {
	t.Helper()
	log := zerolog.Nop()

	extractor, err := scrape.NewExtractor(baseURL, scrape.DefaultSelectors)
	require.NoError(t, err)

	translator, err := ai.NewTranslator(ai.TranslatorConfig{Endpoint: llmURL, APIKey: "fixture-key", Timeout: time.Second}, &log)
	require.NoError(t, err)

	return pipeline.New(pipeline.Config{HomepageURL: baseURL + "/", SourcePrefix: "FOX: "}, fetcher, extractor, translator, &log)
}

func TestWelcome(t *testing.T) {
	status, body := get(t, newTestApp(&stubBuilder{}, nil), "/")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, welcomeMessage, body["message"])
}

func TestHealthCheck(t *testing.T) {
	status, body := get(t, newTestApp(&stubBuilder{}, nil), "/health")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestNotFound(t *testing.T) {
	status, body := get(t, newTestApp(&stubBuilder{}, nil), "/api/nope")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestGetTopHeadlineFailureHidesDetail(t *testing.T) {
	builder := &stubBuilder{err: &pipeline.Error{
		Stage: pipeline.StageExtract,
		Err:   &scrape.ExtractionError{Kind: scrape.NoHeadline, Selector: "h3.title"},
	}}

	status, body := get(t, newTestApp(builder, nil), "/api/get-top-headline")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, map[string]any{"message": "Failed to fetch headline"}, body)
}

func TestGetTopHeadlinePassesLanguage(t *testing.T) {
	builder := &stubBuilder{resp: models.NewHeadlineResponse(models.HeadlineRecord{}, models.HeadlineRecord{})}
	app := newTestApp(builder, nil)

	status, _ := get(t, app, "/api/get-top-headline?lang=Japanese")
	assert.Equal(t, http.StatusOK, status)

	status, _ = get(t, app, "/api/get-top-headline")
	assert.Equal(t, http.StatusOK, status)

	status, body := get(t, app, "/api/get-top-headline?lang=1337")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid query parameters", body["error"])

	assert.Equal(t, []string{"Japanese", ""}, builder.languages)
}

func TestGetTopHeadlineRateLimited(t *testing.T) {
	builder := &stubBuilder{resp: models.NewHeadlineResponse(models.HeadlineRecord{}, models.HeadlineRecord{})}
	app := newTestApp(builder, cache.NewMemoryLimiter(1, time.Hour))

	status, _ := get(t, app, "/api/get-top-headline")
	assert.Equal(t, http.StatusOK, status)

	status, body := get(t, app, "/api/get-top-headline")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Too many requests", body["message"])

	status, _ = get(t, app, "/health")
	assert.Equal(t, http.StatusOK, status, "only /api is rate limited")
}

func TestGetTopHeadlineEndToEnd(t *testing.T) {
	llm, calls := geminiStub(t, "市场反弹")
	fetcher := mapFetcher{
		"https://www.foxnews.com/":              `<h3 class="title"><a href="/markets/rally">Markets rally</a></h3>`,
		"https://www.foxnews.com/markets/rally": `<div class="article-body"><p>Stocks rose.</p></div>`,
	}
	app := newTestApp(newPipeline(t, "https://www.foxnews.com", fetcher, llm.URL), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/get-top-headline", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.HeadlineResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, models.HeadlineRecord{
		Title: "FOX: 市场反弹",
		Link:  "https://www.foxnews.com/markets/rally",
		Body:  "市场反弹",
	}, got.Headlines[0])
	assert.Equal(t, models.HeadlineRecord{
		Title: "FOX: Markets rally",
		Link:  "https://www.foxnews.com/markets/rally",
		Body:  "Stocks rose.",
	}, got.Headlines[1])
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetTopHeadlineMissingArticleBody(t *testing.T) {
	llm, _ := geminiStub(t, "市场反弹")
	fetcher := mapFetcher{
		"https://www.foxnews.com/":              `<h3 class="title"><a href="/markets/rally">Markets rally</a></h3>`,
		"https://www.foxnews.com/markets/rally": `<div class="video"></div>`,
	}
	app := newTestApp(newPipeline(t, "https://www.foxnews.com", fetcher, llm.URL), nil)

	status, body := get(t, app, "/api/get-top-headline")
	require.Equal(t, http.StatusOK, status)

	headlines, ok := body["headlines"].([]any)
	require.True(t, ok)
	require.Len(t, headlines, 2)
	assert.Equal(t, "(no content available)", headlines[0].(map[string]any)["body"])
	assert.Equal(t, "", headlines[1].(map[string]any)["body"])
}

func TestGetTopHeadlineHomepageTimeout(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer site.Close()

	llm, calls := geminiStub(t, "unused")
	log := zerolog.Nop()
	fetcher := scrape.NewFetcher(scrape.FetcherConfig{Timeout: 50 * time.Millisecond}, &log)
	app := newTestApp(newPipeline(t, site.URL, fetcher, llm.URL), nil)

	status, body := get(t, app, "/api/get-top-headline")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to fetch headline", body["message"])
	assert.Zero(t, calls.Load())
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(&stubBuilder{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/get-top-headline", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestPipelineErrorUnwraps(t *testing.T) {
	err := error(&pipeline.Error{Stage: pipeline.StageFetch, Err: context.DeadlineExceeded})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
