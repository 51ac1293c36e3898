package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/headlines/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// ErrMissingConfig is returned when the endpoint or credential is empty.
var ErrMissingConfig = errors.New("translation endpoint and API key are required")

// TranslatorConfig configures the generateContent endpoint.
type TranslatorConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Language string
}

// Translator sends text to a generateContent-style API and unpacks the reply.
type Translator struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	language string
	log      *zerolog.Logger
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

func NewTranslator(cfg TranslatorConfig, log *zerolog.Logger) (*Translator, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingConfig
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}

	return &Translator{
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetRetryCount(0).
			SetLogger(logger.Resty(log)),
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		log:      logger.Or(log),
	}, nil
}

// Language is the target language used when Translate is given none.
func (t *Translator) Language() string {
	return t.language
}

// Translate asks the model to translate text into language. Blank text
// short-circuits without a request. Failures are reported in the Outcome,
// never as errors.
func (t *Translator) Translate(ctx context.Context, text, language string) Outcome {
	if strings.TrimSpace(text) == "" {
		t.log.Debug().Str("reason", string(ReasonEmptyInput)).Msg("Skipping translation of empty text")
		return Failed(ReasonEmptyInput)
	}
	if language == "" {
		language = t.language
	}

	start := time.Now()
	req := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{{
				Text: BuildTranslatePrompt(language, text),
			}},
		}},
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", t.apiKey).
		SetBody(req).
		Post(t.endpoint)
	if err != nil {
		t.log.Error().
			Err(err).
			Str("language", language).
			Str("reason", string(ReasonRequestError)).
			Dur("elapsed", time.Since(start)).
			Msg("Translation request failed")
		return Failed(ReasonRequestError)
	}

	payload := resp.Body()
	translated, reason, err := unpackResponse(payload)

	event := t.log.Info()
	if reason != "" {
		event = t.log.Warn()
	}
	if err != nil {
		event = t.log.Error().Err(err)
	}
	event.
		Str("language", language).
		Int("status", resp.StatusCode()).
		Str("reason", string(reason)).
		Bytes("payload", payload).
		Dur("elapsed", time.Since(start)).
		Msg("Translation response")

	if reason != "" {
		return Failed(reason)
	}
	return Translated(translated)
}

// unpackResponse walks candidates[0].content.parts[0].text, checking that each
// field is present before descending.
func unpackResponse(payload []byte) (string, FailureReason, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return "", ReasonUnknownError, fmt.Errorf("decoding response: %w", err)
	}

	raw, ok := present(root, "candidates")
	if !ok {
		return "", ReasonNoCandidates, nil
	}
	var candidates []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return "", ReasonMalformed, nil
	}
	if len(candidates) == 0 {
		return "", ReasonNoCandidates, nil
	}

	raw, ok = present(candidates[0], "content")
	if !ok {
		return "", ReasonMalformed, nil
	}
	var content map[string]json.RawMessage
	if err := json.Unmarshal(raw, &content); err != nil {
		return "", ReasonMalformed, nil
	}

	raw, ok = present(content, "parts")
	if !ok {
		return "", ReasonMalformed, nil
	}
	var parts []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil || len(parts) == 0 {
		return "", ReasonMalformed, nil
	}

	raw, ok = present(parts[0], "text")
	if !ok {
		return "", ReasonMalformed, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", ReasonMalformed, nil
	}

	return strings.TrimSpace(text), "", nil
}

// present treats an explicit JSON null the same as a missing key.
func present(obj map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}
