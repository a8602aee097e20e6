package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"EquitySentinel/internal/model"
	"EquitySentinel/internal/trace"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
)

// ErrNoAPIKey is returned when the client has no API key configured.
var ErrNoAPIKey = errors.New("llm api key missing")

// Chatter answers free-text questions.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// Config configures the Gemini client.
type Config struct {
	APIKey   string
	Model    string
	BaseURL  string
	Language string
	Timeout  time.Duration
	Proxy    string
}

// GeminiClient talks to the Gemini generateContent REST endpoint.
type GeminiClient struct {
	cfg    Config
	client *resty.Client
}

// NewGeminiClient creates a client. A missing key is reported on first use.
func NewGeminiClient(cfg Config) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}
	return &GeminiClient{cfg: cfg, client: client}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends a single-turn prompt and returns the first candidate's text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (text string, err error) {
	ctx, span := trace.StartSpan(ctx, "gemini.generate", attribute.String("model", g.cfg.Model))
	defer func() { trace.End(span, err) }()

	if g.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}

	var out generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("model", g.cfg.Model).
		SetQueryParam("key", g.cfg.APIKey).
		SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		SetResult(&out).
		SetError(&out).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode(), out.Error.Message)
		}
		return "", fmt.Errorf("gemini http %d", resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: no candidates")
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

// Summarize writes a short commentary for an analysis.
func (g *GeminiClient) Summarize(ctx context.Context, a *model.Analysis) (string, error) {
	return g.Generate(ctx, SummaryPrompt(a, g.cfg.Language))
}

// Chat relays a free-text question to the model as a market assistant.
func (g *GeminiClient) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("empty chat message")
	}
	return g.Generate(ctx, ChatPrompt(message, g.cfg.Language))
}
