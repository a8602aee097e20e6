package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"EquitySentinel/internal/model"
)

func newTestServer(t *testing.T, status int, body string, gotPrompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("expected api key in query, got %q", r.URL.Query().Get("key"))
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		} else if gotPrompt != nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			*gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func testConfig(url string) Config {
	return Config{APIKey: "secret", Model: "gemini-test", BaseURL: url, Timeout: 5 * time.Second}
}

func TestGenerate_OK(t *testing.T) {
	var prompt string
	srv := newTestServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":" Hello "},{"text":"there"}]}}]}`, &prompt)
	defer srv.Close()

	g := NewGeminiClient(testConfig(srv.URL))
	got, err := g.Chat(context.Background(), "what is RSI?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello there" {
		t.Errorf("expected %q, got %q", "Hello there", got)
	}
	if !strings.Contains(prompt, "what is RSI?") || !strings.Contains(prompt, "stock market assistant") {
		t.Errorf("unexpected prompt %q", prompt)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`, nil)
	defer srv.Close()

	g := NewGeminiClient(testConfig(srv.URL))
	_, err := g.Generate(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("expected api error, got %v", err)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"candidates":[]}`, nil)
	defer srv.Close()

	g := NewGeminiClient(testConfig(srv.URL))
	if _, err := g.Generate(context.Background(), "hi"); err == nil {
		t.Error("expected error for empty candidates")
	}
}

func TestGenerate_NoAPIKey(t *testing.T) {
	g := NewGeminiClient(Config{})
	if _, err := g.Generate(context.Background(), "hi"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	g := NewGeminiClient(Config{APIKey: "secret"})
	if _, err := g.Chat(context.Background(), "   "); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestSummaryPrompt(t *testing.T) {
	a := &model.Analysis{
		DisplaySymbol: "THYAO",
		Indicators:    model.LatestIndicators{RSI: model.Some(27.456)},
		Ratios:        model.FundamentalRatios{PriceToEarnings: model.Some(8)},
		Result:        model.ScoreResult{Score: 2, Label: model.LabelNeutral},
	}
	p := SummaryPrompt(a, "Turkish")
	for _, want := range []string{"THYAO", "out of 4): 2 (NEUTRAL)", "RSI: 27.46", "P/E: 8.00", "P/B: -", "in Turkish"} {
		if !strings.Contains(p, want) {
			t.Errorf("expected prompt to contain %q:\n%s", want, p)
		}
	}
}
