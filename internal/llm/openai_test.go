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

	"github.com/sashabaranov/go-openai"

	"tvenergy/internal/models"
)

func testDatasets() *models.Datasets {
	return &models.Datasets{
		GeneratedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		Bar:         []models.BarRecord{{Technology: "LCD", AvgConsumption: 95.5, Count: 12}},
		Line: models.SpotPrices{
			Years:  []float64{2020},
			Series: []models.PriceSeries{{Name: "NSW", Values: []models.PricePoint{{Year: 2020, Price: 61.2}}}},
		},
		Errors: map[string]string{"scatter": "no valid records"},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testDatasets())

	for _, want := range []string{
		"generated 2025-03-01 10:30 UTC",
		`"technology": "LCD"`,
		`"name": "NSW"`,
		"- scatter: no valid records",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Individual models") {
		t.Error("empty scatter dataset should be left out")
	}
}

func TestGetSystemPrompt(t *testing.T) {
	p := GetSystemPrompt()
	if p == "" || strings.HasSuffix(p, "\n") {
		t.Errorf("unexpected system prompt %q", p)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return NewOpenAIClientWithConfig(cfg, "test-model")
}

func TestNarrate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			t.Errorf("unexpected request %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "test-model",
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: "  **LCD** sets draw about 95 W.\n",
				},
			}},
		})
	})

	text, err := client.Narrate(context.Background(), testDatasets())
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if text != "**LCD** sets draw about 95 W." {
		t.Errorf("Narrate() = %q", text)
	}
}

func TestNarrateErrors(t *testing.T) {
	empty := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","choices":[]}`))
	})
	if _, err := empty.Narrate(context.Background(), testDatasets()); !errors.Is(err, ErrNoResponse) {
		t.Errorf("expected ErrNoResponse, got %v", err)
	}

	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})
	if _, err := failing.Narrate(context.Background(), testDatasets()); err == nil {
		t.Error("expected API error")
	}

	if _, err := empty.Narrate(context.Background(), nil); err == nil {
		t.Error("expected error for nil datasets")
	}
}

func TestStaticNarrator(t *testing.T) {
	n := StaticNarrator{Text: "canned"}
	if got, err := n.Narrate(context.Background(), nil); err != nil || got != "canned" {
		t.Errorf("Narrate() = %q, %v", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := n.Narrate(ctx, nil); err == nil {
		t.Error("expected context error")
	}
}
