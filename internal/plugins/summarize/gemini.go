package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// geminiBaseURL is the production endpoint of the text-generation API.
// Tests point the client at a local httptest server instead.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Generator produces text from a prompt. The concrete implementation calls
// the Gemini generateContent API; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// geminiClient is a minimal REST client for the Gemini generateContent
// endpoint. One attempt per call, bounded by the HTTP client timeout.
type geminiClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewGeminiClient creates a Generator backed by the Gemini API. The timeout
// bounds the whole call including connection setup and body read.
func NewGeminiClient(apiKey, model string, timeout time.Duration) Generator {
	return &geminiClient{
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// --- generateContent wire format ---

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to the generateContent endpoint and returns the
// first candidate's text.
func (g *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The key goes in a header, never the URL: transport errors echo the
	// full URL and end up in logs.
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a short error snippet for the log; never surfaced to clients.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generation API returned %d: %s", resp.StatusCode, snippet)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generation API returned no candidates")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
