package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
)

// Client talks to the Gemini generateContent endpoint. One POST per
// message, single attempt, bounded by the http client timeout.
type Client struct {
	BaseURL string
	Model   string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Model:   defaultModel,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the user's text and returns the first candidate's
// text. Any transport, status, or response-shape problem is returned
// as an error; callers decide how to degrade.
func (c *Client) Generate(text string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response has no candidate text")
	}
	answer := result.Candidates[0].Content.Parts[0].Text
	if answer == "" {
		return "", fmt.Errorf("gemini response has empty candidate text")
	}
	return answer, nil
}
