// Package suggest calls an OpenAI-compatible chat completions endpoint
// to propose subtask titles for a project. The collaborator is opaque:
// no retries, no streaming; a failure surfaces as a normal error and
// the board keeps working without suggestions.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 30 * time.Second

	minSuggestions = 5
	maxSuggestions = 10
)

type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient reads SUGGEST_API_KEY, SUGGEST_BASE_URL and SUGGEST_MODEL.
// Only the key is required.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("SUGGEST_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SUGGEST_API_KEY environment variable is not set")
	}

	baseURL := os.Getenv("SUGGEST_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := os.Getenv("SUGGEST_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

// NewClientWith builds a client against an explicit endpoint. Used by
// tests and self-hosted deployments.
func NewClientWith(apiKey, baseURL, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// SuggestSubtasks returns 5-10 suggested task titles for the project
// description, skipping anything already on the board.
func (c *Client) SuggestSubtasks(ctx context.Context, description string, existingTitles []string) ([]string, error) {
	prompt := buildPrompt(description, existingTitles)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a project management assistant. Reply with one subtask title per line and nothing else."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("suggestion API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("suggestion API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("no suggestions returned")
	}

	suggestions := parseTitles(parsed.Choices[0].Message.Content, existingTitles)

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no usable suggestions returned")
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions, nil
}

func buildPrompt(description string, existingTitles []string) string {
	var b strings.Builder

	b.WriteString("Project description: ")
	b.WriteString(description)
	b.WriteString("\n\nExisting tasks:\n")

	for _, title := range existingTitles {
		b.WriteString("- ")
		b.WriteString(title)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nSuggest %d-%d subtasks that would help complete the project. Be specific and actionable.", minSuggestions, maxSuggestions)

	return b.String()
}

// parseTitles splits the model output into clean titles and drops any
// that duplicate an existing task.
func parseTitles(content string, existingTitles []string) []string {
	existing := make(map[string]bool, len(existingTitles))
	for _, t := range existingTitles {
		existing[strings.ToLower(strings.TrimSpace(t))] = true
	}

	var titles []string

	for _, line := range strings.Split(content, "\n") {
		title := strings.TrimSpace(line)
		title = strings.TrimLeft(title, "-*0123456789. ")
		title = strings.Trim(title, "\"")

		if title == "" || existing[strings.ToLower(title)] {
			continue
		}

		titles = append(titles, title)
	}

	return titles
}
