// Package openai implements the recommendation source using the OpenAI
// chat-completion API. Only the single endpoint required by the application
// is supported. Network calls are performed using the provided http.Client
// allowing callers to substitute a test client.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"MoodTunes-Go/pkg/chat"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

// defaultModel is used when the client does not specify one.
const defaultModel = "gpt-3.5-turbo"

// Client provides access to the chat-completion API. Key is required; Org is
// optional. Limiter, when set, throttles upstream calls so a chatty session
// cannot exhaust the API quota.
type Client struct {
	Key     string
	Org     string
	Model   string
	Client  *http.Client
	Limiter *rate.Limiter
}

// New returns a Client with a bounded request timeout so a hung upstream
// call cannot stall a chat request indefinitely.
func New(key, org string) *Client {
	return &Client{
		Key:     key,
		Org:     org,
		Client:  &http.Client{Timeout: 30 * time.Second},
		Limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

// Complete sends the conversation turns to the completion API and returns
// the content of the model's reply.
func (c *Client) Complete(ctx context.Context, msgs []chat.Message) (string, error) {
	if c.Client == nil {
		c.Client = http.DefaultClient
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	payload := struct {
		Model    string         `json:"model"`
		Messages []chat.Message `json:"messages"`
	}{Model: model, Messages: msgs}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Key)
	if c.Org != "" {
		req.Header.Set("OpenAI-Organization", c.Org)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("openai completion error: %s: %s", resp.Status, body)
	}
	var data struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if len(data.Choices) == 0 {
		return "", fmt.Errorf("openai completion returned no choices")
	}
	return data.Choices[0].Message.Content, nil
}

// Trivia asks the model for a short music fact about the given mood. It is
// used to decorate song recommendations and shares the rate limit with
// Complete.
func (c *Client) Trivia(ctx context.Context, mood string) (string, error) {
	return c.Complete(ctx, []chat.Message{{Role: chat.RoleUser, Content: chat.TriviaPrompt(mood)}})
}
