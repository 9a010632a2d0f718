// Package chat proxies chat requests to an Ollama server.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/starford/portal/internal/apperr"
)

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 10 * time.Second

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Model describes an installed Ollama model.
type Model struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}

// Ollama talks to the Ollama HTTP API.
type Ollama struct {
	client *http.Client
}

// NewOllama returns a client. A non-positive timeout selects DefaultTimeout.
func NewOllama(timeout time.Duration) *Ollama {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Ollama{client: &http.Client{Timeout: timeout}}
}

// Models lists the models installed at baseURL.
func (o *Ollama) Models(ctx context.Context, baseURL string) ([]Model, error) {
	var out struct {
		Models []Model `json:"models"`
	}
	if err := o.do(ctx, http.MethodGet, endpoint(baseURL, "/api/tags"), nil, &out); err != nil {
		return nil, err
	}
	if out.Models == nil {
		out.Models = []Model{}
	}
	return out.Models, nil
}

// Chat sends a non-streaming chat request and returns the assistant reply.
func (o *Ollama) Chat(ctx context.Context, baseURL, model string, messages []Message) (string, error) {
	if strings.TrimSpace(model) == "" {
		return "", apperr.Validation("model is required")
	}
	if len(messages) == 0 {
		return "", apperr.Validation("messages are required")
	}
	req := struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
		Stream   bool      `json:"stream"`
	}{Model: model, Messages: messages}

	var out struct {
		Message *Message `json:"message"`
		Error   string   `json:"error"`
	}
	if err := o.do(ctx, http.MethodPost, endpoint(baseURL, "/api/chat"), req, &out); err != nil {
		return "", err
	}
	if out.Message == nil {
		return "", apperr.Upstream(nil, "chat: response has no message")
	}
	return out.Message.Content, nil
}

func (o *Ollama) do(ctx context.Context, method, url string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("chat: encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return apperr.Upstream(err, "chat: build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return apperr.Upstream(err, "chat: %s %s", method, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperr.Upstream(nil, "chat: upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream(err, "chat: decode response")
	}
	return nil
}

func endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}
