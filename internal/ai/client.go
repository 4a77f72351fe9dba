// Package ai talks to an OpenAI-compatible chat completions API for photo
// extraction, barcode interpretation, query parsing, and the assistant.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls an OpenAI-compatible backend. A nil Client (or one with an
// empty APIKey) means AI features are disabled; callers check Enabled
// before use.
type Client struct {
	BaseURL     string
	APIKey      string
	ChatModel   string
	VisionModel string

	HTTPClient *http.Client
}

// NewClient returns a client with a default request timeout.
func NewClient(baseURL, apiKey, chatModel, visionModel string) *Client {
	return &Client{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		ChatModel:   chatModel,
		VisionModel: visionModel,
		HTTPClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether the client can make requests.
func (c *Client) Enabled() bool {
	return c != nil && c.APIKey != ""
}

// Message is a chat message. Content is either a plain string or a slice
// of content parts for vision requests.
type Message struct {
	Role       string     `json:"role"`
	Content    any        `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ContentPart is one element of a multi-part message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps an image reference, typically a base64 data URL.
type ImageURL struct {
	URL string `json:"url"`
}

// Tool describes a callable function offered to the model.
type Tool struct {
	Type     string   `json:"type"`
	Function ToolSpec `json:"function"`
}

// ToolSpec is the function half of a Tool.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the name and raw JSON arguments of a tool call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// forceTool builds a tool_choice value that requires the named function.
func forceTool(name string) map[string]any {
	return map[string]any{
		"type":     "function",
		"function": map[string]any{"name": name},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Tools       []Tool    `json:"tools,omitempty"`
	ToolChoice  any       `json:"tool_choice,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// respMessage is Message with Content pinned to a string, as responses
// never carry multi-part content.
type respMessage struct {
	Content   string
	ToolCalls []ToolCall
}

// chat performs one chat completions round trip.
func (c *Client) chat(ctx context.Context, req chatRequest) (*respMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling chat completions: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("reading chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("chat completions failed: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("chat completions failed: status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat completions returned no choices")
	}

	msg := parsed.Choices[0].Message
	out := &respMessage{ToolCalls: msg.ToolCalls}
	if s, ok := msg.Content.(string); ok {
		out.Content = s
	}
	return out, nil
}

// firstToolArgs returns the decoded arguments of the first tool call, or
// false when the model made no call or the arguments were malformed.
func firstToolArgs(msg *respMessage, out any) bool {
	if len(msg.ToolCalls) == 0 {
		return false
	}
	return json.Unmarshal([]byte(msg.ToolCalls[0].Function.Arguments), out) == nil
}
