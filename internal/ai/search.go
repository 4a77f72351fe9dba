package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

// ParsedQuery is a natural language search broken into plain search text
// and optional structured filters.
type ParsedQuery struct {
	Text     string  `json:"text"`
	Category *string `json:"category,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Hints converts the parsed query into the loose hint map consumed by the
// intent matcher.
func (p ParsedQuery) Hints() map[string]any {
	hints := map[string]any{"text": p.Text}
	if p.Category != nil {
		hints["category"] = *p.Category
	}
	if p.Location != nil {
		hints["location"] = *p.Location
	}
	return hints
}

// ParseSearchQuery turns a natural language query into search text plus
// optional category/location filters. Failures fall back to the raw query.
func (c *Client) ParseSearchQuery(ctx context.Context, query string) (ParsedQuery, error) {
	fallback := ParsedQuery{Text: query}

	msg, err := c.chat(ctx, chatRequest{
		Model: c.ChatModel,
		Messages: []Message{
			{Role: "system", Content: "Return compact search text and optional category/location filters."},
			{Role: "user", Content: query},
		},
		Tools: []Tool{{
			Type: "function",
			Function: ToolSpec{
				Name:        "parse_inventory_search",
				Description: "Parse a natural language inventory search into lightweight keywords and optional filters.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text":     map[string]any{"type": "string"},
						"category": map[string]any{"type": []string{"string", "null"}},
						"location": map[string]any{"type": []string{"string", "null"}},
					},
					"required":             []string{"text"},
					"additionalProperties": false,
				},
			},
		}},
		ToolChoice:  forceTool("parse_inventory_search"),
		Temperature: 0.1,
	})
	if err != nil {
		return fallback, fmt.Errorf("parsing search query: %w", err)
	}

	var parsed ParsedQuery
	if !firstToolArgs(msg, &parsed) || parsed.Text == "" {
		return fallback, nil
	}
	return parsed, nil
}

// BarcodeGuess is the model's best effort at identifying a barcode. The
// model has no UPC database access, so Name and Category are often nil.
type BarcodeGuess struct {
	Barcode  string  `json:"barcode"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}

// InterpretBarcode asks the model to guess a product from a barcode
// string. An unusable response degrades to a "No match" guess.
func (c *Client) InterpretBarcode(ctx context.Context, barcode string) (BarcodeGuess, error) {
	noMatch := "No match"
	fallback := BarcodeGuess{Barcode: barcode, Notes: &noMatch}

	msg, err := c.chat(ctx, chatRequest{
		Model: c.ChatModel,
		Messages: []Message{
			{Role: "system", Content: "You do not have access to online UPC databases. If you cannot infer, return null name/category and a brief note."},
			{Role: "user", Content: fmt.Sprintf("Barcode: %s", barcode)},
		},
		Tools: []Tool{{
			Type: "function",
			Function: ToolSpec{
				Name:        "barcode_to_item_guess",
				Description: "Given a barcode string, guess a likely product name/category or return unknown.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"barcode":  map[string]any{"type": "string"},
						"name":     map[string]any{"type": []string{"string", "null"}},
						"category": map[string]any{"type": []string{"string", "null"}},
						"notes":    map[string]any{"type": []string{"string", "null"}},
					},
					"required":             []string{"barcode"},
					"additionalProperties": false,
				},
			},
		}},
		ToolChoice:  forceTool("barcode_to_item_guess"),
		Temperature: 0.2,
	})
	if err != nil {
		return fallback, fmt.Errorf("interpreting barcode: %w", err)
	}

	var guess BarcodeGuess
	if !firstToolArgs(msg, &guess) {
		return fallback, nil
	}
	if guess.Barcode == "" {
		guess.Barcode = barcode
	}
	return guess, nil
}

// SummarizeActivity writes a one-line log entry describing a user action.
// Falls back to the bare action name on any failure.
func (c *Client) SummarizeActivity(ctx context.Context, action string, details map[string]any) string {
	payload, err := json.Marshal(map[string]any{"action": action, "details": details})
	if err != nil {
		return action
	}

	msg, err := c.chat(ctx, chatRequest{
		Model: c.ChatModel,
		Messages: []Message{
			{
				Role: "system",
				Content: "You write a single short activity log line describing what the user did. " +
					"Be specific, factual, and concise. No extra punctuation beyond normal.",
			},
			{Role: "user", Content: string(payload)},
		},
		Temperature: 0.2,
	})
	if err != nil || msg.Content == "" {
		return action
	}
	return msg.Content
}
