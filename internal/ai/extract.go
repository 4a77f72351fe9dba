package ai

import (
	"context"
	"fmt"

	"github.com/findez/findez/internal/imaging"
	"github.com/findez/findez/internal/model"
)

// ExtractionSummary aggregates a multi-item photo extraction.
type ExtractionSummary struct {
	TotalDetected int            `json:"total_detected"`
	Categories    map[string]int `json:"categories"`
}

// ExtractionResult is the outcome of analyzing an item photo.
type ExtractionResult struct {
	Items   []model.ExtractedItem `json:"items"`
	Summary ExtractionSummary     `json:"summary"`
}

var extractItemsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"category":    map[string]any{"type": "string"},
					"subcategory": map[string]any{"type": []string{"string", "null"}},
					"quantity":    map[string]any{"type": "integer"},
					"location":    map[string]any{"type": []string{"string", "null"}},
					"brand":       map[string]any{"type": []string{"string", "null"}},
					"part_number": map[string]any{"type": []string{"string", "null"}},
					"barcode":     map[string]any{"type": []string{"string", "null"}},
					"tags":        map[string]any{"type": []string{"array", "null"}, "items": map[string]any{"type": "string"}},
					"confidence":  map[string]any{"type": []string{"number", "null"}},
					"notes":       map[string]any{"type": []string{"string", "null"}},
				},
				"required":             []string{"name", "category", "quantity"},
				"additionalProperties": false,
			},
		},
		"summary": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"total_detected": map[string]any{"type": "integer"},
				"categories":     map[string]any{"type": "object"},
			},
			"required":             []string{"total_detected", "categories"},
			"additionalProperties": false,
		},
	},
	"required":             []string{"items", "summary"},
	"additionalProperties": false,
}

// ExtractItems asks the vision model to detect inventory items in a photo.
// A response with no usable tool call yields an empty result, not an error.
func (c *Client) ExtractItems(ctx context.Context, photo *imaging.Result) (*ExtractionResult, error) {
	msg, err := c.chat(ctx, chatRequest{
		Model: c.VisionModel,
		Messages: []Message{
			{
				Role: "system",
				Content: "You extract multiple inventory items from an image. " +
					"Return only items you can see with reasonable confidence. " +
					"If uncertain about quantity, use 1. Keep names short. " +
					"If you can infer a storage folder/location (e.g., Kitchen, Garage, Office, Closet), set location; otherwise null.",
			},
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: "Detect and extract inventory items from this image."},
					{Type: "image_url", ImageURL: &ImageURL{URL: imaging.DataURL(photo)}},
				},
			},
		},
		Tools: []Tool{{
			Type: "function",
			Function: ToolSpec{
				Name:        "extract_inventory_items",
				Description: "Detect multiple inventory items in an image and return structured fields for each detected item.",
				Parameters:   extractItemsSchema,
			},
		}},
		ToolChoice:  forceTool("extract_inventory_items"),
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting items from image: %w", err)
	}

	result := &ExtractionResult{
		Items:   []model.ExtractedItem{},
		Summary: ExtractionSummary{Categories: map[string]int{}},
	}
	firstToolArgs(msg, result)
	if result.Items == nil {
		result.Items = []model.ExtractedItem{}
	}
	if result.Summary.Categories == nil {
		result.Summary.Categories = map[string]int{}
	}
	return result, nil
}
