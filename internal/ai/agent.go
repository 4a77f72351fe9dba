package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolExecutor performs the inventory operations the assistant may
// request. The API layer implements it with user-scoped store calls.
type ToolExecutor interface {
	AddItem(ctx context.Context, args AddItemArgs) (any, error)
	SearchItems(ctx context.Context, query string) (any, error)
	DeleteItem(ctx context.Context, itemID string) (any, error)
}

// AddItemArgs are the fields the assistant supplies when adding an item.
type AddItemArgs struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Quantity       int     `json:"quantity"`
	Location       string  `json:"location"`
	Barcode        *string `json:"barcode"`
	PurchaseSource *string `json:"purchase_source"`
	Notes          *string `json:"notes"`
}

// CommandResult is the assistant's answer to one command: which tool ran
// (if any), what it returned, and the final natural language reply.
type CommandResult struct {
	Tool             *string `json:"tool"`
	Result           any     `json:"result"`
	AssistantMessage string  `json:"assistant_message"`
}

const agentSystemPrompt = "You are a personal inventory assistant. You are STRICTLY grounded in the provided JSON context for this user. " +
	"Do not use outside knowledge about the user's possessions. If the context does not contain the answer, say you don't know and suggest what to do next. " +
	"Never mention other users or data. " +
	"When asked about documents, you only know filenames/metadata (no PDF text). " +
	"Decide when to call tools. " +
	"Use delete_inventory_item only when the user explicitly asks to delete and provides an item id. " +
	"If missing required fields for add, ask a concise follow-up question instead of guessing."

var agentTools = []Tool{
	{
		Type: "function",
		Function: ToolSpec{
			Name:        "add_inventory_item",
			Description: "Add a new inventory item for the current user.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":            map[string]any{"type": "string"},
					"category":        map[string]any{"type": "string"},
					"quantity":        map[string]any{"type": "integer"},
					"location":        map[string]any{"type": "string"},
					"barcode":         map[string]any{"type": []string{"string", "null"}},
					"purchase_source": map[string]any{"type": []string{"string", "null"}},
					"notes":           map[string]any{"type": []string{"string", "null"}},
				},
				"required":             []string{"name", "category", "quantity", "location"},
				"additionalProperties": false,
			},
		},
	},
	{
		Type: "function",
		Function: ToolSpec{
			Name:        "search_inventory",
			Description: "Search the current user's inventory.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string"},
				},
				"required":             []string{"query"},
				"additionalProperties": false,
			},
		},
	},
	{
		Type: "function",
		Function: ToolSpec{
			Name:        "delete_inventory_item",
			Description: "Delete an inventory item by item_id.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"item_id": map[string]any{"type": "string"},
				},
				"required":             []string{"item_id"},
				"additionalProperties": false,
			},
		},
	},
}

// RunCommand answers one assistant command. The model sees the user's
// full inventory context and may invoke at most one tool; the tool result
// is then fed back for a final natural language reply.
func (c *Client) RunCommand(ctx context.Context, userContext any, message string, exec ToolExecutor) (*CommandResult, error) {
	contextJSON, err := json.Marshal(userContext)
	if err != nil {
		return nil, fmt.Errorf("encoding assistant context: %w", err)
	}

	messages := []Message{
		{Role: "system", Content: agentSystemPrompt},
		{Role: "system", Content: "USER_CONTEXT_JSON:\n" + string(contextJSON)},
		{Role: "user", Content: message},
	}

	first, err := c.chat(ctx, chatRequest{
		Model:       c.ChatModel,
		Messages:    messages,
		Tools:       agentTools,
		ToolChoice:  "auto",
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("running assistant command: %w", err)
	}

	if len(first.ToolCalls) == 0 {
		return &CommandResult{AssistantMessage: first.Content}, nil
	}

	call := first.ToolCalls[0]
	result := c.executeTool(ctx, call, exec)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}

	messages = append(messages,
		Message{Role: "assistant", Content: first.Content, ToolCalls: []ToolCall{call}},
		Message{Role: "tool", Content: string(resultJSON), ToolCallID: call.ID},
	)

	final, err := c.chat(ctx, chatRequest{
		Model:       c.ChatModel,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("finishing assistant command: %w", err)
	}

	name := call.Function.Name
	return &CommandResult{
		Tool:             &name,
		Result:           result,
		AssistantMessage: final.Content,
	}, nil
}

// executeTool dispatches a single tool call. Executor failures become
// error payloads for the model to explain, not Go errors.
func (c *Client) executeTool(ctx context.Context, call ToolCall, exec ToolExecutor) any {
	raw := call.Function.Arguments
	switch call.Function.Name {
	case "add_inventory_item":
		var args AddItemArgs
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return map[string]string{"error": "invalid arguments"}
		}
		out, err := exec.AddItem(ctx, args)
		if err != nil {
			return map[string]string{"error": err.Error()}
		}
		return out
	case "search_inventory":
		var args struct {
			Query string `json:"query"`
		}
		json.Unmarshal([]byte(raw), &args)
		out, err := exec.SearchItems(ctx, args.Query)
		if err != nil {
			return map[string]string{"error": err.Error()}
		}
		return out
	case "delete_inventory_item":
		var args struct {
			ItemID string `json:"item_id"`
		}
		json.Unmarshal([]byte(raw), &args)
		deleted, err := exec.DeleteItem(ctx, args.ItemID)
		if err != nil {
			return map[string]string{"error": err.Error()}
		}
		return deleted
	default:
		return map[string]string{"error": "Unknown tool"}
	}
}
