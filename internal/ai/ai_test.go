package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findez/findez/internal/imaging"
)

// fakeBackend is an OpenAI-compatible stub that replays scripted
// responses in order and records the requests it saw.
type fakeBackend struct {
	t         *testing.T
	responses []string
	requests  []chatRequest
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(f.t, "/chat/completions", r.URL.Path)
		require.Equal(f.t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		f.requests = append(f.requests, req)

		require.NotEmpty(f.t, f.responses, "unexpected extra request")
		resp := f.responses[0]
		f.responses = f.responses[1:]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(resp))
	}
}

func newTestClient(t *testing.T, responses ...string) (*Client, *fakeBackend) {
	backend := &fakeBackend{t: t, responses: responses}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "sk-test", "chat-model", "vision-model"), backend
}

func toolCallResponse(name, arguments string) string {
	resp := map[string]any{
		"choices": []map[string]any{{
			"message": map[string]any{
				"role":    "assistant",
				"content": nil,
				"tool_calls": []map[string]any{{
					"id":   "call_1",
					"type": "function",
					"function": map[string]any{
						"name":      name,
						"arguments": arguments,
					},
				}},
			},
		}},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func textResponse(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{{
			"message": map[string]any{"role": "assistant", "content": content},
		}},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestClientEnabled(t *testing.T) {
	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	assert.False(t, NewClient("http://x", "", "m", "m").Enabled())
	assert.True(t, NewClient("http://x", "sk", "m", "m").Enabled())
}

func TestParseSearchQuery(t *testing.T) {
	client, backend := newTestClient(t,
		toolCallResponse("parse_inventory_search", `{"text":"drill","category":"Tools","location":null}`))

	parsed, err := client.ParseSearchQuery(context.Background(), "where did I put my drill")
	require.NoError(t, err)
	assert.Equal(t, "drill", parsed.Text)
	require.NotNil(t, parsed.Category)
	assert.Equal(t, "Tools", *parsed.Category)
	assert.Nil(t, parsed.Location)

	require.Len(t, backend.requests, 1)
	assert.Equal(t, "chat-model", backend.requests[0].Model)
}

func TestParseSearchQueryFallsBackOnEmptyToolCall(t *testing.T) {
	client, _ := newTestClient(t, textResponse("no tools here"))

	parsed, err := client.ParseSearchQuery(context.Background(), "batteries")
	require.NoError(t, err)
	assert.Equal(t, "batteries", parsed.Text)
	assert.Nil(t, parsed.Category)
}

func TestParsedQueryHints(t *testing.T) {
	loc := "garage"
	hints := ParsedQuery{Text: "drill", Location: &loc}.Hints()
	assert.Equal(t, "drill", hints["text"])
	assert.Equal(t, "garage", hints["location"])
	_, ok := hints["category"]
	assert.False(t, ok)
}

func TestInterpretBarcode(t *testing.T) {
	client, _ := newTestClient(t,
		toolCallResponse("barcode_to_item_guess", `{"barcode":"0123","name":"AA batteries","category":"Electronics","notes":null}`))

	guess, err := client.InterpretBarcode(context.Background(), "0123")
	require.NoError(t, err)
	assert.Equal(t, "0123", guess.Barcode)
	require.NotNil(t, guess.Name)
	assert.Equal(t, "AA batteries", *guess.Name)
}

func TestInterpretBarcodeNoMatch(t *testing.T) {
	client, _ := newTestClient(t, textResponse("cannot help"))

	guess, err := client.InterpretBarcode(context.Background(), "999")
	require.NoError(t, err)
	assert.Equal(t, "999", guess.Barcode)
	assert.Nil(t, guess.Name)
	require.NotNil(t, guess.Notes)
	assert.Equal(t, "No match", *guess.Notes)
}

func TestExtractItems(t *testing.T) {
	client, backend := newTestClient(t, toolCallResponse("extract_inventory_items",
		`{"items":[{"name":"Hammer","category":"Tools","quantity":1}],"summary":{"total_detected":1,"categories":{"Tools":1}}}`))

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	photo, err := imaging.Process(&buf)
	require.NoError(t, err)

	result, err := client.ExtractItems(context.Background(), photo)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Hammer", result.Items[0].Name)
	assert.Equal(t, 1, result.Summary.TotalDetected)

	require.Len(t, backend.requests, 1)
	assert.Equal(t, "vision-model", backend.requests[0].Model)
}

func TestExtractItemsEmptyOnNoToolCall(t *testing.T) {
	client, _ := newTestClient(t, textResponse("nothing detected"))

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	photo, err := imaging.Process(&buf)
	require.NoError(t, err)

	result, err := client.ExtractItems(context.Background(), photo)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Summary.Categories)
}

type fakeExecutor struct {
	added    []AddItemArgs
	searched []string
	deleted  []string
}

func (f *fakeExecutor) AddItem(_ context.Context, args AddItemArgs) (any, error) {
	f.added = append(f.added, args)
	return map[string]string{"item_id": "new-id"}, nil
}

func (f *fakeExecutor) SearchItems(_ context.Context, query string) (any, error) {
	f.searched = append(f.searched, query)
	return []string{"drill"}, nil
}

func (f *fakeExecutor) DeleteItem(_ context.Context, itemID string) (any, error) {
	f.deleted = append(f.deleted, itemID)
	return map[string]bool{"deleted": true}, nil
}

func TestRunCommandWithoutTool(t *testing.T) {
	client, _ := newTestClient(t, textResponse("You have 3 items."))

	result, err := client.RunCommand(context.Background(), map[string]any{}, "what do I own?", &fakeExecutor{})
	require.NoError(t, err)
	assert.Nil(t, result.Tool)
	assert.Equal(t, "You have 3 items.", result.AssistantMessage)
}

func TestRunCommandToolRound(t *testing.T) {
	client, backend := newTestClient(t,
		toolCallResponse("search_inventory", `{"query":"drill"}`),
		textResponse("You have one drill."))
	exec := &fakeExecutor{}

	result, err := client.RunCommand(context.Background(), map[string]any{"inventory_items": []string{}}, "find my drill", exec)
	require.NoError(t, err)
	require.NotNil(t, result.Tool)
	assert.Equal(t, "search_inventory", *result.Tool)
	assert.Equal(t, "You have one drill.", result.AssistantMessage)
	assert.Equal(t, []string{"drill"}, exec.searched)

	// Second request carries the tool result back to the model.
	require.Len(t, backend.requests, 2)
	second := backend.requests[1]
	require.Len(t, second.Messages, 5)
	assert.Equal(t, "tool", second.Messages[4].Role)
	assert.Equal(t, "call_1", second.Messages[4].ToolCallID)
}

func TestRunCommandAddItem(t *testing.T) {
	client, _ := newTestClient(t,
		toolCallResponse("add_inventory_item", `{"name":"Hammer","category":"Tools","quantity":1,"location":"Garage"}`),
		textResponse("Added the hammer."))
	exec := &fakeExecutor{}

	result, err := client.RunCommand(context.Background(), map[string]any{}, "add a hammer to the garage", exec)
	require.NoError(t, err)
	require.Len(t, exec.added, 1)
	assert.Equal(t, "Hammer", exec.added[0].Name)
	assert.Equal(t, "Garage", exec.added[0].Location)
	require.NotNil(t, result.Tool)
	assert.Equal(t, "add_inventory_item", *result.Tool)
}

func TestSummarizeActivityFallsBack(t *testing.T) {
	client, _ := newTestClient(t, textResponse(""))
	got := client.SummarizeActivity(context.Background(), "add_item", map[string]any{"name": "Hammer"})
	assert.Equal(t, "add_item", got)
}

func TestSummarizeActivity(t *testing.T) {
	client, _ := newTestClient(t, textResponse("Added Hammer to Garage"))
	got := client.SummarizeActivity(context.Background(), "add_item", map[string]any{"name": "Hammer"})
	assert.Equal(t, "Added Hammer to Garage", got)
}

func TestChatErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "sk-test", "m", "m")
	_, err := client.ParseSearchQuery(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}
