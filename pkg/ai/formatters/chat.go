package formatters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNonJSON is returned when the ai-service output has no JSON object in it.
var ErrNonJSON = errors.New("ai-service returned non-json content")

// Transport sends one chat request body to the ai-service and returns the
// response body of a successful call.
type Transport interface {
	PostChat(ctx context.Context, body []byte) ([]byte, error)
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// chat sends input to the ai-service and decodes the JSON object in its
// output into v.
func chat(ctx context.Context, t Transport, input string, v any) error {
	b, err := json.Marshal(chatRequest{Agent: "auto", Input: input})
	if err != nil {
		return err
	}
	rb, err := t.PostChat(ctx, b)
	if err != nil {
		return err
	}
	var resp chatResponse
	if err := json.Unmarshal(rb, &resp); err != nil {
		return fmt.Errorf("decode chat response: %w", err)
	}
	return ExtractJSON(resp.Output, v)
}

// ExtractJSON decodes the output as JSON, falling back to the outermost
// {...} span when the model wrapped it in prose or code fences.
func ExtractJSON(output string, v any) error {
	err := json.Unmarshal([]byte(output), v)
	if err == nil {
		return nil
	}
	start := strings.IndexByte(output, '{')
	end := strings.LastIndexByte(output, '}')
	if start >= 0 && end > start {
		if err2 := json.Unmarshal([]byte(output[start:end+1]), v); err2 == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrNonJSON, err)
}

func mustMarshal(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
