package formatters

import (
	"context"
	"encoding/json"
	"fmt"
)

// ParserFormatter asks the ai-service to turn free resume text into the
// document shape described by a JSON schema.
type ParserFormatter struct {
	transport Transport
	schema    []byte
	language  string
}

func NewParserFormatter(t Transport, schema []byte, language string) *ParserFormatter {
	return &ParserFormatter{transport: t, schema: schema, language: language}
}

// Format returns the raw JSON object produced for text. Validation is the
// caller's job.
func (pf *ParserFormatter) Format(ctx context.Context, text string) ([]byte, error) {
	instr := fmt.Sprintf(`Extract the resume below into ONE JSON object that conforms to the JSON schema. Keep the original wording and language (%s) of every bullet.

RULES:
1. Return ONLY valid JSON (no markdown, no code fences, no explanation)
2. Use an empty string for any contact channel that is missing, never null
3. Bullets are plain strings in the order they appear
4. "skills" maps the resume's own category headers to lists of skill names
5. "volunteer" is null unless the resume has a volunteer role

JSON-SCHEMA:
%s`, pf.language, pf.schema)

	userCtx := map[string]any{"resume_text": text, "instructions": instr}
	var out json.RawMessage
	if err := chat(ctx, pf.transport, "Parse resume:\n"+mustMarshal(userCtx), &out); err != nil {
		return nil, err
	}
	return out, nil
}
