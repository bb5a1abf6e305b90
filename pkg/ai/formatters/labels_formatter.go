package formatters

import (
	"context"
	"fmt"
	"sort"
)

type LabelsFormatter struct {
	transport Transport
	language  string
}

func NewLabelsFormatter(t Transport, language string) *LabelsFormatter {
	return &LabelsFormatter{transport: t, language: language}
}

// Format translates the values of defaults into the formatter's language.
// Only keys present in defaults are returned.
func (lf *LabelsFormatter) Format(ctx context.Context, defaults map[string]string) (map[string]string, error) {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	instr := fmt.Sprintf(`You are a professional resume label translator. Translate section headings to %s.

RULES:
1. Return ONLY valid JSON (no markdown, no code blocks, no explanation)
2. Translate VALUES to %s ONLY - do NOT change the KEY names
3. Each heading value must be 1-5 words; "no_content" is one sentence
4. MUST include ALL %d keys in the output

ENGLISH SOURCE:
%s`, lf.language, lf.language, len(keys), mustMarshal(defaults))

	var out map[string]string
	if err := chat(ctx, lf.transport, "Translate UI labels to "+lf.language+":\n"+instr, &out); err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := out[k]; ok && v != "" {
			labels[k] = v
		}
	}
	return labels, nil
}
