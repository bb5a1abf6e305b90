package model

import (
	"encoding/json"
	"fmt"
)

// Certification is a label with an optional link.
type Certification struct {
	Label string `json:"label"`
	Link  string `json:"link,omitempty"`
}

// UnmarshalJSON accepts either a bare string or an object. Parsers emit both
// shapes; objects may use name/url instead of label/link.
func (c *Certification) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Certification{Label: s}
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("certification must be a string or object: %w", err)
	}
	out := Certification{}
	for _, k := range []string{"label", "name", "title"} {
		if v, ok := m[k].(string); ok && v != "" {
			out.Label = v
			break
		}
	}
	for _, k := range []string{"link", "url"} {
		if v, ok := m[k].(string); ok && v != "" {
			out.Link = v
			break
		}
	}
	*c = out
	return nil
}
