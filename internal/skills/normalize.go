// Package skills folds free-form skill category names onto the eleven
// canonical keys of model.Skills.
package skills

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"resume-studio/internal/model"
)

// Category is one incoming (name, labels) group, in the order it arrived.
type Category struct {
	Name   string
	Labels []string
}

// Rule maps any key matching one of Patterns onto Key.
type Rule struct {
	Key      model.SkillKey
	Patterns []*regexp.Regexp
}

func (r Rule) matches(name string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func rule(key model.SkillKey, patterns ...string) Rule {
	r := Rule{Key: key}
	for _, p := range patterns {
		r.Patterns = append(r.Patterns, regexp.MustCompile(`(?i)`+p))
	}
	return r
}

// Rules is evaluated top to bottom and the first match wins, so order
// matters: "Database Management" lands in database_management because that
// rule precedes the generic "management" pattern.
var Rules = []Rule{
	rule(model.ProgrammingLanguages, `\bprogramming\b`, `\blanguages?\b`, `\bcoding\b`),
	rule(model.FrontendTechnologies, `\bfront ?end\b`, `\bui\b`, `\bux\b`, `\bclient side\b`, `\bweb\b`),
	rule(model.BackendTechnologies, `\bback ?end\b`, `\bserver side\b`, `\bapis?\b`, `\bframeworks?\b`),
	rule(model.DatabaseManagement, `\bdata ?bases?\b`, `\bdbms\b`, `\bsql\b`, `\bstorage\b`),
	rule(model.ProjectProgramManagement, `\bprojects?\b`, `\bprogram(me)?s?\b`, `\bmanagement\b`, `\bagile\b`, `\bscrum\b`, `\bleadership\b`),
	rule(model.BusinessAnalysisDocumentation, `\bbusiness\b`, `\banalysis\b`, `\bdocumentation\b`, `\brequirements?\b`),
	rule(model.DataReportingTools, `\breporting\b`, `\banalytics\b`, `\bvisuali[sz]ation\b`, `\bdata\b`, `\bbi\b`),
	rule(model.CollaborationCommunication, `\bcollaboration\b`, `\bcommunication\b`, `\bsoft skills\b`, `\binterpersonal\b`, `\bteamwork\b`),
	rule(model.TestingQualityAssurance, `\btesting\b`, `\btests?\b`, `\bquality\b`, `\bqa\b`),
	rule(model.ToolsMethodologies, `\btools?\b`, `\bmethodolog(y|ies)\b`, `\bdevops\b`, `\bci ?cd\b`),
	rule(model.VersionControlCloud, `\bversion control\b`, `\bgit\b`, `\bcloud\b`, `\baws\b`, `\bazure\b`, `\bgcp\b`, `\binfrastructure\b`),
}

var separators = strings.NewReplacer("_", " ", "-", " ", "/", " ", "&", " ")

// Match returns the canonical key for name using rules, and whether any
// rule matched. Exact canonical names match themselves.
func Match(rules []Rule, name string) (model.SkillKey, bool) {
	if k := model.SkillKey(name); k.Valid() {
		return k, true
	}
	folded := strings.Join(strings.Fields(strings.ToLower(separators.Replace(name))), " ")
	for _, r := range rules {
		if r.matches(folded) {
			return r.Key, true
		}
	}
	return "", false
}

// Normalize builds canonical skills from categories using Rules.
func Normalize(in []Category) model.Skills {
	return NormalizeWith(Rules, in)
}

// NormalizeWith seeds every canonical key from the category of the same
// name, then appends every other category to the first rule it matches.
// Categories matching nothing are dropped.
func NormalizeWith(rules []Rule, in []Category) model.Skills {
	var buckets [model.NumSkillKeys][]string
	keys := model.SkillKeys()
	slot := func(k model.SkillKey) int {
		for i, c := range keys {
			if c == k {
				return i
			}
		}
		return -1
	}

	for _, c := range in {
		if k := model.SkillKey(c.Name); k.Valid() {
			i := slot(k)
			buckets[i] = append(buckets[i], c.Labels...)
		}
	}
	for _, c := range in {
		if model.SkillKey(c.Name).Valid() {
			continue
		}
		k, ok := Match(rules, c.Name)
		if !ok {
			continue
		}
		i := slot(k)
		buckets[i] = append(buckets[i], c.Labels...)
	}

	var out model.Skills
	for i, k := range keys {
		out = out.With(k, dedupe(buckets[i]))
	}
	return out
}

// NormalizeMap is Normalize for unordered input; keys are visited in sorted
// order so the result is deterministic.
func NormalizeMap(m map[string][]string) model.Skills {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	in := make([]Category, 0, len(names))
	for _, n := range names {
		in = append(in, Category{Name: n, Labels: m[n]})
	}
	return Normalize(in)
}

// FromSkills turns canonical skills back into categories, for re-running the
// normalizer on a document that already conforms.
func FromSkills(s model.Skills) []Category {
	out := make([]Category, 0, model.NumSkillKeys)
	for _, k := range model.SkillKeys() {
		out = append(out, Category{Name: string(k), Labels: s.Get(k)})
	}
	return out
}

// DecodeCategories reads a JSON object of name -> labels keeping the
// object's key order. A label list may also arrive as one comma-separated
// string.
func DecodeCategories(b []byte) ([]Category, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("skills must be an object, got %v", tok)
	}
	var out []Category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("skills.%s: %w", name, err)
		}
		labels, err := decodeLabels(raw)
		if err != nil {
			return nil, fmt.Errorf("skills.%s: %w", name, err)
		}
		out = append(out, Category{Name: name, Labels: labels})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeLabels(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("labels must be a list or a string")
	}
	return strings.Split(s, ","), nil
}

func dedupe(labels []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
