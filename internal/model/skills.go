package model

import (
	"bytes"
	"encoding/json"
	"slices"
)

// SkillKey is one of the eleven canonical skill categories.
type SkillKey string

const (
	ProgrammingLanguages          SkillKey = "programming_languages"
	FrontendTechnologies          SkillKey = "frontend_technologies"
	BackendTechnologies           SkillKey = "backend_technologies"
	DatabaseManagement            SkillKey = "database_management"
	ProjectProgramManagement      SkillKey = "project_program_management"
	BusinessAnalysisDocumentation SkillKey = "business_analysis_documentation"
	DataReportingTools            SkillKey = "data_reporting_tools"
	CollaborationCommunication    SkillKey = "collaboration_communication"
	TestingQualityAssurance       SkillKey = "testing_quality_assurance"
	ToolsMethodologies            SkillKey = "tools_methodologies"
	VersionControlCloud           SkillKey = "version_control_cloud"
)

// NumSkillKeys is the size of the canonical vocabulary.
const NumSkillKeys = 11

var skillKeys = [NumSkillKeys]SkillKey{
	ProgrammingLanguages,
	FrontendTechnologies,
	BackendTechnologies,
	DatabaseManagement,
	ProjectProgramManagement,
	BusinessAnalysisDocumentation,
	DataReportingTools,
	CollaborationCommunication,
	TestingQualityAssurance,
	ToolsMethodologies,
	VersionControlCloud,
}

var skillLabels = map[SkillKey]string{
	ProgrammingLanguages:          "Programming Languages",
	FrontendTechnologies:          "Frontend Technologies",
	BackendTechnologies:           "Backend Technologies",
	DatabaseManagement:            "Database Management",
	ProjectProgramManagement:      "Project & Program Management",
	BusinessAnalysisDocumentation: "Business Analysis & Documentation",
	DataReportingTools:            "Data & Reporting Tools",
	CollaborationCommunication:    "Collaboration & Communication",
	TestingQualityAssurance:       "Testing & Quality Assurance",
	ToolsMethodologies:            "Tools & Methodologies",
	VersionControlCloud:           "Version Control & Cloud",
}

// SkillKeys returns the canonical keys in display order.
func SkillKeys() []SkillKey {
	return slices.Clone(skillKeys[:])
}

func (k SkillKey) index() int {
	for i, c := range skillKeys {
		if c == k {
			return i
		}
	}
	return -1
}

// Valid reports whether k is canonical.
func (k SkillKey) Valid() bool { return k.index() >= 0 }

// Label is the human heading for the category.
func (k SkillKey) Label() string { return skillLabels[k] }

// Skills holds one ordered label list per canonical key. The fixed array
// makes a twelfth category unrepresentable; the zero value has all eleven
// keys with empty lists.
type Skills struct {
	lists [NumSkillKeys][]string
}

// Get returns a copy of the labels stored under k.
func (s Skills) Get(k SkillKey) []string {
	i := k.index()
	if i < 0 {
		return nil
	}
	return slices.Clone(s.lists[i])
}

// With returns a copy of s whose k list is replaced by labels. Unknown keys
// leave s unchanged.
func (s Skills) With(k SkillKey, labels []string) Skills {
	i := k.index()
	if i < 0 {
		return s
	}
	out := s.Clone()
	if len(labels) == 0 {
		out.lists[i] = nil
	} else {
		out.lists[i] = slices.Clone(labels)
	}
	return out
}

// Count is the total number of labels across all categories.
func (s Skills) Count() int {
	n := 0
	for _, l := range s.lists {
		n += len(l)
	}
	return n
}

// Clone deep-copies every list.
func (s Skills) Clone() Skills {
	var out Skills
	for i, l := range s.lists {
		out.lists[i] = slices.Clone(l)
	}
	return out
}

// MarshalJSON writes all eleven keys in canonical order.
func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range skillKeys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(string(k))
		buf.Write(kb)
		buf.WriteByte(':')
		list := s.lists[i]
		if list == nil {
			list = []string{}
		}
		lb, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		buf.Write(lb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads canonical keys only. Free-form category names go
// through the skills normalizer before they reach this type.
func (s *Skills) UnmarshalJSON(b []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out Skills
	for k, v := range raw {
		if i := SkillKey(k).index(); i >= 0 && len(v) > 0 {
			out.lists[i] = v
		}
	}
	*s = out
	return nil
}
