package mutation

import (
	"slices"
	"strconv"
	"strings"

	"resume-studio/internal/model"
)

type listKind int

const (
	listExperience listKind = iota + 1
	listEducation
	listProjects
	listCertifications
	listVolunteer
	listSkills
	listTechnologies
)

type listRef struct {
	kind  listKind
	index int
	key   model.SkillKey
}

// parseList resolves list paths: experience, education, projects,
// certifications, volunteer, skills.<key> and experience.<n>.technologies.
func parseList(p string) (listRef, bool) {
	parts := strings.Split(strings.TrimSpace(p), ".")
	switch len(parts) {
	case 1:
		switch parts[0] {
		case "experience":
			return listRef{kind: listExperience}, true
		case "education":
			return listRef{kind: listEducation}, true
		case "projects":
			return listRef{kind: listProjects}, true
		case "certifications":
			return listRef{kind: listCertifications}, true
		case "volunteer":
			return listRef{kind: listVolunteer}, true
		}
	case 2:
		if parts[0] == "skills" && model.SkillKey(parts[1]).Valid() {
			return listRef{kind: listSkills, key: model.SkillKey(parts[1])}, true
		}
	case 3:
		if parts[0] == "experience" && parts[2] == "technologies" {
			if i, err := strconv.Atoi(parts[1]); err == nil && i >= 0 {
				return listRef{kind: listTechnologies, index: i}, true
			}
		}
	}
	return listRef{}, false
}

// bullets returns a pointer to the bullet list of the addressed entry in d.
func bullets(d *model.Document, e EntryPath) (*[]model.Bullet, bool) {
	switch e.Section {
	case SectionExperience:
		if e.Index < 0 || e.Index >= len(d.Experience) {
			return nil, false
		}
		return &d.Experience[e.Index].Bullets, true
	case SectionProjects:
		if e.Index < 0 || e.Index >= len(d.Projects) {
			return nil, false
		}
		return &d.Projects[e.Index].Bullets, true
	case SectionVolunteer:
		if d.Volunteer == nil {
			return nil, false
		}
		return &d.Volunteer.Bullets, true
	}
	return nil, false
}

func inBounds(n, i int) bool { return i >= 0 && i < n }

func move[T any](s []T, from, to int) ([]T, bool) {
	if !inBounds(len(s), from) || !inBounds(len(s), to) || from == to {
		return s, false
	}
	item := s[from]
	out := slices.Delete(slices.Clone(s), from, from+1)
	return slices.Insert(out, to, item), true
}

func removeAt[T any](s []T, i int) ([]T, bool) {
	if !inBounds(len(s), i) {
		return s, false
	}
	return slices.Delete(slices.Clone(s), i, i+1), true
}

// splitLabels turns "Go, Rust ,," into [Go Rust].
func splitLabels(v string) []string {
	var out []string
	for _, l := range strings.Split(v, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, l := range list {
		if strings.EqualFold(l, s) {
			return true
		}
	}
	return false
}
