package render

// Labels maps section keys to headings. Missing keys fall back to the
// English defaults, so a partial translation is still usable.
type Labels map[string]string

const (
	KeySummary        = "summary"
	KeyExperience     = "experience"
	KeySkills         = "skills"
	KeyProjects       = "projects"
	KeyVolunteer      = "volunteer"
	KeyCertifications = "certifications"
	KeyEducation      = "education"
	KeyNoContent      = "no_content"
)

// SectionOrder is the fixed priority order shared by both renderers.
var SectionOrder = []string{
	KeySummary,
	KeyExperience,
	KeySkills,
	KeyProjects,
	KeyVolunteer,
	KeyCertifications,
	KeyEducation,
}

// DefaultLabels returns English headings.
func DefaultLabels() Labels {
	return Labels{
		KeySummary:        "Summary",
		KeyExperience:     "Experience",
		KeySkills:         "Technical Skills",
		KeyProjects:       "Projects",
		KeyVolunteer:      "Volunteer Experience",
		KeyCertifications: "Certifications",
		KeyEducation:      "Education",
		KeyNoContent:      "No resume content yet. Import a resume or add an entry to get started.",
	}
}

// Get returns the heading for key.
func (l Labels) Get(key string) string {
	if v, ok := l[key]; ok && v != "" {
		return v
	}
	return DefaultLabels()[key]
}

// Keys lists every key a translation is expected to provide.
func (l Labels) Keys() []string {
	return append(append([]string{}, SectionOrder...), KeyNoContent)
}
