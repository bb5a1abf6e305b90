package render

import (
	"strings"

	"resume-studio/internal/model"
)

// Effective returns the document as the renderers see it: disabled and
// blank bullets removed, entries without a heading removed and blank labels
// dropped. Skill keys are kept even when their list ends up empty.
func Effective(doc model.Document) model.Document {
	out := model.New()
	out.Identity = model.Identity{
		Name:      strings.TrimSpace(doc.Identity.Name),
		Title:     strings.TrimSpace(doc.Identity.Title),
		Phone:     strings.TrimSpace(doc.Identity.Phone),
		Email:     strings.TrimSpace(doc.Identity.Email),
		LinkedIn:  strings.TrimSpace(doc.Identity.LinkedIn),
		Portfolio: strings.TrimSpace(doc.Identity.Portfolio),
		GitHub:    strings.TrimSpace(doc.Identity.GitHub),
	}
	out.Summary = strings.TrimSpace(doc.Summary)
	out.CoverLetter = strings.TrimSpace(doc.CoverLetter)

	for _, p := range doc.Experience {
		if ep, ok := effectivePosition(p); ok {
			out.Experience = append(out.Experience, ep)
		}
	}
	if doc.Volunteer != nil {
		if ep, ok := effectivePosition(*doc.Volunteer); ok {
			out.Volunteer = &ep
		}
	}
	for _, p := range doc.Projects {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		out.Projects = append(out.Projects, model.Project{
			Name:         strings.TrimSpace(p.Name),
			Organization: strings.TrimSpace(p.Organization),
			Location:     strings.TrimSpace(p.Location),
			StartDate:    strings.TrimSpace(p.StartDate),
			EndDate:      strings.TrimSpace(p.EndDate),
			Link:         strings.TrimSpace(p.Link),
			Bullets:      enabledBullets(p.Bullets),
		})
	}
	for _, c := range doc.Education {
		if strings.TrimSpace(c.Degree) == "" && strings.TrimSpace(c.Institution) == "" {
			continue
		}
		out.Education = append(out.Education, model.Credential{
			Degree:      strings.TrimSpace(c.Degree),
			Institution: strings.TrimSpace(c.Institution),
			Location:    strings.TrimSpace(c.Location),
			StartDate:   strings.TrimSpace(c.StartDate),
			EndDate:     strings.TrimSpace(c.EndDate),
			Details:     strings.TrimSpace(c.Details),
		})
	}
	for _, c := range doc.Certifications {
		if label := strings.TrimSpace(c.Label); label != "" {
			out.Certifications = append(out.Certifications, model.Certification{Label: label, Link: strings.TrimSpace(c.Link)})
		}
	}
	for _, k := range model.SkillKeys() {
		out.Skills = out.Skills.With(k, nonBlank(doc.Skills.Get(k)))
	}
	return out
}

func effectivePosition(p model.Position) (model.Position, bool) {
	title := strings.TrimSpace(p.Title)
	org := strings.TrimSpace(p.Organization)
	if title == "" && org == "" {
		return model.Position{}, false
	}
	return model.Position{
		Title:        title,
		Organization: org,
		Location:     strings.TrimSpace(p.Location),
		StartDate:    strings.TrimSpace(p.StartDate),
		EndDate:      strings.TrimSpace(p.EndDate),
		Bullets:      enabledBullets(p.Bullets),
		Technologies: nonBlank(p.Technologies),
	}, true
}

func enabledBullets(in []model.Bullet) []model.Bullet {
	var out []model.Bullet
	for _, b := range in {
		if !b.Enabled {
			continue
		}
		if b.Text = strings.TrimSpace(b.Text); b.Text != "" {
			out = append(out, b)
		}
	}
	return out
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasContent reports whether an effective document has anything to render.
func HasContent(eff model.Document) bool {
	return eff.Identity.Name != "" ||
		eff.Summary != "" ||
		len(eff.Experience) > 0 ||
		eff.Skills.Count() > 0 ||
		len(eff.Projects) > 0 ||
		eff.Volunteer != nil ||
		len(eff.Certifications) > 0 ||
		len(eff.Education) > 0
}
