// Package intake turns Resume Parser output into a canonical document.
//
// Parser output is validated against the document schema, decoded
// tolerantly (bullets may be plain strings, certifications may be bare
// labels, skill categories may use any header) and normalized onto the
// eleven canonical skill keys. Anything that fails validation is reported
// as model.ErrSchemaViolation and never reaches the session.
package intake

import (
	"encoding/json"
	"fmt"

	"resume-studio/internal/model"
	"resume-studio/internal/mutation"
	"resume-studio/internal/skills"
)

type parsedBullet struct {
	model.Bullet
}

// Parser bullets are original content and start enabled unless the parser
// says otherwise.
func (p *parsedBullet) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		p.Bullet = model.Bullet{Text: s, Enabled: true, Origin: model.OriginOriginal}
		return nil
	}
	var raw struct {
		Text     string       `json:"text"`
		Enabled  *bool        `json:"enabled"`
		Origin   model.Origin `json:"origin"`
		Category string       `json:"category"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if !raw.Origin.Valid() {
		raw.Origin = model.OriginOriginal
	}
	enabled := raw.Origin != model.OriginAI
	if raw.Enabled != nil {
		enabled = *raw.Enabled
	}
	p.Bullet = model.Bullet{Text: raw.Text, Enabled: enabled, Origin: raw.Origin, Category: raw.Category}
	return nil
}

type parsedPosition struct {
	model.Position
	Bullets []parsedBullet `json:"bullets"`
}

func (p parsedPosition) position() model.Position {
	out := p.Position
	out.Bullets = bullets(p.Bullets)
	return out
}

type parsedProject struct {
	model.Project
	Bullets []parsedBullet `json:"bullets"`
}

type parsedDocument struct {
	Identity       model.Identity        `json:"identity"`
	Summary        *string               `json:"summary"`
	Experience     []parsedPosition      `json:"experience"`
	Education      []model.Credential    `json:"education"`
	Skills         json.RawMessage       `json:"skills"`
	Projects       []parsedProject       `json:"projects"`
	Certifications []model.Certification `json:"certifications"`
	Volunteer      *parsedPosition       `json:"volunteer"`
	CoverLetter    *string               `json:"coverLetter"`
}

func bullets(in []parsedBullet) []model.Bullet {
	out := make([]model.Bullet, len(in))
	for i, b := range in {
		out[i] = b.Bullet
	}
	return out
}

// FromParserOutput validates and decodes raw parser JSON. The result has
// trimmed text, fresh bullet ids and exactly the canonical skill keys.
func FromParserOutput(raw []byte) (model.Document, error) {
	if err := model.ValidateJSON(raw); err != nil {
		return model.Document{}, err
	}
	var pd parsedDocument
	if err := json.Unmarshal(raw, &pd); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", model.ErrSchemaViolation, err)
	}
	categories, err := skills.DecodeCategories(pd.Skills)
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", model.ErrSchemaViolation, err)
	}

	doc := model.New()
	doc.Identity = pd.Identity
	if pd.Summary != nil {
		doc.Summary = *pd.Summary
	}
	if pd.CoverLetter != nil {
		doc.CoverLetter = *pd.CoverLetter
	}
	for _, p := range pd.Experience {
		doc.Experience = append(doc.Experience, p.position())
	}
	doc.Education = append(doc.Education, pd.Education...)
	for _, p := range pd.Projects {
		project := p.Project
		project.Bullets = bullets(p.Bullets)
		doc.Projects = append(doc.Projects, project)
	}
	doc.Certifications = append(doc.Certifications, pd.Certifications...)
	if pd.Volunteer != nil {
		v := pd.Volunteer.position()
		doc.Volunteer = &v
	}
	doc.Skills = skills.Normalize(categories)

	return mutation.Apply(model.New(), mutation.Replace{Document: doc}), nil
}
