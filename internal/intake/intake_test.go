package intake

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/model"
)

func predictableIDs(t *testing.T) {
	t.Helper()
	prev := model.NewBulletID
	n := 0
	model.NewBulletID = func() model.BulletID {
		n++
		return model.BulletID(fmt.Sprintf("id-%d", n))
	}
	t.Cleanup(func() { model.NewBulletID = prev })
}

const parserJSON = `{
  "identity": {"name": "  Ada Lovelace ", "email": "ada@example.com"},
  "summary": null,
  "experience": [
    {"title": "Engineer", "organization": "Engines", "bullets": ["  Led X ", {"text": "Built Y", "enabled": false}, ""],
     "technologies": ["Go", "SQL"]}
  ],
  "education": [{"degree": "BSc", "institution": "London"}],
  "skills": {
    "Programming Languages": ["Go", "Python"],
    "programming_languages": ["Rust"],
    "Hobbies": ["Chess"],
    "Cloud": "AWS, GCP"
  },
  "projects": [{"name": "Engine", "bullets": [{"text": "Gears"}]}],
  "certifications": ["CKA", {"name": "AWS SA", "url": "https://aws.amazon.com"}],
  "volunteer": {"title": "Mentor", "bullets": ["Taught"]}
}`

func TestFromParserOutput(t *testing.T) {
	predictableIDs(t)

	doc, err := FromParserOutput([]byte(parserJSON))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", doc.Identity.Name)
	assert.Equal(t, "", doc.Summary)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, []model.Bullet{
		{ID: "id-1", Text: "Led X", Enabled: true, Origin: model.OriginOriginal},
		{ID: "id-2", Text: "Built Y", Enabled: false, Origin: model.OriginOriginal},
	}, doc.Experience[0].Bullets)
	assert.Equal(t, []string{"Go", "SQL"}, doc.Experience[0].Technologies)
	assert.Equal(t, []string{"Rust", "Go", "Python"}, doc.Skills.Get(model.ProgrammingLanguages))
	assert.Equal(t, []string{"AWS", "GCP"}, doc.Skills.Get(model.VersionControlCloud))
	assert.Equal(t, 5, doc.Skills.Count())
	assert.Equal(t, []model.Certification{{Label: "CKA"}, {Label: "AWS SA", Link: "https://aws.amazon.com"}}, doc.Certifications)
	require.NotNil(t, doc.Volunteer)
	assert.Equal(t, "Taught", doc.Volunteer.Bullets[0].Text)
	assert.Equal(t, model.OriginOriginal, doc.Projects[0].Bullets[0].Origin)
	assert.True(t, doc.Projects[0].Bullets[0].Enabled)
}

func TestFromParserOutput_SchemaViolation(t *testing.T) {
	for name, raw := range map[string]string{
		"missing fields": `{"identity": {"name": "Ada"}}`,
		"not json":       `Ada Lovelace, engineer`,
		"bad bullets":    `{"identity":{},"experience":[{"bullets":[{"enabled":true}]}],"education":[],"skills":{},"projects":[]}`,
		"skills list":    `{"identity":{},"experience":[],"education":[],"skills":[],"projects":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromParserOutput([]byte(raw))
			assert.ErrorIs(t, err, model.ErrSchemaViolation)
		})
	}
}

func TestFromParserOutput_IDsAreUniqueAcrossEntries(t *testing.T) {
	raw := `{"identity":{},"education":[],"skills":{},"projects":[],
		"experience":[{"title":"A","bullets":["x","y"]},{"title":"B","bullets":["x","y"]}]}`

	doc, err := FromParserOutput([]byte(raw))
	require.NoError(t, err)

	seen := map[model.BulletID]bool{}
	for _, p := range doc.Experience {
		for _, b := range p.Bullets {
			assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
			seen[b.ID] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestFromYAML(t *testing.T) {
	raw := `
identity:
  name: Ada Lovelace
experience:
  - title: Engineer
    organization: Engines
    startDate: 2019
    bullets:
      - Led X
education: []
skills:
  Database: [PostgreSQL]
  Languages: [Go]
projects: []
volunteer: null
`
	doc, err := FromYAML([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", doc.Identity.Name)
	assert.Equal(t, "2019", doc.Experience[0].StartDate)
	assert.Equal(t, "Led X", doc.Experience[0].Bullets[0].Text)
	assert.Equal(t, []string{"PostgreSQL"}, doc.Skills.Get(model.DatabaseManagement))
	assert.Equal(t, []string{"Go"}, doc.Skills.Get(model.ProgrammingLanguages))
	assert.Nil(t, doc.Volunteer)

	_, err = FromYAML([]byte("identity: [unclosed"))
	assert.ErrorIs(t, err, model.ErrSchemaViolation)
}
