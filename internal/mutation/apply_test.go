package mutation

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/model"
)

func fixture() model.Document {
	doc := model.New()
	doc.Identity.Name = "Ada Lovelace"
	doc.Experience = []model.Position{
		{
			Title:        "Engineer",
			Organization: "Acme",
			StartDate:    "2020",
			EndDate:      "2023",
			Bullets: []model.Bullet{
				{ID: "b1", Text: "Led X", Enabled: true, Origin: model.OriginOriginal},
				{ID: "b2", Text: "Built Y", Enabled: false, Origin: model.OriginAI, Category: "Go"},
				{ID: "b3", Text: "Shipped Z", Enabled: true, Origin: model.OriginUser},
			},
			Technologies: []string{"Go", "Postgres"},
		},
		{Title: "Intern", Organization: "Initech"},
	}
	doc.Projects = []model.Project{{Name: "Compiler", Bullets: []model.Bullet{{ID: "p1", Text: "Wrote a parser", Enabled: true}}}}
	doc.Education = []model.Credential{{Degree: "BSc", Institution: "UCL"}}
	doc.Certifications = []model.Certification{{Label: "CKA"}, {Label: "PMP"}}
	doc.Skills = doc.Skills.With(model.ProgrammingLanguages, []string{"Go", "Rust", "Python"})
	return doc
}

var exp0 = EntryPath{Section: SectionExperience, Index: 0}

func texts(bs []model.Bullet) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Text
	}
	return out
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	doc := fixture()
	before := doc.Clone()

	cmds := []Command{
		SetField{Path: "experience.0.title", Value: "Staff Engineer"},
		ToggleBullet{Entry: exp0, Bullet: "b1", Enabled: false},
		EditBulletText{Entry: exp0, Bullet: "b3", Text: "Shipped W"},
		ReorderBullets{Entry: exp0, From: 0, To: 2},
		Reorder{List: "experience", From: 0, To: 1},
		DeleteEntry{List: "certifications", Index: 0},
		AddEntry{List: "skills.programming_languages", Entry: "Zig"},
		DeleteBullet{Entry: exp0, Bullet: "b2"},
	}
	for _, c := range cmds {
		next := Apply(doc, c)
		assert.NotEqual(t, doc, next, c.Op())
		assert.Equal(t, before, doc, c.Op())
	}
}

func TestToggleBullet_RoundTrip(t *testing.T) {
	doc := fixture()
	orig := doc.Experience[0].Bullets[0]

	off := Apply(doc, ToggleBullet{Entry: exp0, Bullet: "b1", Enabled: false})
	require.Len(t, off.Experience[0].Bullets, 3, "disabled bullets stay in the model")
	assert.False(t, off.Experience[0].Bullets[0].Enabled)

	on := Apply(off, ToggleBullet{Entry: exp0, Bullet: "b1", Enabled: true})
	assert.Equal(t, orig, on.Experience[0].Bullets[0])
}

func TestToggleBullet_AddressingFailuresAreNoops(t *testing.T) {
	doc := fixture()
	cmds := []Command{
		ToggleBullet{Entry: exp0, Bullet: "missing", Enabled: false},
		ToggleBullet{Entry: EntryPath{Section: SectionExperience, Index: 9}, Bullet: "b1"},
		ToggleBullet{Entry: EntryPath{Section: SectionVolunteer}, Bullet: "b1"},
		ToggleBullet{Entry: EntryPath{Section: "hobbies"}, Bullet: "b1"},
		ToggleBullet{Entry: exp0, Bullet: "b1", Enabled: true},
	}
	for _, c := range cmds {
		next, changed := Step(doc, c)
		assert.False(t, changed)
		assert.Equal(t, doc, next)
	}
}

func TestEditBulletText_BlankRemoves(t *testing.T) {
	doc := fixture()

	next := Apply(doc, EditBulletText{Entry: exp0, Bullet: "b2", Text: "   "})

	assert.Equal(t, []string{"Led X", "Shipped Z"}, texts(next.Experience[0].Bullets))
	assert.Equal(t, -1, model.FindBullet(next.Experience[0].Bullets, "b2"))
}

func TestEditBulletText_Trims(t *testing.T) {
	doc := fixture()

	next := Apply(doc, EditBulletText{Entry: exp0, Bullet: "b1", Text: "  Led the X team \n"})

	b := next.Experience[0].Bullets[0]
	assert.Equal(t, "Led the X team", b.Text)
	assert.Equal(t, model.BulletID("b1"), b.ID)
	assert.Equal(t, model.OriginOriginal, b.Origin)
}

func TestReorder_OutOfBoundsIsNoop(t *testing.T) {
	doc := fixture()
	cases := []Reorder{
		{List: "experience", From: 0, To: 0},
		{List: "experience", From: -1, To: 1},
		{List: "experience", From: 0, To: 2},
		{List: "nonsense", From: 0, To: 1},
		{List: "volunteer", From: 0, To: 1},
	}
	for _, c := range cases {
		_, changed := Step(doc, c)
		assert.False(t, changed, fmt.Sprintf("%+v", c))
	}
}

func TestReorder_PreservesMultisetAndPlacesAtTo(t *testing.T) {
	doc := fixture()
	doc.Experience = nil
	for i := 0; i < 5; i++ {
		doc.Experience = append(doc.Experience, model.Position{Title: fmt.Sprintf("role-%d", i)})
	}
	titles := func(d model.Document) []string {
		var out []string
		for _, p := range d.Experience {
			out = append(out, p.Title)
		}
		return out
	}

	for from := 0; from < 5; from++ {
		for to := 0; to < 5; to++ {
			next := Apply(doc, Reorder{List: "experience", From: from, To: to})
			got := titles(next)
			assert.Equal(t, doc.Experience[from].Title, got[to])

			want := titles(doc)
			slices.Sort(want)
			slices.Sort(got)
			assert.Equal(t, want, got)
		}
	}
}

func TestReorderBullets(t *testing.T) {
	doc := fixture()

	next := Apply(doc, ReorderBullets{Entry: exp0, From: 2, To: 0})
	assert.Equal(t, []string{"Shipped Z", "Led X", "Built Y"}, texts(next.Experience[0].Bullets))

	_, changed := Step(doc, ReorderBullets{Entry: exp0, From: 1, To: 3})
	assert.False(t, changed)

	// ids survive reordering, so toggling by id still hits the same bullet
	toggled := Apply(next, ToggleBullet{Entry: exp0, Bullet: "b3", Enabled: false})
	assert.False(t, toggled.Experience[0].Bullets[0].Enabled)
}

func TestDeleteEntry_Stable(t *testing.T) {
	doc := fixture()
	doc.Certifications = []model.Certification{{Label: "a"}, {Label: "b"}, {Label: "c"}, {Label: "d"}}

	next := Apply(doc, DeleteEntry{List: "certifications", Index: 1})
	assert.Equal(t, []model.Certification{{Label: "a"}, {Label: "c"}, {Label: "d"}}, next.Certifications)

	_, changed := Step(doc, DeleteEntry{List: "certifications", Index: 4})
	assert.False(t, changed)
}

func TestSetField_TrimsAndAddresses(t *testing.T) {
	doc := fixture()

	next := Apply(doc, SetField{Path: "identity.name", Value: "  Grace Hopper  "})
	assert.Equal(t, "Grace Hopper", next.Identity.Name)

	next = Apply(next, SetField{Path: "experience.1.organization", Value: " Globex "})
	assert.Equal(t, "Globex", next.Experience[1].Organization)

	next = Apply(next, SetField{Path: "experience.0.technologies", Value: "Go, , Kafka "})
	assert.Equal(t, []string{"Go", "Kafka"}, next.Experience[0].Technologies)

	next = Apply(next, SetField{Path: "coverLetter", Value: "\nDear team,\n"})
	assert.Equal(t, "Dear team,", next.CoverLetter)

	for _, p := range []string{"identity.age", "experience.7.title", "experience.x.title", "volunteer.title", "skills", ""} {
		_, changed := Step(doc, SetField{Path: p, Value: "v"})
		assert.False(t, changed, p)
	}
}

func TestAddEntry(t *testing.T) {
	doc := fixture()

	next := Apply(doc, AddEntry{List: "experience", Entry: model.Position{
		Title:   " Lead ",
		Bullets: []model.Bullet{{ID: "b1", Text: "Dup id", Enabled: true, Origin: model.OriginUser}, {Text: "  "}},
	}})
	require.Len(t, next.Experience, 3)
	added := next.Experience[2]
	assert.Equal(t, "Lead", added.Title)
	require.Len(t, added.Bullets, 1)
	assert.NotEqual(t, model.BulletID("b1"), added.Bullets[0].ID, "ids are never reused across entries")

	next = Apply(next, AddEntry{List: "volunteer", Entry: &model.Position{Title: "Mentor"}})
	require.NotNil(t, next.Volunteer)
	_, changed := Step(next, AddEntry{List: "volunteer", Entry: model.Position{Title: "Second"}})
	assert.False(t, changed, "volunteer holds at most one entry")

	next = Apply(next, AddEntry{List: "skills.programming_languages", Entry: "Zig"})
	assert.Equal(t, []string{"Go", "Rust", "Python", "Zig"}, next.Skills.Get(model.ProgrammingLanguages))
	_, changed = Step(next, AddEntry{List: "skills.programming_languages", Entry: "zig"})
	assert.False(t, changed)

	next = Apply(next, AddEntry{List: "certifications", Entry: "AWS SAA"})
	assert.Equal(t, "AWS SAA", next.Certifications[len(next.Certifications)-1].Label)

	next = Apply(next, AddEntry{List: "experience.0.technologies", Entry: "Kafka"})
	assert.Equal(t, []string{"Go", "Postgres", "Kafka"}, next.Experience[0].Technologies)

	for _, c := range []AddEntry{
		{List: "experience", Entry: model.Project{Name: "wrong type"}},
		{List: "skills.hobbies", Entry: "Chess"},
		{List: "skills.tools_methodologies", Entry: " "},
		{List: "education", Entry: nil},
	} {
		_, changed := Step(doc, c)
		assert.False(t, changed, c.List)
	}
}

func TestAddAndDeleteBullet(t *testing.T) {
	doc := fixture()

	next := Apply(doc, AddBullet{Entry: exp0, Text: " Mentored juniors "})
	bs := next.Experience[0].Bullets
	require.Len(t, bs, 4)
	assert.Equal(t, "Mentored juniors", bs[3].Text)
	assert.Equal(t, model.OriginUser, bs[3].Origin)
	assert.True(t, bs[3].Enabled)

	_, changed := Step(doc, AddBullet{Entry: exp0, Text: "  "})
	assert.False(t, changed)

	next = Apply(next, DeleteBullet{Entry: exp0, Bullet: "b2"})
	assert.Equal(t, []string{"Led X", "Shipped Z", "Mentored juniors"}, texts(next.Experience[0].Bullets))
}

func TestSkillsAndTechnologiesLists(t *testing.T) {
	doc := fixture()

	next := Apply(doc, Reorder{List: "skills.programming_languages", From: 2, To: 0})
	assert.Equal(t, []string{"Python", "Go", "Rust"}, next.Skills.Get(model.ProgrammingLanguages))

	next = Apply(next, DeleteEntry{List: "skills.programming_languages", Index: 1})
	assert.Equal(t, []string{"Python", "Rust"}, next.Skills.Get(model.ProgrammingLanguages))

	next = Apply(next, Reorder{List: "experience.0.technologies", From: 0, To: 1})
	assert.Equal(t, []string{"Postgres", "Go"}, next.Experience[0].Technologies)

	_, changed := Step(doc, DeleteEntry{List: "experience.5.technologies", Index: 0})
	assert.False(t, changed)
}

func TestVolunteerLifecycle(t *testing.T) {
	doc := fixture()
	doc = Apply(doc, AddEntry{List: "volunteer", Entry: model.Position{
		Title:   "Mentor",
		Bullets: []model.Bullet{{Text: "Ran workshops", Enabled: true, Origin: model.OriginUser}},
	}})
	vol := EntryPath{Section: SectionVolunteer}

	doc = Apply(doc, SetField{Path: "volunteer.organization", Value: "Code Club"})
	assert.Equal(t, "Code Club", doc.Volunteer.Organization)

	id := doc.Volunteer.Bullets[0].ID
	doc = Apply(doc, ToggleBullet{Entry: vol, Bullet: id, Enabled: false})
	assert.False(t, doc.Volunteer.Bullets[0].Enabled)

	doc = Apply(doc, DeleteEntry{List: "volunteer", Index: 0})
	assert.Nil(t, doc.Volunteer)
}

func TestReplaceAndReset(t *testing.T) {
	loaded := fixture()
	loaded.Identity.Name = "  Ada  "
	loaded.Experience[1].Bullets = []model.Bullet{{ID: "b1", Text: "shared id", Enabled: true}}

	doc := Apply(model.New(), Replace{Document: loaded})
	assert.Equal(t, "Ada", doc.Identity.Name)

	seen := map[model.BulletID]bool{}
	for _, p := range doc.Experience {
		for _, b := range p.Bullets {
			assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
			seen[b.ID] = true
		}
	}
	assert.Equal(t, texts(loaded.Experience[0].Bullets), texts(doc.Experience[0].Bullets))

	assert.Equal(t, model.New(), Apply(doc, Reset{}))
}

func TestStep_NilCommand(t *testing.T) {
	doc := fixture()
	next, changed := Step(doc, nil)
	assert.False(t, changed)
	assert.Equal(t, doc, next)
}
