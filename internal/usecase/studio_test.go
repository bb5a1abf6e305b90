package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/adapter/repository"
	"resume-studio/internal/domain"
	"resume-studio/internal/merge"
	"resume-studio/internal/model"
	"resume-studio/internal/mutation"
	"resume-studio/internal/render"
	"resume-studio/pkg/ai"
)

const sampleParse = `{
  "identity": {"name": "Ada Lovelace", "email": "ada@example.com"},
  "experience": [
    {"title": "Engineer", "organization": "Engines", "bullets": ["Built the engine"]},
    {"title": "Analyst", "organization": "Notes", "bullets": ["Wrote notes"]}
  ],
  "education": [],
  "skills": {"languages": ["Go"]},
  "projects": []
}`

type fakeAI struct {
	mu        sync.Mutex
	parse     []byte
	parseErr  error
	generated merge.Generated
	genErr    error
	labels    render.Labels
	calls     []string
	languages []string
}

func (f *fakeAI) ParseResume(_ context.Context, _ string) ([]byte, error) {
	f.record("parse", "")
	return f.parse, f.parseErr
}

func (f *fakeAI) GenerateContent(_ context.Context, _ model.Document, _ string, _ []string, language string) (merge.Generated, error) {
	f.record("generate", language)
	return f.generated, f.genErr
}

func (f *fakeAI) TranslateLabels(_ context.Context, language string) (render.Labels, error) {
	f.record("labels", language)
	return f.labels, nil
}

func (f *fakeAI) record(call, language string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.languages = append(f.languages, language)
}

type fakeRenderer struct {
	outputs [][]byte
	errs    []error
	calls   int
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	i := f.calls
	f.calls++
	if i >= len(f.outputs) {
		i = len(f.outputs) - 1
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.outputs[i], err
}

func newTestStudio(t *testing.T, a *fakeAI, r Renderer) (*Studio, *domain.Session) {
	t.Helper()
	s := NewStudio(repository.NewMemoryRepo(), a, r, Options{RenderAttempts: 3})
	s.backoff = func(int) time.Duration { return time.Millisecond }
	sess, err := s.Create(context.Background(), "")
	require.NoError(t, err)
	return s, sess
}

func TestCreateUsesDefaultLanguage(t *testing.T) {
	_, sess := newTestStudio(t, &fakeAI{}, nil)
	assert.Equal(t, "English", sess.Language)
	assert.Equal(t, 1, sess.Version)
	assert.Empty(t, sess.Document.Experience)
}

func TestImportReplacesDocument(t *testing.T) {
	a := &fakeAI{parse: []byte(sampleParse)}
	s, sess := newTestStudio(t, a, nil)

	got, err := s.Import(context.Background(), sess.ID, "Ada Lovelace\nEngineer at Engines")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Document.Identity.Name)
	require.Len(t, got.Document.Experience, 2)
	assert.Equal(t, []string{"Go"}, got.Document.Skills.Get(model.ProgrammingLanguages))
	assert.Equal(t, 2, got.Version)
}

func TestImportKeepsDocumentOnFailure(t *testing.T) {
	ctx := context.Background()
	a := &fakeAI{parse: []byte(sampleParse)}
	s, sess := newTestStudio(t, a, nil)
	_, err := s.Import(ctx, sess.ID, "resume")
	require.NoError(t, err)

	a.parse = []byte(`{"identity": {}}`)
	_, err = s.Import(ctx, sess.ID, "resume")
	assert.ErrorIs(t, err, model.ErrSchemaViolation)

	a.parseErr = ai.ErrUnavailable
	_, err = s.Import(ctx, sess.ID, "resume")
	assert.ErrorIs(t, err, ai.ErrUnavailable)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Document.Identity.Name)
	assert.Equal(t, 2, got.Version)
}

func TestImportRejectsBlankText(t *testing.T) {
	a := &fakeAI{}
	s, sess := newTestStudio(t, a, nil)
	_, err := s.Import(context.Background(), sess.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, a.calls)
}

func TestImportDocument(t *testing.T) {
	s, sess := newTestStudio(t, &fakeAI{}, nil)
	got, err := s.ImportDocument(context.Background(), sess.ID, []byte(sampleParse))
	require.NoError(t, err)
	assert.Len(t, got.Document.Experience, 2)
}

func TestApplyReportsChange(t *testing.T) {
	ctx := context.Background()
	s, sess := newTestStudio(t, &fakeAI{}, nil)

	res, err := s.Apply(ctx, sess.ID, mutation.SetField{Path: "identity.name", Value: "Grace Hopper"})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Grace Hopper", res.Session.Document.Identity.Name)
	assert.Equal(t, 2, res.Session.Version)

	res, err = s.Apply(ctx, sess.ID, mutation.DeleteEntry{List: "experience", Index: 4})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 2, res.Session.Version)
}

func TestApplyUnknownSession(t *testing.T) {
	s, _ := newTestStudio(t, &fakeAI{}, nil)
	_, err := s.Apply(context.Background(), uuid.New(), mutation.Reset{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResetKeepsLabels(t *testing.T) {
	ctx := context.Background()
	s, sess := newTestStudio(t, &fakeAI{}, nil)
	_, err := s.ImportDocument(ctx, sess.ID, []byte(sampleParse))
	require.NoError(t, err)
	_, err = s.SetLabels(ctx, sess.ID, map[string]string{"summary": "Resumen"})
	require.NoError(t, err)

	got, err := s.Reset(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Document.Experience)
	assert.Equal(t, "Resumen", got.Labels["summary"])
}

func TestGenerateMergesIntoExperience(t *testing.T) {
	ctx := context.Background()
	a := &fakeAI{generated: merge.Generated{
		BulletsBySkill: []merge.SkillBullets{
			{Skill: "Go", Bullets: []string{"Shipped a Go service", "Cut latency"}},
		},
		CoverLetter: "Dear team",
	}}
	s, sess := newTestStudio(t, a, nil)
	_, err := s.ImportDocument(ctx, sess.ID, []byte(sampleParse))
	require.NoError(t, err)

	res, err := s.Generate(ctx, sess.ID, GenerateRequest{Role: " Backend ", Skills: []string{"Go", "go", " "}})
	require.NoError(t, err)
	assert.Equal(t, merge.OutcomeMerged, res.Merge.Outcome)
	assert.Equal(t, 2, res.Merge.Inserted)
	assert.Equal(t, "Dear team", res.Session.Document.CoverLetter)
	first := res.Session.Document.Experience[0].Bullets[0]
	assert.Equal(t, "Shipped a Go service", first.Text)
	assert.Equal(t, model.OriginAI, first.Origin)
	assert.Equal(t, []string{"English"}, a.languages[len(a.languages)-1:])
}

func TestGenerateWithoutExperience(t *testing.T) {
	a := &fakeAI{}
	s, sess := newTestStudio(t, a, nil)

	res, err := s.Generate(context.Background(), sess.ID, GenerateRequest{Role: "Backend", Skills: []string{"Go"}})
	require.NoError(t, err)
	assert.Equal(t, merge.OutcomeNothingToMerge, res.Merge.Outcome)
	assert.Equal(t, 1, res.Session.Version)
	assert.Empty(t, a.calls)
}

func TestGenerateValidatesRequest(t *testing.T) {
	s, sess := newTestStudio(t, &fakeAI{}, nil)
	_, err := s.Generate(context.Background(), sess.ID, GenerateRequest{Role: "", Skills: []string{"Go"}})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = s.Generate(context.Background(), sess.ID, GenerateRequest{Role: "Backend"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateFailureLeavesDocument(t *testing.T) {
	ctx := context.Background()
	a := &fakeAI{genErr: ai.ErrUnavailable}
	s, sess := newTestStudio(t, a, nil)
	before, err := s.ImportDocument(ctx, sess.ID, []byte(sampleParse))
	require.NoError(t, err)

	_, err = s.Generate(ctx, sess.ID, GenerateRequest{Role: "Backend", Skills: []string{"Go"}})
	assert.ErrorIs(t, err, ai.ErrUnavailable)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Document, got.Document)
	assert.Equal(t, before.Version, got.Version)
}

func TestTranslate(t *testing.T) {
	ctx := context.Background()
	a := &fakeAI{labels: render.Labels{"summary": "Resumen"}}
	s, sess := newTestStudio(t, a, nil)

	got, err := s.Translate(ctx, sess.ID, "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", got.Language)
	assert.Equal(t, "Resumen", got.Labels["summary"])

	got, err = s.Translate(ctx, sess.ID, "english")
	require.NoError(t, err)
	assert.Empty(t, got.Labels)
	assert.Equal(t, []string{"labels"}, a.calls)
}

func TestSetLabelsDropsUnknownKeys(t *testing.T) {
	s, sess := newTestStudio(t, &fakeAI{}, nil)
	got, err := s.SetLabels(context.Background(), sess.ID, map[string]string{
		"skills": " Competencias ",
		"bogus":  "x",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"skills": "Competencias"}, got.Labels)
}

func TestRenderLaTeXAndHTML(t *testing.T) {
	ctx := context.Background()
	s, sess := newTestStudio(t, &fakeAI{}, nil)
	_, err := s.ImportDocument(ctx, sess.ID, []byte(sampleParse))
	require.NoError(t, err)

	tex, err := s.RenderLaTeX(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada_Lovelace_Resume.tex", tex.FileName)
	assert.Contains(t, string(tex.Body), "Built the engine")

	html, err := s.RenderHTML(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada_Lovelace_Resume.html", html.FileName)
	assert.True(t, strings.HasPrefix(html.ContentType, "text/html"))
	assert.Contains(t, string(html.Body), "Built the engine")
}

func TestRenderPDFRetries(t *testing.T) {
	ctx := context.Background()
	r := &fakeRenderer{
		outputs: [][]byte{nil, []byte("<html>"), []byte("%PDF-1.7")},
		errs:    []error{errors.New("chrome crashed")},
	}
	s, sess := newTestStudio(t, &fakeAI{}, r)

	pdf, err := s.RenderPDF(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, r.calls)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.Equal(t, "resume.pdf", pdf.FileName)
}

func TestRenderPDFGivesUp(t *testing.T) {
	r := &fakeRenderer{outputs: [][]byte{[]byte("not a pdf")}}
	s, sess := newTestStudio(t, &fakeAI{}, r)

	_, err := s.RenderPDF(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Equal(t, 3, r.calls)
}

func TestConcurrentAppliesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s, sess := newTestStudio(t, &fakeAI{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Apply(ctx, sess.ID, mutation.AddEntry{List: "skills.tools_methodologies", Entry: uuid.NewString()})
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 21, got.Version)
	assert.Equal(t, 20, got.Document.Skills.Count())
}
