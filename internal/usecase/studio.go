package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/domain"
	"resume-studio/internal/intake"
	"resume-studio/internal/merge"
	"resume-studio/internal/metrics"
	"resume-studio/internal/model"
	"resume-studio/internal/mutation"
	"resume-studio/internal/render"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}

// Parser is the Resume Parser collaborator.
type Parser interface {
	ParseResume(ctx context.Context, text string) ([]byte, error)
}

// Generator is the Content Generator collaborator.
type Generator interface {
	GenerateContent(ctx context.Context, doc model.Document, role string, skills []string, language string) (merge.Generated, error)
}

type Translator interface {
	TranslateLabels(ctx context.Context, language string) (render.Labels, error)
}

// AI bundles the external collaborators; *ai.Client satisfies it.
type AI interface {
	Parser
	Generator
	Translator
}

type Options struct {
	DefaultLanguage string
	RenderAttempts  int
	Metrics         metrics.Recorder
	Logger          *slog.Logger
}

// Studio runs the session workflow: import, edit, generate and render. It
// holds a per-session lock for the whole of every operation, external calls
// included, so a document is never edited while a collaborator call for it
// is outstanding.
type Studio struct {
	store    SessionStore
	ai       AI
	renderer Renderer
	metrics  metrics.Recorder
	logger   *slog.Logger
	locks    sessionLocks

	defaultLanguage string
	renderAttempts  int
	now             func() time.Time
	backoff         func(attempt int) time.Duration
}

func NewStudio(store SessionStore, ai AI, renderer Renderer, opts Options) *Studio {
	s := &Studio{
		store:           store,
		ai:              ai,
		renderer:        renderer,
		metrics:         opts.Metrics,
		logger:          opts.Logger,
		defaultLanguage: opts.DefaultLanguage,
		renderAttempts:  opts.RenderAttempts,
		now:             time.Now,
		backoff:         func(i int) time.Duration { return time.Duration(1<<i) * time.Second },
	}
	if s.metrics == nil {
		s.metrics = metrics.NoopRecorder{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.defaultLanguage == "" {
		s.defaultLanguage = "English"
	}
	if s.renderAttempts < 1 {
		s.renderAttempts = 3
	}
	return s
}

// Create starts an empty session.
func (s *Studio) Create(ctx context.Context, language string) (*domain.Session, error) {
	if language = strings.TrimSpace(language); language == "" {
		language = s.defaultLanguage
	}
	sess := domain.NewSession(language, s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("session created", "session", sess.ID, "language", language)
	return sess, nil
}

func (s *Studio) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.store.Get(ctx, id)
}

// Import runs the Resume Parser over text and replaces the document with
// its output. On any failure the previous document is kept.
func (s *Studio) Import(ctx context.Context, id uuid.UUID, text string) (*domain.Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Join(ErrInvalidRequest, errors.New("resume text is empty"))
	}
	sess, _, err := s.update(ctx, id, func(sess *domain.Session) (bool, error) {
		start := time.Now()
		raw, err := s.ai.ParseResume(ctx, text)
		s.metrics.ObserveExternalCall("parse", time.Since(start), metrics.Result(err))
		if err != nil {
			return false, err
		}
		return s.replace(sess, raw)
	})
	return sess, err
}

// ImportDocument replaces the document with parser-shaped JSON supplied by
// the caller.
func (s *Studio) ImportDocument(ctx context.Context, id uuid.UUID, raw []byte) (*domain.Session, error) {
	sess, _, err := s.update(ctx, id, func(sess *domain.Session) (bool, error) {
		return s.replace(sess, raw)
	})
	return sess, err
}

func (s *Studio) replace(sess *domain.Session, raw []byte) (bool, error) {
	doc, err := intake.FromParserOutput(raw)
	if err != nil {
		s.logger.Warn("parser output rejected", "session", sess.ID, "error", err)
		return false, err
	}
	sess.Document = doc
	s.metrics.IncCommand(mutation.Replace{}.Op(), metrics.ResultSuccess)
	return true, nil
}

// Apply runs one edit command. Commands that cannot be addressed are not
// errors; they report Changed=false.
func (s *Studio) Apply(ctx context.Context, id uuid.UUID, cmd mutation.Command) (ApplyResult, error) {
	op := mutation.Describe(cmd)
	sess, changed, err := s.update(ctx, id, func(sess *domain.Session) (bool, error) {
		next, changed := mutation.Step(sess.Document, cmd)
		sess.Document = next
		return changed, nil
	})
	if err != nil {
		return ApplyResult{}, err
	}
	result := metrics.ResultSuccess
	if !changed {
		result = metrics.ResultNoop
		s.logger.Debug("command not applied", "session", id, "op", op)
	}
	s.metrics.IncCommand(op, result)
	return ApplyResult{Session: sess, Changed: changed}, nil
}

// Reset discards the document ("start over"). Labels and language stay.
func (s *Studio) Reset(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	res, err := s.Apply(ctx, id, mutation.Reset{})
	return res.Session, err
}

// Generate asks the Content Generator for bullets and merges them into the
// experience entries. With no experience the outcome is nothing_to_merge
// and the session is not touched.
func (s *Studio) Generate(ctx context.Context, id uuid.UUID, req GenerateRequest) (GenerateResult, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return GenerateResult{}, err
	}

	var res merge.Result
	sess, _, err := s.update(ctx, id, func(sess *domain.Session) (bool, error) {
		if len(sess.Document.Experience) == 0 {
			res = merge.Result{Outcome: merge.OutcomeNothingToMerge}
			return false, nil
		}
		language := req.Language
		if language == "" {
			language = sess.Language
		}
		start := time.Now()
		gen, err := s.ai.GenerateContent(ctx, sess.Document, req.Role, req.Skills, language)
		s.metrics.ObserveExternalCall("generate", time.Since(start), metrics.Result(err))
		if err != nil {
			return false, err
		}
		var next model.Document
		next, res = merge.Merge(sess.Document, gen)
		sess.Document = next
		return res.Outcome == merge.OutcomeMerged, nil
	})
	if err != nil {
		return GenerateResult{}, err
	}
	s.metrics.IncMergeOutcome(string(res.Outcome), res.Inserted)
	s.logger.Info("generated content merged", "session", id, "outcome", res.Outcome, "inserted", res.Inserted)
	return GenerateResult{Session: sess, Merge: res}, nil
}

// Translate switches the section headings to language. English clears the
// translation.
func (s *Studio) Translate(ctx context.Context, id uuid.UUID, language string) (*domain.Session, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, errors.Join(ErrInvalidRequest, errors.New("language is required"))
	}
	sess, _, err := s.update(ctx, id, func(sess *domain.Session) (bool, error) {
		sess.Language = language
		if strings.EqualFold(language, "english") {
			sess.Labels = map[string]string{}
			return true, nil
		}
		start := time.Now()
		labels, err := s.ai.TranslateLabels(ctx, language)
		s.metrics.ObserveExternalCall("labels", time.Since(start), metrics.Result(err))
		if err != nil {
			return false, err
		}
		sess.Labels = map[string]string(labels)
		return true, nil
	})
	return sess, err
}

// SetLabels stores caller-supplied headings. Unknown keys are ignored.
func (s *Studio) SetLabels(ctx context.Context, id uuid.UUID, labels map[string]string) (*domain.Session, error) {
	sess, _, err := s.update(ctx, id, func(sess *domain.Session) (bool, error) {
		out := map[string]string{}
		for _, k := range render.DefaultLabels().Keys() {
			if v := strings.TrimSpace(labels[k]); v != "" {
				out[k] = v
			}
		}
		sess.Labels = out
		return true, nil
	})
	return sess, err
}

// RenderLaTeX renders the session document as LaTeX source.
func (s *Studio) RenderLaTeX(ctx context.Context, id uuid.UUID) (Artifact, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Artifact{}, err
	}
	start := time.Now()
	tex, err := render.LaTeX(sess.Document, renderOptions(sess))
	s.metrics.ObserveRenderDuration("tex", time.Since(start), metrics.Result(err))
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		FileName:    render.FileName(sess.Document, ".tex"),
		ContentType: "application/x-tex; charset=utf-8",
		Body:        []byte(tex),
	}, nil
}

// RenderHTML renders the paginated layout as printable HTML.
func (s *Studio) RenderHTML(ctx context.Context, id uuid.UUID) (Artifact, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Artifact{}, err
	}
	start := time.Now()
	page, err := render.Paginate(sess.Document, renderOptions(sess)).HTML()
	s.metrics.ObserveRenderDuration("html", time.Since(start), metrics.Result(err))
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		FileName:    render.FileName(sess.Document, ".html"),
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(page),
	}, nil
}

// RenderPDF prints the paginated layout to PDF, retrying with exponential
// backoff until the renderer returns something with a PDF signature.
func (s *Studio) RenderPDF(ctx context.Context, id uuid.UUID) (Artifact, error) {
	page, err := s.RenderHTML(ctx, id)
	if err != nil {
		return Artifact{}, err
	}

	start := time.Now()
	pdf, err := s.printPDF(ctx, string(page.Body))
	s.metrics.ObserveRenderDuration("pdf", time.Since(start), metrics.Result(err))
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		FileName:    strings.TrimSuffix(page.FileName, ".html") + ".pdf",
		ContentType: "application/pdf",
		Body:        pdf,
	}, nil
}

func (s *Studio) printPDF(ctx context.Context, html string) ([]byte, error) {
	var renderErr error
	for i := 0; i < s.renderAttempts; i++ {
		pdfBytes, err := s.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			// validate basic PDF signature
			if len(pdfBytes) > 0 && strings.HasPrefix(string(pdfBytes), "%PDF") {
				return pdfBytes, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
		}
		renderErr = err
		s.logger.Warn("render attempt failed", "attempt", i+1, "error", err)
		if i < s.renderAttempts-1 {
			s.metrics.IncRenderRetry("pdf")
			select {
			case <-time.After(s.backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrRenderFailed, s.renderAttempts, renderErr)
}

func renderOptions(sess *domain.Session) render.Options {
	return render.Options{Labels: render.Labels(sess.Labels)}
}

// update loads the session under its lock, lets fn edit it and saves it
// with a bumped version when fn reports a change.
func (s *Studio) update(ctx context.Context, id uuid.UUID, fn func(*domain.Session) (bool, error)) (*domain.Session, bool, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	before := sess.Clone()
	changed, err := fn(sess)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return before, false, nil
	}
	sess.Version++
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}
