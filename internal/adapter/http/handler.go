package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-studio/internal/domain"
	"resume-studio/internal/model"
	"resume-studio/internal/mutation"
	"resume-studio/internal/usecase"
	"resume-studio/pkg/ai"
)

type Handler struct {
	studio *usecase.Studio
	logger *slog.Logger
}

func NewHandler(s *usecase.Studio, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{studio: s, logger: logger}
}

// Register mounts the session routes on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	s := r.Group("/sessions")
	s.Post("/", h.CreateSession)
	s.Get("/:id", h.GetSession)
	s.Post("/:id/import", h.Import)
	s.Post("/:id/commands", h.Apply)
	s.Post("/:id/generate", h.Generate)
	s.Post("/:id/reset", h.Reset)
	s.Put("/:id/labels", h.SetLabels)
	s.Get("/:id/resume.tex", h.RenderLaTeX)
	s.Get("/:id/resume.html", h.RenderHTML)
	s.Get("/:id/resume.pdf", h.RenderPDF)
}

type createReq struct {
	Language string `json:"language"`
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req createReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid payload")
		}
	}
	sess, err := h.studio.Create(c.UserContext(), req.Language)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	sess, err := h.studio.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

// importReq carries either free text for the Resume Parser or a document
// already in parser shape.
type importReq struct {
	Text     string          `json:"text"`
	Document json.RawMessage `json:"document"`
}

func (h *Handler) Import(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	var req importReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	var sess *domain.Session
	if len(req.Document) > 0 && string(req.Document) != "null" {
		sess, err = h.studio.ImportDocument(c.UserContext(), id, req.Document)
	} else {
		sess, err = h.studio.Import(c.UserContext(), id, req.Text)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) Apply(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	cmd, err := mutation.DecodeCommand(c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.studio.Apply(c.UserContext(), id, cmd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	var req usecase.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	res, err := h.studio.Generate(c.UserContext(), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) Reset(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	sess, err := h.studio.Reset(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

// labelsReq either names a language to translate to or supplies the
// headings directly.
type labelsReq struct {
	Language string            `json:"language"`
	Labels   map[string]string `json:"labels"`
}

func (h *Handler) SetLabels(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	var req labelsReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	var sess *domain.Session
	if req.Labels != nil {
		sess, err = h.studio.SetLabels(c.UserContext(), id, req.Labels)
	} else {
		sess, err = h.studio.Translate(c.UserContext(), id, req.Language)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) RenderLaTeX(c *fiber.Ctx) error {
	return h.download(c, h.studio.RenderLaTeX)
}

func (h *Handler) RenderHTML(c *fiber.Ctx) error {
	return h.download(c, h.studio.RenderHTML)
}

func (h *Handler) RenderPDF(c *fiber.Ctx) error {
	return h.download(c, h.studio.RenderPDF)
}

type renderFunc func(ctx context.Context, id uuid.UUID) (usecase.Artifact, error)

func (h *Handler) download(c *fiber.Ctx, render renderFunc) error {
	id, err := sessionID(c)
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	art, err := render(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, art.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(art.FileName))
	return c.Send(art.Body)
}

func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// fail maps studio errors to statuses. Anything unrecognised is a 500 and
// gets logged.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrVersionConflict):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, mutation.ErrInvalidCommand),
		errors.Is(err, mutation.ErrUnknownCommand):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrSchemaViolation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ai.ErrUnavailable), errors.Is(err, usecase.ErrRenderFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
