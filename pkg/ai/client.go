package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"resume-studio/internal/merge"
	"resume-studio/internal/model"
	"resume-studio/internal/render"
	"resume-studio/pkg/ai/formatters"
)

// ErrUnavailable wraps every failure to reach the ai-service or to get a
// usable answer from it.
var ErrUnavailable = errors.New("ai-service unavailable")

// Client calls the ai-service that backs the Resume Parser and the Content
// Generator.
type Client struct {
	BaseURL         string
	HTTP            *http.Client
	DefaultLanguage string
	Attempts        int
	Logger          *slog.Logger

	// backoff defaults to 1s, 2s, 4s...
	backoff func(attempt int) time.Duration
}

func NewClient(baseURL string, timeout time.Duration, language string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL:         strings.TrimSuffix(baseURL, "/"),
		HTTP:            &http.Client{Timeout: timeout},
		DefaultLanguage: language,
		Attempts:        3,
		Logger:          logger,
	}
}

// ParseResume runs the Resume Parser over free text and returns its raw
// JSON output.
func (c *Client) ParseResume(ctx context.Context, text string) ([]byte, error) {
	out, err := formatters.NewParserFormatter(c, model.SchemaJSON(), c.DefaultLanguage).Format(ctx, text)
	if err != nil {
		return nil, c.fail("parse resume", err)
	}
	return out, nil
}

// GenerateContent asks the Content Generator for bullets demonstrating
// skills for role, written in language.
func (c *Client) GenerateContent(ctx context.Context, doc model.Document, role string, skills []string, language string) (merge.Generated, error) {
	if language == "" {
		language = c.DefaultLanguage
	}
	experience := make([]map[string]any, 0, len(doc.Experience))
	for _, p := range doc.Experience {
		var bullets []string
		for _, b := range p.Bullets {
			if b.Enabled {
				bullets = append(bullets, b.Text)
			}
		}
		experience = append(experience, map[string]any{
			"title":        p.Title,
			"organization": p.Organization,
			"bullets":      bullets,
			"technologies": p.Technologies,
		})
	}

	content, err := formatters.NewContentFormatter(c, language).Format(ctx, role, skills, experience)
	if err != nil {
		return merge.Generated{}, c.fail("generate content", err)
	}
	gen := merge.Generated{CoverLetter: content.CoverLetter}
	for _, g := range content.BulletsBySkill {
		gen.BulletsBySkill = append(gen.BulletsBySkill, merge.SkillBullets{Skill: g.Skill, Bullets: g.Bullets})
	}
	return gen, nil
}

// TranslateLabels translates the render headings into language. Keys the
// ai-service leaves out fall back to English when rendering.
func (c *Client) TranslateLabels(ctx context.Context, language string) (render.Labels, error) {
	out, err := formatters.NewLabelsFormatter(c, language).Format(ctx, render.DefaultLabels())
	if err != nil {
		return nil, c.fail("translate labels", err)
	}
	return render.Labels(out), nil
}

func (c *Client) fail(op string, err error) error {
	c.Logger.Warn("ai-service call failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// PostChat implements formatters.Transport.
func (c *Client) PostChat(ctx context.Context, body []byte) ([]byte, error) {
	c.Logger.Debug("ai.client: POST", "url", c.BaseURL+"/v1/chat", "bytes", len(body))

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("ai.client: response", "status", resp.StatusCode, "bytes", len(rb))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}
	return rb, nil
}

// doPostWithRetry performs an HTTP POST to the given path with retry and
// exponential backoff. Transport errors and 5xx responses are retried.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := c.backoff
	if backoff == nil {
		backoff = func(i int) time.Duration { return time.Duration(1<<i) * time.Second }
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("ai-service returned status %d", resp.StatusCode)
		default:
			return resp, nil
		}

		if i < attempts-1 {
			c.Logger.Debug("ai.client: retrying", "attempt", i+1, "error", lastErr)
			select {
			case <-time.After(backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
