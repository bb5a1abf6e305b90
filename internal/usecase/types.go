package usecase

import (
	"errors"
	"strings"

	"resume-studio/internal/domain"
	"resume-studio/internal/merge"
)

var (
	// ErrInvalidRequest marks input the studio refuses before doing any work.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRenderFailed is returned when the PDF renderer never produced a
	// valid document.
	ErrRenderFailed = errors.New("render failed")
)

// GenerateRequest asks the Content Generator for bullets targeting Role.
type GenerateRequest struct {
	Role     string   `json:"role"`
	Skills   []string `json:"skills"`
	Language string   `json:"language,omitempty"`
}

// Normalize trims the request and drops blank or repeated skills, keeping
// the first spelling of each.
func (r GenerateRequest) Normalize() GenerateRequest {
	out := GenerateRequest{Role: strings.TrimSpace(r.Role), Language: strings.TrimSpace(r.Language)}
	seen := map[string]bool{}
	for _, s := range r.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Skills = append(out.Skills, s)
	}
	return out
}

func (r GenerateRequest) Validate() error {
	if r.Role == "" {
		return errors.Join(ErrInvalidRequest, errors.New("role is required"))
	}
	if len(r.Skills) == 0 {
		return errors.Join(ErrInvalidRequest, errors.New("at least one skill is required"))
	}
	return nil
}

// ApplyResult reports whether a command changed the document. Commands
// that cannot be addressed leave the session untouched.
type ApplyResult struct {
	Session *domain.Session `json:"session"`
	Changed bool            `json:"changed"`
}

// GenerateResult carries the merge outcome so callers can tell "nothing to
// merge" apart from success.
type GenerateResult struct {
	Session *domain.Session `json:"session"`
	Merge   merge.Result    `json:"merge"`
}

// Artifact is one rendered output ready for download.
type Artifact struct {
	FileName    string
	ContentType string
	Body        []byte
}
