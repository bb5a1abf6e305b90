package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrVersionConflict is returned when a session was saved by someone
	// else since it was read.
	ErrVersionConflict = errors.New("session version conflict")
)

// Session owns one document. Every successful change replaces Document
// wholesale and bumps Version.
type Session struct {
	ID       uuid.UUID      `json:"id"`
	Document model.Document `json:"document"`
	Language string         `json:"language"`
	// Labels holds translated section headings; empty means English.
	Labels    map[string]string `json:"labels"`
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewSession(language string, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		Document:  model.New(),
		Language:  language,
		Labels:    map[string]string{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy that shares nothing with s.
func (s *Session) Clone() *Session {
	out := *s
	out.Document = s.Document.Clone()
	out.Labels = make(map[string]string, len(s.Labels))
	for k, v := range s.Labels {
		out.Labels[k] = v
	}
	return &out
}
