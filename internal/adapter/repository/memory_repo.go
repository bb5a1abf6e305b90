package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"resume-studio/internal/domain"
)

// MemoryRepo keeps sessions in process memory. It is used when no database
// is configured and in tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sessions: map[uuid.UUID]*domain.Session{}}
}

func (r *MemoryRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return fmt.Errorf("%w: %s already exists", domain.ErrVersionConflict, s.ID)
	}
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s.Clone(), nil
}

func (r *MemoryRepo) Save(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.sessions[s.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, s.ID)
	}
	if cur.Version != s.Version-1 {
		return fmt.Errorf("%w: %s", domain.ErrVersionConflict, s.ID)
	}
	r.sessions[s.ID] = s.Clone()
	return nil
}
