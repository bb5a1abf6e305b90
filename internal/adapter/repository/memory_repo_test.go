package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/domain"
)

func TestMemoryRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	s := domain.NewSession("English", time.Now())
	require.NoError(t, r.Create(ctx, s))

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	got.Document.Summary = "changed"
	again, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Document.Summary, "stored copy must not alias")
}

func TestMemoryRepo_SaveChecksVersion(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	s := domain.NewSession("English", time.Now())
	require.NoError(t, r.Create(ctx, s))

	next := s.Clone()
	next.Version++
	next.Document.Summary = "v2"
	require.NoError(t, r.Save(ctx, next))

	stale := s.Clone()
	stale.Version++
	assert.ErrorIs(t, r.Save(ctx, stale), domain.ErrVersionConflict)

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Document.Summary)
}

func TestMemoryRepo_NotFound(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, r.Save(context.Background(), domain.NewSession("", time.Now())), domain.ErrSessionNotFound)
}
