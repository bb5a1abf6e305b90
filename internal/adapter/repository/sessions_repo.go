package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-studio/internal/domain"
)

// SessionsRepo stores sessions in the resume_sessions table.
type SessionsRepo struct {
	pool *pgxpool.Pool
}

func NewSessionsRepo(pool *pgxpool.Pool) *SessionsRepo {
	return &SessionsRepo{pool: pool}
}

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into out.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, out any, sql string, args ...any) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (r *SessionsRepo) Create(ctx context.Context, s *domain.Session) error {
	docB, labelsB, err := encode(s)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO resume_sessions (id, document, language, labels, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, docB, s.Language, labelsB, s.Version, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", s.ID, err)
	}
	return nil
}

func (r *SessionsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var s domain.Session
	err := queryJSON(ctx, r.pool, &s, `SELECT jsonb_build_object(
			'id', id, 'document', document, 'language', language, 'labels', labels,
			'version', version, 'created_at', created_at, 'updated_at', updated_at)
		FROM resume_sessions WHERE id=$1`, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if s.Labels == nil {
		s.Labels = map[string]string{}
	}
	return &s, nil
}

// Save writes s if the stored row is still at s.Version-1.
func (r *SessionsRepo) Save(ctx context.Context, s *domain.Session) error {
	docB, labelsB, err := encode(s)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE resume_sessions
		SET document = $2, language = $3, labels = $4, version = $5, updated_at = $6
		WHERE id = $1 AND version = $5 - 1`,
		s.ID, docB, s.Language, labelsB, s.Version, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update session %s: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrVersionConflict, s.ID)
	}
	return nil
}

func encode(s *domain.Session) (doc, labels []byte, err error) {
	if doc, err = json.Marshal(s.Document); err != nil {
		return nil, nil, fmt.Errorf("encode document: %w", err)
	}
	if labels, err = json.Marshal(s.Labels); err != nil {
		return nil, nil, fmt.Errorf("encode labels: %w", err)
	}
	return doc, labels, nil
}
