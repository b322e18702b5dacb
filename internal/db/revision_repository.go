package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Revision is one saved version of a document.
type Revision struct {
	ID          int64
	Kind        string // "items", "skills", "fixedskills", "skilltrees"
	Content     []byte
	Definitions int // number of top-level definitions in Content
	CreatedAt   time.Time
}

// RevisionRepository хранит историю сохранённых документов в PostgreSQL.
type RevisionRepository struct {
	pool *pgxpool.Pool
}

// NewRevisionRepository создаёт новый RevisionRepository.
func NewRevisionRepository(pool *pgxpool.Pool) *RevisionRepository {
	return &RevisionRepository{pool: pool}
}

// SaveRevision inserts a new revision and returns its id.
func (r *RevisionRepository) SaveRevision(ctx context.Context, kind string, content []byte, definitions int) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO document_revisions (kind, content, definitions)
		 VALUES ($1, $2, $3) RETURNING id`,
		kind, content, definitions,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting %s revision: %w", kind, err)
	}
	return id, nil
}

// GetRevision returns a revision by id.
// Returns nil, nil if the revision does not exist.
func (r *RevisionRepository) GetRevision(ctx context.Context, id int64) (*Revision, error) {
	var rev Revision
	err := r.pool.QueryRow(ctx,
		`SELECT id, kind, content, definitions, created_at
		 FROM document_revisions WHERE id = $1`, id,
	).Scan(&rev.ID, &rev.Kind, &rev.Content, &rev.Definitions, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying revision %d: %w", id, err)
	}
	return &rev, nil
}

// ListRevisions returns the newest revisions of a kind, newest first.
// Content is not loaded.
func (r *RevisionRepository) ListRevisions(ctx context.Context, kind string, limit int) ([]Revision, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, definitions, created_at
		 FROM document_revisions
		 WHERE kind = $1
		 ORDER BY id DESC
		 LIMIT $2`, kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying %s revisions: %w", kind, err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.Kind, &rev.Definitions, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning revision row: %w", err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revision rows: %w", err)
	}
	return revs, nil
}
