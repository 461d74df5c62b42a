package postgres

import (
	"context"
	"database/sql"
	"errors"

	"couplesite/internal/model"
	"couplesite/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, content, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, content, created_at
	`
	row := r.db.QueryRowContext(ctx, q, note.ID, note.Content, note.CreatedAt)
	var out model.Note
	if err := row.Scan(&out.ID, &out.Content, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns all notes, newest first.
func (r *NotePostgres) List(ctx context.Context) ([]model.Note, error) {
	const q = `
		SELECT id, content, created_at
		FROM notes
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a note by ID. Unlike a fire-and-forget delete, it reports
// repository.ErrNotFound when no row matched so the API can answer 404.
func (r *NotePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// mapNoRows converts sql.ErrNoRows to the repository sentinel.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
