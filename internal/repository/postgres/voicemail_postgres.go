package postgres

import (
	"context"
	"database/sql"

	"couplesite/internal/model"
	"couplesite/internal/repository"
)

// VoiceMailPostgres is a PostgreSQL implementation of repository.VoiceMailRepository.
type VoiceMailPostgres struct {
	db *sql.DB
}

// NewVoiceMailPostgres creates a new VoiceMailPostgres repository.
func NewVoiceMailPostgres(db *sql.DB) *VoiceMailPostgres {
	return &VoiceMailPostgres{db: db}
}

var _ repository.VoiceMailRepository = (*VoiceMailPostgres)(nil)

// Create inserts a new voice mail row and returns the stored record.
func (r *VoiceMailPostgres) Create(ctx context.Context, vm *model.VoiceMail) (*model.VoiceMail, error) {
	const q = `
		INSERT INTO voicemails (id, filename, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, filename, size, content_type, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		vm.ID,
		vm.Filename,
		vm.Size,
		vm.ContentType,
		vm.CreatedAt,
	)
	var out model.VoiceMail
	if err := row.Scan(
		&out.ID,
		&out.Filename,
		&out.Size,
		&out.ContentType,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns all voice mail records, newest first.
func (r *VoiceMailPostgres) List(ctx context.Context) ([]model.VoiceMail, error) {
	const q = `
		SELECT id, filename, size, content_type, created_at
		FROM voicemails
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.VoiceMail, 0)
	for rows.Next() {
		var vm model.VoiceMail
		if err := rows.Scan(&vm.ID, &vm.Filename, &vm.Size, &vm.ContentType, &vm.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, vm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single voice mail record by its ID.
func (r *VoiceMailPostgres) FindByID(ctx context.Context, id string) (*model.VoiceMail, error) {
	const q = `
		SELECT id, filename, size, content_type, created_at
		FROM voicemails
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var vm model.VoiceMail
	if err := row.Scan(&vm.ID, &vm.Filename, &vm.Size, &vm.ContentType, &vm.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &vm, nil
}

// Delete removes a voice mail record by ID, reporting repository.ErrNotFound
// when no row matched.
func (r *VoiceMailPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM voicemails WHERE id = $1`
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

// Count returns the number of stored voice mail records.
func (r *VoiceMailPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM voicemails`
	var total int
	if err := r.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Oldest returns the first-inserted record, used by retention eviction.
func (r *VoiceMailPostgres) Oldest(ctx context.Context) (*model.VoiceMail, error) {
	const q = `
		SELECT id, filename, size, content_type, created_at
		FROM voicemails
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, q)
	var vm model.VoiceMail
	if err := row.Scan(&vm.ID, &vm.Filename, &vm.Size, &vm.ContentType, &vm.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &vm, nil
}
