// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, file, memory) and are
// interchangeable; callers never branch on the backend.
package repository

import (
	"context"
	"errors"

	"couplesite/internal/model"
)

// ErrNotFound is returned when no record matches the given id.
var ErrNotFound = errors.New("record not found")

// NoteRepository defines persistence for notes. No business logic here.
type NoteRepository interface {
	// Create inserts a new note record. The caller provides ID and CreatedAt.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// List returns all notes, newest first.
	List(ctx context.Context) ([]model.Note, error)

	// Delete removes a note by ID. Returns ErrNotFound if no record matched.
	Delete(ctx context.Context, id string) error
}

// VoiceMailRepository defines persistence for voice mail metadata records.
// The binary payload itself is owned by the blob store, never by this layer.
type VoiceMailRepository interface {
	// Create inserts a new voice mail record. The caller provides ID and CreatedAt.
	Create(ctx context.Context, vm *model.VoiceMail) (*model.VoiceMail, error)

	// List returns all voice mail records, newest first.
	List(ctx context.Context) ([]model.VoiceMail, error)

	// FindByID returns a voice mail record by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.VoiceMail, error)

	// Delete removes a voice mail record by ID. Returns ErrNotFound if no
	// record matched.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored voice mail records.
	Count(ctx context.Context) (int, error)

	// Oldest returns the record that was inserted first, or ErrNotFound when
	// the store is empty. Insertion order is the sole ordering key.
	Oldest(ctx context.Context) (*model.VoiceMail, error)
}
