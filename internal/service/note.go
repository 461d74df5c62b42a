package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"couplesite/internal/model"
	"couplesite/internal/repository"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrContentRequired = errors.New("content is required")
	ErrNotFound        = errors.New("record not found")
)

// NoteService defines the use cases for shared notes.
type NoteService interface {
	// Create validates and stores a new note. Whitespace-only content is
	// rejected before any store call.
	Create(ctx context.Context, content string) (*model.Note, error)

	// List returns all notes, newest first.
	List(ctx context.Context) ([]model.Note, error)

	// Delete removes a note by ID.
	Delete(ctx context.Context, id string) error
}

// noteService is a concrete implementation of NoteService.
type noteService struct {
	repo repository.NoteRepository
}

// NewNoteService constructs a new NoteService.
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) Create(ctx context.Context, content string) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	note := &model.Note{
		ID:        uuid.New().String(),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, note)
}

func (s *noteService) List(ctx context.Context) ([]model.Note, error) {
	return s.repo.List(ctx)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
