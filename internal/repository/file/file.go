// Package file implements the repositories on top of a single flat JSON file.
// Every operation is a read-modify-write of the whole document, serialized
// under one mutex so concurrent writers cannot lose updates. Writes go to a
// temp file first and are moved into place with os.Rename.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"couplesite/internal/model"
	"couplesite/internal/repository"
)

// document is the on-disk shape. Records are kept in insertion order; List
// reverses to newest first.
type document struct {
	Notes      []model.Note      `json:"notes"`
	VoiceMails []model.VoiceMail `json:"voicemails"`
}

// Store owns the data file and the write lock shared by both repositories.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore opens (or creates) the data file at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("data file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(&document{}); err != nil {
			return nil, fmt.Errorf("initialize data file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	return s, nil
}

// Notes returns the note repository view of the store.
func (s *Store) Notes() *NoteFile { return &NoteFile{store: s} }

// VoiceMails returns the voice mail repository view of the store.
func (s *Store) VoiceMails() *VoiceMailFile { return &VoiceMailFile{store: s} }

// load reads and decodes the whole document. Callers must hold mu.
func (s *Store) load() (*document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}
	return &doc, nil
}

// save encodes and atomically replaces the document. Callers must hold mu.
func (s *Store) save(doc *document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// NoteFile is the flat-file implementation of repository.NoteRepository.
type NoteFile struct {
	store *Store
}

var _ repository.NoteRepository = (*NoteFile)(nil)

func (r *NoteFile) Create(_ context.Context, note *model.Note) (*model.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	doc.Notes = append(doc.Notes, *note)
	if err := r.store.save(doc); err != nil {
		return nil, err
	}
	out := *note
	return &out, nil
}

func (r *NoteFile) List(_ context.Context) ([]model.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	items := make([]model.Note, 0, len(doc.Notes))
	for i := len(doc.Notes) - 1; i >= 0; i-- {
		items = append(items, doc.Notes[i])
	}
	return items, nil
}

func (r *NoteFile) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	for i, n := range doc.Notes {
		if n.ID == id {
			doc.Notes = append(doc.Notes[:i], doc.Notes[i+1:]...)
			return r.store.save(doc)
		}
	}
	return repository.ErrNotFound
}

// VoiceMailFile is the flat-file implementation of repository.VoiceMailRepository.
type VoiceMailFile struct {
	store *Store
}

var _ repository.VoiceMailRepository = (*VoiceMailFile)(nil)

func (r *VoiceMailFile) Create(_ context.Context, vm *model.VoiceMail) (*model.VoiceMail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	stored := *vm
	stored.URL = "" // resolved at read time, never persisted
	doc.VoiceMails = append(doc.VoiceMails, stored)
	if err := r.store.save(doc); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *VoiceMailFile) List(_ context.Context) ([]model.VoiceMail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	items := make([]model.VoiceMail, 0, len(doc.VoiceMails))
	for i := len(doc.VoiceMails) - 1; i >= 0; i-- {
		items = append(items, doc.VoiceMails[i])
	}
	return items, nil
}

func (r *VoiceMailFile) FindByID(_ context.Context, id string) (*model.VoiceMail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	for _, vm := range doc.VoiceMails {
		if vm.ID == id {
			out := vm
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *VoiceMailFile) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	for i, vm := range doc.VoiceMails {
		if vm.ID == id {
			doc.VoiceMails = append(doc.VoiceMails[:i], doc.VoiceMails[i+1:]...)
			return r.store.save(doc)
		}
	}
	return repository.ErrNotFound
}

func (r *VoiceMailFile) Count(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return 0, err
	}
	return len(doc.VoiceMails), nil
}

func (r *VoiceMailFile) Oldest(_ context.Context) (*model.VoiceMail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	if len(doc.VoiceMails) == 0 {
		return nil, repository.ErrNotFound
	}
	out := doc.VoiceMails[0]
	return &out, nil
}
