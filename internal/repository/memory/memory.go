// Package memory implements the repositories on in-process slices. Contents
// are reset on process restart; this backend exists for the object-storage
// deployment (where the bucket is the only durable state) and for tests.
package memory

import (
	"context"
	"sync"

	"couplesite/internal/model"
	"couplesite/internal/repository"
)

// NoteMemory is an in-memory implementation of repository.NoteRepository.
type NoteMemory struct {
	mu    sync.Mutex
	notes []model.Note
}

// NewNoteMemory creates an empty in-memory note repository.
func NewNoteMemory() *NoteMemory { return &NoteMemory{} }

var _ repository.NoteRepository = (*NoteMemory)(nil)

func (r *NoteMemory) Create(_ context.Context, note *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, *note)
	out := *note
	return &out, nil
}

func (r *NoteMemory) List(_ context.Context) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]model.Note, 0, len(r.notes))
	for i := len(r.notes) - 1; i >= 0; i-- {
		items = append(items, r.notes[i])
	}
	return items, nil
}

func (r *NoteMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notes {
		if n.ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// VoiceMailMemory is an in-memory implementation of repository.VoiceMailRepository.
type VoiceMailMemory struct {
	mu  sync.Mutex
	vms []model.VoiceMail
}

// NewVoiceMailMemory creates an empty in-memory voice mail repository.
func NewVoiceMailMemory() *VoiceMailMemory { return &VoiceMailMemory{} }

var _ repository.VoiceMailRepository = (*VoiceMailMemory)(nil)

func (r *VoiceMailMemory) Create(_ context.Context, vm *model.VoiceMail) (*model.VoiceMail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *vm
	stored.URL = ""
	r.vms = append(r.vms, stored)
	return &stored, nil
}

func (r *VoiceMailMemory) List(_ context.Context) ([]model.VoiceMail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]model.VoiceMail, 0, len(r.vms))
	for i := len(r.vms) - 1; i >= 0; i-- {
		items = append(items, r.vms[i])
	}
	return items, nil
}

func (r *VoiceMailMemory) FindByID(_ context.Context, id string) (*model.VoiceMail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, vm := range r.vms {
		if vm.ID == id {
			out := vm
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *VoiceMailMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, vm := range r.vms {
		if vm.ID == id {
			r.vms = append(r.vms[:i], r.vms[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *VoiceMailMemory) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.vms), nil
}

func (r *VoiceMailMemory) Oldest(_ context.Context) (*model.VoiceMail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.vms) == 0 {
		return nil, repository.ErrNotFound
	}
	out := r.vms[0]
	return &out, nil
}
