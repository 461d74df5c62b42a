package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"couplesite/internal/model"
	"couplesite/internal/repository"
	"couplesite/internal/storage"
)

var (
	ErrReaderNil = errors.New("reader is nil")
	ErrNotAudio  = errors.New("only audio uploads are allowed")
	ErrTooLarge  = errors.New("upload exceeds the size ceiling")
)

// VoiceMailService defines the use cases for voice mail recordings.
type VoiceMailService interface {
	// Ingest validates the upload, stores the audio blob, saves the metadata
	// record (rolling back the blob if that fails), and applies the retention
	// policy. originalFilename is used only to extract the extension.
	Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.VoiceMail, error)

	// List returns all voice mails, newest first, with playback URLs resolved
	// from the active blob backend.
	List(ctx context.Context) ([]model.VoiceMail, error)

	// Delete removes a voice mail's blob and its metadata record.
	Delete(ctx context.Context, id string) error
}

// voiceMailService is a concrete implementation of VoiceMailService.
type voiceMailService struct {
	store    storage.BlobStorage
	repo     repository.VoiceMailRepository
	maxBytes int64
	limit    int
}

// NewVoiceMailService constructs a new VoiceMailService. maxBytes is the
// upload ceiling; limit is the retention cap on stored recordings.
func NewVoiceMailService(store storage.BlobStorage, repo repository.VoiceMailRepository, maxBytes int64, limit int) VoiceMailService {
	return &voiceMailService{store: store, repo: repo, maxBytes: maxBytes, limit: limit}
}

func (s *voiceMailService) Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.VoiceMail, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, ErrNotAudio
	}
	if size <= 0 || size > s.maxBytes {
		return nil, ErrTooLarge
	}

	// Evict before inserting so the store never holds more than limit records.
	if err := s.applyRetention(ctx); err != nil {
		return nil, fmt.Errorf("apply retention: %w", err)
	}

	// Generate key from wall clock plus UUID. Recordings default to .webm,
	// which is what the browser recorder produces.
	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".webm"
	}
	key := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	vm := &model.VoiceMail{
		ID:          uuid.New().String(),
		Filename:    key,
		Size:        objInfo.Size,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, vm)
	if err != nil {
		// Rollback: a metadata record must never reference a missing blob,
		// and a blob without a record is unreachable. Delete it.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("metadata save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("metadata save failed: %w", err)
	}

	stored.URL, err = s.store.Resolve(ctx, stored.Filename)
	if err != nil {
		return nil, fmt.Errorf("resolve playback url: %w", err)
	}
	return stored, nil
}

// applyRetention evicts oldest records until the store has room for one more.
// A failed blob delete is logged and the metadata record is dropped anyway:
// a possible orphan blob is preferred over a blocked upload.
func (s *voiceMailService) applyRetention(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	for count >= s.limit {
		oldest, err := s.repo.Oldest(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := s.store.Delete(ctx, oldest.Filename); err != nil && !errors.Is(err, storage.ErrNotFound) {
			logEvictionOrphan(oldest.Filename, err)
		}
		if err := s.repo.Delete(ctx, oldest.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		count--
	}
	return nil
}

func (s *voiceMailService) List(ctx context.Context) ([]model.VoiceMail, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		u, err := s.store.Resolve(ctx, items[i].Filename)
		if err != nil {
			return nil, fmt.Errorf("resolve playback url: %w", err)
		}
		items[i].URL = u
	}
	return items, nil
}

// Delete removes the blob first, then the metadata record, so a dangling
// reference can never appear in a listing.
func (s *voiceMailService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	vm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	// A blob already gone is fine; the record is what the user sees.
	if err := s.store.Delete(ctx, vm.Filename); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func logEvictionOrphan(key string, err error) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": "error",
		"msg":   "retention_blob_delete_failed",
		"key":   key,
		"error": err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
