package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// fsStorage implements BlobStorage on the local filesystem. Blobs live under
// root, which the HTTP layer serves statically at publicPath, so Resolve can
// return a plain relative URL.
type fsStorage struct {
	root       string
	publicPath string
}

// NewFilesystem creates a local-disk blob store rooted at dir, served at
// publicPath (e.g. /public/uploads). The directory is created if missing.
func NewFilesystem(dir, publicPath string) (BlobStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &fsStorage{root: dir, publicPath: publicPath}, nil
}

// blobPath maps a key to a path under root. Keys are generated filenames;
// Base strips any separator so a crafted key cannot escape the directory.
func (f *fsStorage) blobPath(key string) string {
	return filepath.Join(f.root, filepath.Base(key))
}

func (f *fsStorage) Put(_ context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	dst := f.blobPath(key)
	tmp, err := os.CreateTemp(f.root, ".upload-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return ObjectInfo{}, fmt.Errorf("place blob: %w", err)
	}

	st, err := os.Stat(dst)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat blob: %w", err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: st.ModTime(),
	}, nil
}

func (f *fsStorage) Get(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	p := f.blobPath(key)
	fh, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, ObjectInfo{}, ErrNotFound
	}
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, ObjectInfo{}, err
	}
	return fh, ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

func (f *fsStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(f.blobPath(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Resolve returns the static path the uploads directory is served from.
func (f *fsStorage) Resolve(_ context.Context, key string) (string, error) {
	return path.Join(f.publicPath, filepath.Base(key)), nil
}
