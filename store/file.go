package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall"
	"github.com/spf13/afero"
)

// ReviewItemsKey is the document key under which File stores the collection.
const ReviewItemsKey = "reviewItems"

// File stores the collection in a JSON document on an afero filesystem.
// Other top-level keys of the document are preserved across saves.
type File struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewFile returns a File store for path on fs.
func NewFile(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

// NewOSFile returns a File store backed by the operating system filesystem.
func NewOSFile(path string) *File {
	return NewFile(afero.NewOsFs(), filepath.Clean(path))
}

// Path returns the document path.
func (f *File) Path() string {
	return f.path
}

// GetReviewItems decodes the collection stored under ReviewItemsKey. A missing
// document or key yields an empty collection.
func (f *File) GetReviewItems(ctx context.Context) ([]recall.ReviewRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readDoc()
	if err != nil {
		return nil, err
	}
	raw, ok := doc[ReviewItemsKey]
	if !ok || string(raw) == "null" {
		return []recall.ReviewRecord{}, nil
	}

	var items []recall.ReviewRecord
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, goerr.Wrap(err, "failed to decode review items", goerr.V("path", f.path))
	}
	return items, nil
}

// SaveReviewItems rewrites the document with items under ReviewItemsKey,
// keeping every other top-level key.
func (f *File) SaveReviewItems(ctx context.Context, items []recall.ReviewRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readDoc()
	if err != nil {
		return err
	}
	if items == nil {
		items = []recall.ReviewRecord{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return goerr.Wrap(err, "failed to encode review items")
	}
	doc[ReviewItemsKey] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode document", goerr.V("path", f.path))
	}
	return f.writeAtomic(data)
}

// readDoc loads the document; a missing, empty or null file is an empty document.
func (f *File) readDoc() (map[string]json.RawMessage, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read review document", goerr.V("path", f.path))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode review document", goerr.V("path", f.path))
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}

// writeAtomic writes data next to the document and renames it into place.
func (f *File) writeAtomic(data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dir))
		}
	}

	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write review document", goerr.V("path", tmp))
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return goerr.Wrap(err, "failed to replace review document", goerr.V("path", f.path))
	}
	return nil
}
