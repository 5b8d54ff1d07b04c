package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var _ DocumentStore = (*FileStore)(nil)

// JSONOptions controls how documents are written. Decoding always ignores
// unknown fields.
type JSONOptions struct {
	Indent     string
	EscapeHTML bool
}

// DefaultJSONOptions writes pretty-printed documents.
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{Indent: "  "}
}

// FileStore keeps one <key>.json file per document in a directory.
type FileStore struct {
	dir  string
	opts JSONOptions
	mu   sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on
// the first save.
func NewFileStore(dir string, opts JSONOptions) *FileStore {
	return &FileStore{dir: dir, opts: opts}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Save writes the document to a temporary file and renames it over the
// previous one, so a crash never leaves a truncated document behind.
func (s *FileStore) Save(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", s.opts.Indent)
	enc.SetEscapeHTML(s.opts.EscapeHTML)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	log.Debug("Saved document", "key", key, "bytes", buf.Len())
	return nil
}
