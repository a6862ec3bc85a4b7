package file

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	storeDirMode = 0o755
	storeFileMod = 0o644
)

// Store persists run outputs under a root directory. Keys are relative
// slash-separated paths; anything escaping the root is rejected.
type Store struct {
	root string
	main bool
	mu   sync.RWMutex
}

type Option func(*Store)

// WithMainProcess marks whether this process is the main rank. Directory
// creation is skipped on other ranks.
func WithMainProcess(main bool) Option {
	return func(s *Store) {
		s.main = main
	}
}

func NewStore(root string, opts ...Option) *Store {
	store := &Store{root: filepath.Clean(root), main: true}
	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) Root() string {
	return s.root
}

// Path returns the absolute location of key without touching the filesystem.
func (s *Store) Path(key string) (string, error) {
	return s.pathForKey(key)
}

// EnsureDir creates the directory for key on the main process.
func (s *Store) EnsureDir(key string) (string, error) {
	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}
	if !s.main {
		return path, nil
	}

	return path, EnsureDir(path)
}

func (s *Store) DumpGob(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	return s.put(key, buf.Bytes())
}

func (s *Store) LoadGob(ctx context.Context, key string, value any) error {
	data, err := s.get(ctx, key)
	if err != nil {
		return err
	}

	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(value); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}

	return nil
}

func (s *Store) DumpTOML(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	return s.put(key, data)
}

func (s *Store) LoadTOML(ctx context.Context, key string, value any) error {
	data, err := s.get(ctx, key)
	if err != nil {
		return err
	}

	if err := toml.Unmarshal(data, value); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}

	return nil
}

func (s *Store) put(key string, data []byte) error {
	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := WriteAtomic(path, data, storeFileMod); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}

	return nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("output %q not found: %w", key, err)
		}
		return nil, fmt.Errorf("read output %q: %w", key, err)
	}

	return data, nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("output key is empty")
	}

	cleaned := filepath.Clean(filepath.FromSlash(trimmed))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || cleaned == "." {
		return "", fmt.Errorf("invalid output key %q", key)
	}

	return filepath.Join(s.root, cleaned), nil
}
