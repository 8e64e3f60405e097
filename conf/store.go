package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/cfwatch/srvcerror"
)

// Store is the tool-scoped global key/value configuration.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

const KeyHandle = "handle"

const ErrCodeConfigIO = "config_io"

func newErrConfigIO(cause error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeConfigIO,
		"failed to access configuration",
	).SetDebug(cause).SetHttpStatusCode(http.StatusInternalServerError)
}

// FileStore keeps values in a flat TOML table. Every Set rewrites the
// whole file so that other processes see the value immediately.
type FileStore struct {
	path string
	mu   sync.Mutex
}

const configFileName = "config.toml"

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, configFileName)}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) load() (map[string]string, error) {
	values := map[string]string{}
	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, newErrConfigIO(fmt.Errorf("read %s: %w", s.path, err))
	}
	if err := toml.Unmarshal(content, &values); err != nil {
		return nil, newErrConfigIO(fmt.Errorf("parse %s: %w", s.path, err))
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	content, err := toml.Marshal(values)
	if err != nil {
		return newErrConfigIO(fmt.Errorf("encode config: %w", err))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newErrConfigIO(fmt.Errorf("create %s: %w", dir, err))
	}

	tmp, err := os.CreateTemp(dir, configFileName+".*")
	if err != nil {
		return newErrConfigIO(fmt.Errorf("create temp file: %w", err))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return newErrConfigIO(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return newErrConfigIO(fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return newErrConfigIO(fmt.Errorf("replace %s: %w", s.path, err))
	}
	return nil
}

// MemStore is a process-local Store, used when nothing should touch disk.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

func (s *MemStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
