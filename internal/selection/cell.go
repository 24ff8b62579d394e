// Package selection remembers which pipeline the user last viewed.
package selection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Cell is a minimal key/value capability. Implementations must be safe for
// concurrent use.
type Cell interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryCell is an in-process Cell, used in tests and as a fallback when no
// state directory is writable.
type MemoryCell struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryCell creates an empty MemoryCell
func NewMemoryCell() *MemoryCell {
	return &MemoryCell{values: map[string]string{}}
}

// Get implements Cell
func (c *MemoryCell) Get(key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

// Set implements Cell
func (c *MemoryCell) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// FileCell stores key/value pairs in a small YAML file. Every Set rewrites
// the file through a temp file and rename.
type FileCell struct {
	mu   sync.Mutex
	path string
}

// NewFileCell creates a FileCell backed by path. The file is created on the
// first Set.
func NewFileCell(path string) *FileCell {
	return &FileCell{path: path}
}

// Path returns the backing file path
func (c *FileCell) Path() string {
	return c.path
}

// Get implements Cell
func (c *FileCell) Get(key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	values, err := c.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements Cell
func (c *FileCell) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	values, err := c.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace state: %w", err)
	}
	return nil
}

func (c *FileCell) read() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", c.path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}
