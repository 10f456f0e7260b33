package sequence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

type fileState struct {
	Next int `json:"next"`
}

// FileCounter stores the next remito number in a small JSON file, the
// single-clerk deployment default. The mutex keeps read-increment-persist a
// single uninterrupted step.
type FileCounter struct {
	mu   sync.Mutex
	path string
	next int
}

func NewFileCounter(path string) (*FileCounter, error) {
	c := &FileCounter{path: path, next: 1}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sequence: failed to read counter file: %w", err)
	}

	var state fileState
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("sequence: failed to parse counter file: %w", err)
	}
	if state.Next > 0 {
		c.next = state.Next
	}
	return c, nil
}

// Peek returns the number the next commit would receive without advancing
// anything. Never trust it as a final number.
func (c *FileCounter) Peek(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next, nil
}

// TakeNext consumes and returns the current number. The incremented value is
// persisted before the taken number is handed out, so a crash cannot reissue it.
func (c *FileCounter) TakeNext(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.next
	if err := c.write(n + 1); err != nil {
		return 0, err
	}
	c.next = n + 1
	return n, nil
}

func (c *FileCounter) write(next int) error {
	b, err := json.Marshal(fileState{Next: next})
	if err != nil {
		return fmt.Errorf("sequence: failed to encode counter state: %w", err)
	}

	// Write-then-rename so a crash mid-write leaves the old state intact.
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("sequence: failed to write counter file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("sequence: failed to replace counter file: %w", err)
	}
	return nil
}
