package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileSink stores rendered receipts and statements as numbered text files
// under a single directory. It implements repository.ReceiptSink.
type FileSink struct {
	dir  string
	mu   sync.Mutex
	next int
}

// NewFileSink creates the directory if needed and resumes numbering after
// the highest existing file.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipt directory: %w", err)
	}

	next := 1
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt directory: %w", err)
	}
	for _, e := range entries {
		var n int
		if _, err := fmt.Sscanf(e.Name(), "check_%d.txt", &n); err == nil && n >= next {
			next = n + 1
		}
	}

	return &FileSink{dir: dir, next: next}, nil
}

// Store writes the text to the next numbered file and returns its path.
func (s *FileSink) Store(_ context.Context, text string) (string, error) {
	s.mu.Lock()
	n := s.next
	s.next++
	s.mu.Unlock()

	location := filepath.Join(s.dir, fmt.Sprintf("check_%d.txt", n))
	if err := os.WriteFile(location, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}

	return location, nil
}
