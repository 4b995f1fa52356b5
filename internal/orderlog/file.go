package orderlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const DefaultPath = "orders.jsonl"

// File appends one JSON object per line.
type File struct {
	mu sync.Mutex
	f  *os.File
}

func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open order log: %w", err)
	}
	return &File{f: f}, nil
}

func (l *File) Append(_ context.Context, r Record) error {
	line, err := json.Marshal(r)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(line); err != nil {
		return fmt.Errorf("append order %d: %w", r.ID, err)
	}
	return nil
}

func (l *File) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
