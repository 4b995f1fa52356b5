// Package orderlog is the append-only record of placed orders. Backends are
// selected by name: file, postgres, kafka or memory.
package orderlog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

type Record struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	PlacedAt  time.Time `json:"placed_at"`
}

type Log interface {
	Append(ctx context.Context, r Record) error
	Close() error
}

type Options struct {
	Kind         string
	Path         string
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string
}

// Open builds the backend named by o.Kind. An empty kind means file.
func Open(ctx context.Context, o Options) (Log, error) {
	switch strings.ToLower(o.Kind) {
	case "", "file":
		path := o.Path
		if path == "" {
			path = DefaultPath
		}
		return OpenFile(path)
	case "postgres":
		pool, err := Connect(ctx, o.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("orderlog postgres: %w", err)
		}
		return NewPostgres(ctx, pool)
	case "kafka":
		if len(o.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("orderlog kafka: no brokers configured")
		}
		return NewKafka(o.KafkaBrokers, o.KafkaTopic), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("orderlog: unknown backend %q", o.Kind)
	}
}

type Memory struct {
	mu   sync.Mutex
	recs []Record
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Append(_ context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, r)
	return nil
}

func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.recs...)
}

func (m *Memory) Close() error { return nil }
