// memory.go
package tokencache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"
)

const (
	memoryTable = "tokens"
	memoryKey   = "current"
)

type memoryRecord struct {
	ID        string
	Value     string
	ExpiresAt time.Time
}

// Memory is a process-local TokenCache backed by go-memdb. It is safe for concurrent use.
type Memory struct {
	db  *memdb.MemDB
	now Clock
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithMemoryClock overrides the clock used for expiry checks.
func WithMemoryClock(now Clock) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty in-memory token store.
func NewMemory(opts ...MemoryOption) (*Memory, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memoryTable: {
				Name: memoryTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("creating in-memory token store: %w", err)
	}

	m := &Memory{db: db, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// GetToken returns the stored token if it has not expired.
func (m *Memory) GetToken(_ context.Context) (*Token, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memoryTable, "id", memoryKey)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	rec := raw.(*memoryRecord)
	return FilterValid(&Token{Value: rec.Value, ExpiresAt: rec.ExpiresAt}, m.now()), nil
}

// StoreToken replaces the stored token.
func (m *Memory) StoreToken(_ context.Context, value string, expiresAt time.Time) error {
	txn := m.db.Txn(true)
	if err := txn.Insert(memoryTable, &memoryRecord{ID: memoryKey, Value: value, ExpiresAt: expiresAt}); err != nil {
		txn.Abort()
		return fmt.Errorf("storing token: %w", err)
	}
	txn.Commit()
	return nil
}
