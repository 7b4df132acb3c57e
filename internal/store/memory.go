package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iwvelando/school-forecast/internal/scenario"
)

// Memory is an in-memory Store for tests and for running the server without
// a database.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

// Create saves doc under a new id.
func (m *Memory) Create(_ context.Context, doc scenario.Document) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	rec := Record{ID: newID(), Name: displayName(doc), Document: doc.Clone(), CreatedAt: now, UpdatedAt: now}
	m.records[rec.ID] = rec
	return copyRecord(rec), nil
}

// Get returns the scenario with id.
func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return copyRecord(rec), nil
}

// List returns every stored scenario ordered by name, then id.
func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, copyRecord(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// Update replaces the document stored under id.
func (m *Memory) Update(_ context.Context, id string, doc scenario.Document) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.Name = displayName(doc)
	rec.Document = doc.Clone()
	rec.UpdatedAt = time.Now().UTC()
	m.records[id] = rec
	return copyRecord(rec), nil
}

// Delete removes the scenario with id.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

func copyRecord(rec Record) Record {
	rec.Document = rec.Document.Clone()
	return rec
}
