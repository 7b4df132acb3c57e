// Package store persists scenario documents. The engine never touches the
// store: callers load a document, hand the snapshot to forecast.Assemble and
// save edited snapshots back.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/school-forecast/internal/scenario"
)

// ErrNotFound is returned when no scenario has the requested id.
var ErrNotFound = errors.New("scenario not found")

// Record is one stored scenario.
type Record struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Document  scenario.Document `json:"scenario"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store is the scenario persistence collaborator.
type Store interface {
	// Create saves doc under a new id.
	Create(ctx context.Context, doc scenario.Document) (Record, error)
	// Get returns the scenario with id, normalized to the current schema.
	Get(ctx context.Context, id string) (Record, error)
	// List returns every scenario ordered by name, then id.
	List(ctx context.Context) ([]Record, error)
	// Update replaces the document stored under id.
	Update(ctx context.Context, id string, doc scenario.Document) (Record, error)
	// Delete removes the scenario with id.
	Delete(ctx context.Context, id string) error
	Close() error
}

func newID() string {
	return uuid.NewString()
}

// ParseID returns the canonical form of a scenario id, or ErrNotFound when
// the value cannot be an id at all.
func ParseID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", ErrNotFound
	}
	return parsed.String(), nil
}

func displayName(doc scenario.Document) string {
	if name := strings.TrimSpace(doc.Name); name != "" {
		return name
	}
	return "(unnamed)"
}
