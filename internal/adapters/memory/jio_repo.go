// Package memory contains in-process implementations of repository interfaces.
// State lives for the lifetime of the process only.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/example/jiobot/internal/core/jio"
	"github.com/example/jiobot/internal/ports/secondary"
)

// JioRepository implements secondary.JioRepository with a map.
type JioRepository struct {
	mu        sync.Mutex
	jios      map[int64]*secondary.JioRecord
	order     []int64 // creation order
	lastID    int64
	logWriter secondary.LogWriter
}

// NewJioRepository creates a new in-memory jio repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewJioRepository(logWriter secondary.LogWriter) *JioRepository {
	return &JioRepository{
		jios:      make(map[int64]*secondary.JioRecord),
		logWriter: logWriter,
	}
}

// GetNextID returns the next jio ID from a counter that only ever grows.
func (r *JioRepository) GetNextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	return r.lastID, nil
}

// Create stores a new jio.
func (r *JioRepository) Create(ctx context.Context, record *secondary.JioRecord) error {
	r.mu.Lock()
	if _, exists := r.jios[record.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("jio %d already exists", record.ID)
	}
	r.jios[record.ID] = cloneJio(record)
	r.order = append(r.order, record.ID)
	r.mu.Unlock()

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "jio", strconv.FormatInt(record.ID, 10))
	}
	return nil
}

// GetByID retrieves a copy of a jio.
func (r *JioRepository) GetByID(ctx context.Context, id int64) (*secondary.JioRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.jios[id]
	if !ok {
		return nil, fmt.Errorf("jio %d: %w", id, secondary.ErrNotFound)
	}
	return cloneJio(record), nil
}

// List retrieves jios matching the filters in creation order.
func (r *JioRepository) List(ctx context.Context, filters secondary.JioFilters) ([]*secondary.JioRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*secondary.JioRecord
	for _, id := range r.order {
		record := r.jios[id]
		if filters.CreatorID != 0 && record.CreatorID != filters.CreatorID {
			continue
		}
		result = append(result, cloneJio(record))
	}
	return result, nil
}

// AppendItem appends an item and records its contributor as a participant.
func (r *JioRepository) AppendItem(ctx context.Context, jioID int64, item *secondary.ItemRecord) error {
	r.mu.Lock()
	record, ok := r.jios[jioID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("jio %d: %w", jioID, secondary.ErrNotFound)
	}
	before := len(record.Items)
	record.Items = append(record.Items, *item)
	record.Participants, _ = jio.AddParticipant(record.Participants, item.ContributorName)
	r.mu.Unlock()

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "jio", strconv.FormatInt(jioID, 10), "items",
			strconv.Itoa(before), strconv.Itoa(before+1))
	}
	return nil
}

// AddSurface attaches a surface unless an identical one is already recorded.
func (r *JioRepository) AddSurface(ctx context.Context, jioID int64, surface *secondary.SurfaceRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.jios[jioID]
	if !ok {
		return false, fmt.Errorf("jio %d: %w", jioID, secondary.ErrNotFound)
	}
	for _, s := range record.Surfaces {
		if s == *surface {
			return false, nil
		}
	}
	record.Surfaces = append(record.Surfaces, *surface)
	return true, nil
}

// Delete removes a jio.
func (r *JioRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	if _, ok := r.jios[id]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("jio %d: %w", id, secondary.ErrNotFound)
	}
	delete(r.jios, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, "jio", strconv.FormatInt(id, 10))
	}
	return nil
}

// cloneJio copies a record so callers never alias repository state.
func cloneJio(r *secondary.JioRecord) *secondary.JioRecord {
	c := *r
	c.Items = append([]secondary.ItemRecord(nil), r.Items...)
	c.Participants = append([]string(nil), r.Participants...)
	c.Surfaces = append([]secondary.SurfaceRecord(nil), r.Surfaces...)
	return &c
}

var _ secondary.JioRepository = (*JioRepository)(nil)
