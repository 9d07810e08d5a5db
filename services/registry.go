package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/littleboyzz/Billiard-Plus-App/models"
)

// AreaUnassigned groups tables whose area id does not resolve against the
// current area snapshot. They stay visible instead of being dropped.
const AreaUnassigned = "unassigned"

// pendingTransition marks an optimistic local status change that has not
// been confirmed by a reconciliation yet.
type pendingTransition struct {
	from        string
	to          string
	requestedAt time.Time
}

type tableState struct {
	table   models.Table
	pending *pendingTransition
}

// Registry owns the mirrored set of tables and areas plus the currently
// selected area. It has exactly one wholesale writer (the sync monitor via
// UpsertFromSource) and two narrow writers (RequestOpen / RequestClose);
// everything else reads. Constructed once per process and passed around,
// never package-level.
type Registry struct {
	mu           sync.RWMutex
	tables       []*tableState
	areas        []models.Area
	areaByID     map[string]models.Area
	selectedArea string
	now          func() time.Time
}

func NewRegistry() *Registry {
	return NewRegistryWithClock(time.Now)
}

// NewRegistryWithClock injects the "now" source so elapsed-time behavior
// is testable without waiting.
func NewRegistryWithClock(now func() time.Time) *Registry {
	return &Registry{
		areaByID: make(map[string]models.Area),
		now:      now,
	}
}

// Now returns the registry's current time. All elapsed reads go through
// this so display and billing never drift apart.
func (r *Registry) Now() time.Time {
	return r.now()
}

// UpsertFromSource replaces the registry contents with a fresh snapshot
// from the source of record. The snapshot always wins: any pending
// optimistic transition collapses to the authoritative status
// (last-reconciliation-wins). Applying the same snapshot twice yields the
// same state.
func (r *Registry) UpsertFromSource(tables []models.Table, areas []models.Area) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.areas = make([]models.Area, 0, len(areas))
	r.areaByID = make(map[string]models.Area, len(areas))
	for _, a := range areas {
		if a.ID == "" {
			continue
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		r.areas = append(r.areas, a)
		r.areaByID[a.ID] = a
	}

	previous := make(map[string]*tableState, len(r.tables))
	for _, st := range r.tables {
		previous[st.table.ID] = st
	}

	next := make([]*tableState, 0, len(tables))
	for _, t := range tables {
		if !t.Active || t.ID == "" {
			continue
		}
		r.normalize(&t)

		if old, ok := previous[t.ID]; ok && old.pending != nil {
			if t.Status == old.pending.to {
				log.Printf("Table %s: pending %s->%s confirmed by source",
					t.ID, old.pending.from, old.pending.to)
			} else {
				log.Printf("Table %s: pending %s->%s overruled by source status %q",
					t.ID, old.pending.from, old.pending.to, t.Status)
			}
		}
		next = append(next, &tableState{table: t})
	}
	r.tables = next

	// A selected area that vanished from the snapshot falls back to the
	// first known area so views never point at nothing.
	if r.selectedArea != "" && r.selectedArea != AreaUnassigned {
		if _, ok := r.areaByID[r.selectedArea]; !ok {
			r.selectedArea = ""
			if len(r.areas) > 0 {
				r.selectedArea = r.areas[0].ID
			}
		}
	}
}

// normalize applies fallback defaults for malformed source data:
// empty name falls back to the id, negative rates become free, and the
// status/session invariant is enforced both ways.
func (r *Registry) normalize(t *models.Table) {
	if t.Name == "" {
		t.Name = t.ID
	}
	if t.RatePerHour < 0 {
		t.RatePerHour = 0
	}
	if t.Status == "" {
		t.Status = models.StatusAvailable
	}
	if t.Status != models.StatusPlaying {
		t.Session = nil
		return
	}
	if t.Session == nil {
		// Source says playing but sent no session. Start counting now
		// rather than hiding the table or billing from epoch.
		t.Session = &models.Session{
			ID:        uuid.NewString(),
			TableID:   t.ID,
			StartTime: r.now(),
		}
	}
}

// Areas returns the mirrored areas in source order.
func (r *Registry) Areas() []models.Area {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Area, len(r.areas))
	copy(out, r.areas)
	return out
}

// AreaName resolves an area id for display, with the unassigned sentinel
// for orphans.
func (r *Registry) AreaName(areaID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.areaByID[areaID]; ok {
		return a.Name
	}
	return AreaUnassigned
}

// SelectArea switches the active area filter.
func (r *Registry) SelectArea(areaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if areaID != AreaUnassigned {
		if _, ok := r.areaByID[areaID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownArea, areaID)
		}
	}
	r.selectedArea = areaID
	return nil
}

func (r *Registry) SelectedArea() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selectedArea
}

// FilterByArea returns the visible tables for one area in source order
// (the source defines display order, we never re-sort). The empty area id
// means all tables. Tables referencing an unknown area only show up under
// the AreaUnassigned sentinel.
func (r *Registry) FilterByArea(areaID string) []models.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Table, 0, len(r.tables))
	for _, st := range r.tables {
		effective := st.table.AreaID
		if _, known := r.areaByID[effective]; !known {
			effective = AreaUnassigned
		}
		if areaID != "" && effective != areaID {
			continue
		}
		out = append(out, cloneTable(st.table))
	}
	return out
}

// Tables returns every visible table in source order.
func (r *Registry) Tables() []models.Table {
	return r.FilterByArea("")
}

// CountByStatus aggregates status counts over one area's tables, feeding
// the summary header (free tables / tables in play).
func (r *Registry) CountByStatus(areaID string) map[string]int {
	counts := make(map[string]int)
	for _, t := range r.FilterByArea(areaID) {
		counts[t.Status]++
	}
	return counts
}

// Get returns one table by id.
func (r *Registry) Get(tableID string) (models.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, st := range r.tables {
		if st.table.ID == tableID {
			return cloneTable(st.table), true
		}
	}
	return models.Table{}, false
}

// RequestOpen optimistically puts an available table into play with a
// fresh session starting now. The change is pending until the next
// reconciliation confirms (or overrules) it.
func (r *Registry) RequestOpen(tableID string) (models.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.find(tableID)
	if st == nil {
		return models.Table{}, fmt.Errorf("%w: %s", ErrUnknownTable, tableID)
	}
	if st.table.Status != models.StatusAvailable {
		return models.Table{}, fmt.Errorf("%w: table %s is %s, not %s",
			ErrInvalidTransition, tableID, st.table.Status, models.StatusAvailable)
	}

	now := r.now()
	st.table.Status = models.StatusPlaying
	st.table.Session = &models.Session{
		ID:        uuid.NewString(),
		TableID:   tableID,
		StartTime: now,
	}
	st.pending = &pendingTransition{
		from:        models.StatusAvailable,
		to:          models.StatusPlaying,
		requestedAt: now,
	}
	return cloneTable(st.table), nil
}

// RequestClose optimistically releases a playing table back to available
// and destroys its session.
func (r *Registry) RequestClose(tableID string) (models.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.find(tableID)
	if st == nil {
		return models.Table{}, fmt.Errorf("%w: %s", ErrUnknownTable, tableID)
	}
	if st.table.Status != models.StatusPlaying {
		return models.Table{}, fmt.Errorf("%w: table %s is %s, not %s",
			ErrInvalidTransition, tableID, st.table.Status, models.StatusPlaying)
	}

	st.table.Status = models.StatusAvailable
	st.table.Session = nil
	st.pending = &pendingTransition{
		from:        models.StatusPlaying,
		to:          models.StatusAvailable,
		requestedAt: r.now(),
	}
	return cloneTable(st.table), nil
}

func (r *Registry) find(tableID string) *tableState {
	for _, st := range r.tables {
		if st.table.ID == tableID {
			return st
		}
	}
	return nil
}

// cloneTable hands out value copies so readers can never mutate registry
// state through a shared session pointer.
func cloneTable(t models.Table) models.Table {
	if t.Session != nil {
		s := *t.Session
		t.Session = &s
	}
	return t
}
