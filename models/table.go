package models

import "time"

// Table statuses as reported by the source of record.
const (
	StatusAvailable   = "available"
	StatusPlaying     = "playing"
	StatusReserved    = "reserved"
	StatusMaintenance = "maintenance"
)

// Session is the interval a table has been in use. Elapsed time is never
// stored; it is recomputed against the clock on every read.
type Session struct {
	ID        string    `json:"id"`
	TableID   string    `json:"table_id"`
	StartTime time.Time `json:"start_time"`
}

// Table mirrors one billable table from the source of record. The engine
// never creates or deletes tables, it only mirrors them and applies
// optimistic open/close transitions pending the next reconciliation.
type Table struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AreaID      string   `json:"area_id"`
	Status      string   `json:"status"`
	RatePerHour int64    `json:"rate_per_hour"` // VND per hour of play
	Session     *Session `json:"current_session,omitempty"`
	Active      bool     `json:"active"`
	ItemsCount  int      `json:"items_count"`
}

// Area is a named section of the venue (e.g. "Khu vực 1").
type Area struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
