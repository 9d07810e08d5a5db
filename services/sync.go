package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/littleboyzz/Billiard-Plus-App/models"
)

// SourceClient is the slice of the remote table/area service the sync
// monitor needs. The upstream package provides the HTTP implementation;
// tests substitute fakes.
type SourceClient interface {
	ListAreas(ctx context.Context) ([]models.Area, error)
	ListTables(ctx context.Context) ([]models.Table, error)
}

// SyncMonitor keeps the registry eventually consistent with the source of
// record: a fixed-period tick plus out-of-band forced ticks
// (pull-to-refresh, post-checkout). Two reconciliations never run at the
// same time; a tick that fires while one is in flight is dropped, not
// queued. A failed fetch leaves the registry at last-known-good.
type SyncMonitor struct {
	client   SourceClient
	registry *Registry

	Interval time.Duration
	Timeout  time.Duration

	stopCh    chan struct{}
	forceCh   chan struct{}
	stopOnce  sync.Once
	inFlight  atomic.Bool
	onApplied func()
}

func NewSyncMonitor(client SourceClient, registry *Registry) *SyncMonitor {
	return &SyncMonitor{
		client:   client,
		registry: registry,
		Interval: 30 * time.Second,
		Timeout:  5 * time.Second,
		stopCh:   make(chan struct{}),
		forceCh:  make(chan struct{}, 1),
	}
}

// SetOnApplied registers a hook fired after every successfully applied
// snapshot (main wires it to the websocket hub).
func (sm *SyncMonitor) SetOnApplied(fn func()) {
	sm.onApplied = fn
}

// Start launches the polling loop. The first reconciliation runs
// immediately so screens are not empty for a full period.
func (sm *SyncMonitor) Start() {
	go func() {
		sm.SyncNow()

		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-sm.stopCh:
				return
			case <-ticker.C:
				sm.SyncNow()
			case <-sm.forceCh:
				sm.SyncNow()
			}
		}
	}()
	log.Printf("Sync monitor started (interval=%s timeout=%s)", sm.Interval, sm.Timeout)
}

// Stop cancels the polling loop. Safe to call more than once.
func (sm *SyncMonitor) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stopCh)
	})
}

// ForceRefresh requests an immediate out-of-band tick without resetting
// the periodic timer. Non-blocking: if a forced tick is already queued or
// a reconciliation is running, the request coalesces.
func (sm *SyncMonitor) ForceRefresh() {
	select {
	case sm.forceCh <- struct{}{}:
	default:
	}
}

// SyncNow runs a single reconciliation, coalescing concurrent callers.
// Fetch failures are logged and absorbed: the registry keeps its
// last-known-good state and the next period heals.
func (sm *SyncMonitor) SyncNow() {
	if !sm.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer sm.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), sm.Timeout)
	defer cancel()

	areas, err := sm.client.ListAreas(ctx)
	if err != nil {
		log.Printf("Sync failure (areas): %v", err)
		return
	}
	tables, err := sm.client.ListTables(ctx)
	if err != nil {
		log.Printf("Sync failure (tables): %v", err)
		return
	}

	sm.registry.UpsertFromSource(tables, areas)

	if sm.onApplied != nil {
		sm.onApplied()
	}
}
