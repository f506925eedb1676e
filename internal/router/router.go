// Package router keeps the visible view (list or detail) consistent with
// the catalog's open record and the persisted navigation marker.
//
// The marker can outlive the in-memory open record: it survives a reload
// or a cache restore, the record does not. The router therefore never
// trusts a "#detail" marker on its own. Absence of the open record always
// wins and forces the list view.
//
//	r := router.New(cat, store, logger)
//	// ... after ingestion populated cat:
//	r.EnforceRoute()
//
//	r.OpenIndex(3)         // list -> detail
//	r.Back()               // detail -> list
//	r.Navigate("#detail")  // external marker change, re-enforced
//	r.OnResume()           // cache restore, re-enforced
//
// Router methods never fail; every call ends in a valid state.
package router

import (
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/catalog"
	"github.com/handiism/album-catalog/internal/model"
)

// MarkerStore persists the navigation marker between sessions of the same
// host (reloads, cache restores).
type MarkerStore interface {
	Load() (string, error)
	Save(marker string) error
}

// Router is the list/detail view-state machine.
type Router struct {
	catalog *catalog.Catalog
	store   MarkerStore
	logger  *zap.Logger

	state       State
	marker      Marker
	corrections int
	listeners   []func(State, Marker)
}

// New creates a Router in the list state. The marker is read from store
// but not acted on until EnforceRoute. A nil logger disables logging.
func New(cat *catalog.Catalog, store MarkerStore, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		catalog: cat,
		store:   store,
		logger:  logger,
		state:   StateList,
	}
	r.marker = r.loadMarker()
	return r
}

// OnChange registers a listener called after every transition, including
// idempotent re-applications of the current state.
func (r *Router) OnChange(fn func(State, Marker)) {
	r.listeners = append(r.listeners, fn)
}

// State returns the visible view.
func (r *Router) State() State {
	return r.state
}

// Marker returns the current navigation marker.
func (r *Router) Marker() Marker {
	return r.marker
}

// Corrections counts "#detail" markers that had no open record behind them.
func (r *Router) Corrections() int {
	return r.corrections
}

// Open shows rec in the detail view. rec must be a member of the catalog's
// records; otherwise the router returns to the list and Open reports false.
func (r *Router) Open(rec model.Record) bool {
	return r.openRecordIndex(r.catalog.IndexOf(rec))
}

// OpenIndex opens the record at position i of the filtered view.
func (r *Router) OpenIndex(i int) bool {
	idx, err := r.catalog.RecordIndexOfFiltered(i)
	if err != nil {
		r.logger.Debug("open refused", zap.Int("index", i), zap.Error(err))
		r.Back()
		return false
	}
	return r.openRecordIndex(idx)
}

func (r *Router) openRecordIndex(idx int) bool {
	if err := r.catalog.SetCurrent(idx); err != nil {
		r.logger.Debug("open refused", zap.Int("record", idx), zap.Error(err))
		r.Back()
		return false
	}
	r.setMarker(MarkerDetail)
	r.transition(StateDetail)
	return true
}

// Back clears the open record and shows the list. It is idempotent.
func (r *Router) Back() {
	r.catalog.ClearCurrent()
	r.setMarker(MarkerList)
	r.transition(StateList)
}

// EnforceRoute reconciles the view with the marker and the open record.
//
// A "#detail" marker with an open record (re-)shows the detail view. A
// "#detail" marker without one is a stale deep link and is corrected to
// the list. Any other marker shows the list.
func (r *Router) EnforceRoute() {
	if r.marker.IsDetail() {
		if _, ok := r.catalog.CurrentItem(); ok {
			r.transition(StateDetail)
			return
		}
		r.corrections++
		r.logger.Info("detail marker without open record, returning to list")
	}
	r.Back()
}

// Navigate handles an external marker change (user navigation, history
// back/forward) and enforces the route.
func (r *Router) Navigate(raw string) {
	r.setMarker(ParseMarker(raw))
	r.EnforceRoute()
}

// OnResume handles a cache restore: the marker is re-read from the store
// and the route enforced.
func (r *Router) OnResume() {
	r.marker = r.loadMarker()
	r.EnforceRoute()
}

func (r *Router) loadMarker() Marker {
	if r.store == nil {
		if r.marker == "" {
			return MarkerList
		}
		return r.marker
	}
	raw, err := r.store.Load()
	if err != nil {
		r.logger.Warn("load navigation marker", zap.Error(err))
		return MarkerList
	}
	return ParseMarker(raw)
}

func (r *Router) setMarker(m Marker) {
	r.marker = m
	if r.store == nil {
		return
	}
	if err := r.store.Save(string(m)); err != nil {
		r.logger.Warn("save navigation marker", zap.String("marker", string(m)), zap.Error(err))
	}
}

func (r *Router) transition(s State) {
	if s != r.state {
		r.logger.Debug("view changed",
			zap.Stringer("from", r.state),
			zap.Stringer("to", s),
			zap.String("marker", string(r.marker)))
	}
	r.state = s
	for _, fn := range r.listeners {
		fn(s, r.marker)
	}
}
