// Package catalog holds the in-memory state of one browsing session: the
// full record set, the current filtered view, facet selection, pagination
// and the open record.
//
// A Catalog is an explicit handle; create one per session (or per test).
// It is not safe for concurrent use. Hosts that serve it from several
// goroutines must serialize access.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/handiism/album-catalog/internal/collation"
	"github.com/handiism/album-catalog/internal/filter"
	"github.com/handiism/album-catalog/internal/model"
)

// DefaultPageSize is the initial page limit and the "load more" increment.
const DefaultPageSize = 50

// ErrNotLoaded is returned by operations that need a populated catalog.
var ErrNotLoaded = errors.New("catalog not loaded")

// ErrOutOfRange is returned for an index outside the records or the view.
var ErrOutOfRange = errors.New("index out of range")

// Catalog is the state of one browsing session.
//
// records is set once by Populate and never mutated afterwards. filtered
// holds ascending indices into records, so the view is always a
// subsequence of the full set.
type Catalog struct {
	collator *collation.Collator
	pageSize int

	loaded   bool
	records  []model.Record
	genres   []string
	filtered []int

	query     string
	selected  filter.GenreSet
	pageLimit int
	current   int
}

// New creates an empty, unloaded Catalog. A pageSize <= 0 selects
// DefaultPageSize.
func New(collator *collation.Collator, pageSize int) *Catalog {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Catalog{
		collator:  collator,
		pageSize:  pageSize,
		selected:  filter.GenreSet{},
		pageLimit: pageSize,
		current:   -1,
	}
}

// Populate installs the ingested records and resets every view setting:
// the filtered view equals the full set, no query, no genres, first page,
// nothing open. records must already be validated and sorted.
func (c *Catalog) Populate(records []model.Record) {
	c.records = slices.Clone(records)
	c.genres = filter.Genres(c.records, c.collator)
	c.filtered = make([]int, len(c.records))
	for i := range c.filtered {
		c.filtered[i] = i
	}
	c.query = ""
	c.selected = filter.GenreSet{}
	c.pageLimit = c.pageSize
	c.current = -1
	c.loaded = true
}

// Loaded reports whether Populate has run.
func (c *Catalog) Loaded() bool {
	return c.loaded
}

// ApplyFilter replaces the query and the genre selection, recomputes the
// filtered view and resets the page limit. It is a no-op before Populate.
func (c *Catalog) ApplyFilter(query string, genres filter.GenreSet) {
	if !c.loaded {
		return
	}
	c.query = query
	c.selected = genres.Clone()
	c.refilter()
}

// SetQuery replaces the query, keeping the genre selection.
func (c *Catalog) SetQuery(query string) {
	c.ApplyFilter(query, c.selected)
}

// ToggleGenre adds genre to the selection, or removes it if present.
func (c *Catalog) ToggleGenre(genre string) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return
	}
	next := c.selected.Clone()
	if next.Has(genre) {
		delete(next, genre)
	} else {
		next[genre] = struct{}{}
	}
	c.ApplyFilter(c.query, next)
}

// Reset clears the query and the genre selection.
func (c *Catalog) Reset() {
	c.ApplyFilter("", filter.GenreSet{})
}

func (c *Catalog) refilter() {
	c.filtered = filter.Indices(c.records, c.query, c.selected)
	c.pageLimit = c.pageSize
}

// LoadMore raises the page limit by one page. It returns false, leaving
// the limit unchanged, when every filtered record is already shown or the
// catalog is not loaded.
func (c *Catalog) LoadMore() bool {
	if !c.loaded || !c.HasMore() {
		return false
	}
	c.pageLimit += c.pageSize
	return true
}

// Window returns the filtered records currently materialized for display.
func (c *Catalog) Window() []model.Record {
	return c.materialize(c.filtered[:c.Shown()])
}

// Filtered returns the whole filtered view.
func (c *Catalog) Filtered() []model.Record {
	return c.materialize(c.filtered)
}

func (c *Catalog) materialize(idx []int) []model.Record {
	out := make([]model.Record, len(idx))
	for i, j := range idx {
		out[i] = c.records[j]
	}
	return out
}

// Records returns a copy of the full record set.
func (c *Catalog) Records() []model.Record {
	return slices.Clone(c.records)
}

// Total returns the size of the filtered view.
func (c *Catalog) Total() int {
	return len(c.filtered)
}

// Shown returns how many filtered records the current page limit exposes.
func (c *Catalog) Shown() int {
	return min(c.pageLimit, len(c.filtered))
}

// CountLine renders the list header, e.g. "1,204 albums, showing 50".
func (c *Catalog) CountLine() string {
	return fmt.Sprintf("%s albums, showing %s",
		humanize.Comma(int64(c.Total())), humanize.Comma(int64(c.Shown())))
}

// HasMore reports whether LoadMore would expose more records.
func (c *Catalog) HasMore() bool {
	return c.Shown() < c.Total()
}

// PageLimit returns the current page limit.
func (c *Catalog) PageLimit() int {
	return c.pageLimit
}

// PageSize returns the page increment.
func (c *Catalog) PageSize() int {
	return c.pageSize
}

// Query returns the active free-text query as entered.
func (c *Catalog) Query() string {
	return c.query
}

// SelectedGenres returns the active genre selection in collation order.
func (c *Catalog) SelectedGenres() []string {
	return c.selected.Values(c.collator)
}

// GenreSelected reports whether genre is in the active selection.
func (c *Catalog) GenreSelected(genre string) bool {
	return c.selected.Has(genre)
}

// Genres returns the distinct genre values of the full record set.
func (c *Catalog) Genres() []string {
	return slices.Clone(c.genres)
}

// RecordIndexOfFiltered maps a position in the filtered view to the
// position of the same record in the full set.
func (c *Catalog) RecordIndexOfFiltered(i int) (int, error) {
	if !c.loaded {
		return -1, ErrNotLoaded
	}
	if i < 0 || i >= len(c.filtered) {
		return -1, fmt.Errorf("filtered index %d: %w", i, ErrOutOfRange)
	}
	return c.filtered[i], nil
}

// IndexOf returns the position of the first record equal to r, or -1.
func (c *Catalog) IndexOf(r model.Record) int {
	return slices.IndexFunc(c.records, r.Equal)
}

// CurrentItem returns the open record, if any.
func (c *Catalog) CurrentItem() (model.Record, bool) {
	if c.current < 0 {
		return model.Record{}, false
	}
	return c.records[c.current], true
}

// CurrentIndex returns the position of the open record in the full set,
// or -1.
func (c *Catalog) CurrentIndex() int {
	return c.current
}

// SetCurrent opens the record at position i of the full set.
func (c *Catalog) SetCurrent(i int) error {
	if !c.loaded {
		return ErrNotLoaded
	}
	if i < 0 || i >= len(c.records) {
		return fmt.Errorf("record index %d: %w", i, ErrOutOfRange)
	}
	c.current = i
	return nil
}

// ClearCurrent closes the open record.
func (c *Catalog) ClearCurrent() {
	c.current = -1
}
