// Package collation provides locale-aware string ordering for the catalog.
//
// Comparison ignores case, character width and diacritics, so "abc",
// "ABC", "ａｂｃ" and "àbç" all compare equal. Sorting is stable: equal keys
// keep their original relative order.
package collation

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/handiism/album-catalog/internal/model"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "ko"

// Collator compares strings for one locale. It is safe for concurrent use.
type Collator struct {
	mu  sync.Mutex
	c   *collate.Collator
	tag language.Tag
}

// New creates a Collator for a BCP-47 locale such as "ko" or "en-US".
// An empty locale selects DefaultLocale.
func New(locale string) (*Collator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Collator{
		c:   collate.New(tag, collate.IgnoreCase, collate.IgnoreWidth, collate.IgnoreDiacritics),
		tag: tag,
	}, nil
}

// MustNew is like New but panics on an invalid locale.
func MustNew(locale string) *Collator {
	c, err := New(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Locale returns the collator's language tag.
func (c *Collator) Locale() string {
	return c.tag.String()
}

// Compare returns -1, 0 or +1 depending on the collation order of a and b.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// SortByArtist stable-sorts records in place by artist.
func (c *Collator) SortByArtist(records []model.Record) {
	slices.SortStableFunc(records, func(a, b model.Record) int {
		return c.Compare(a.Artist, b.Artist)
	})
}

// SortStrings stable-sorts values in place.
func (c *Collator) SortStrings(values []string) {
	slices.SortStableFunc(values, c.Compare)
}

// IsSortedByArtist reports whether records are in non-decreasing artist order.
func (c *Collator) IsSortedByArtist(records []model.Record) bool {
	return slices.IsSortedFunc(records, func(a, b model.Record) int {
		return c.Compare(a.Artist, b.Artist)
	})
}
