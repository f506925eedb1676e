// Package filter implements the catalog's search and facet predicates.
//
// Everything here is a pure function of its inputs. Filtering is a
// projection: the output is a subsequence of the input, in input order,
// and filtering an already-filtered sequence with the same arguments
// returns it unchanged.
package filter

import (
	"strings"

	"github.com/handiism/album-catalog/internal/collation"
	"github.com/handiism/album-catalog/internal/model"
)

// GenreSet is a set of selected facet values. An empty set means no genre
// restriction.
type GenreSet map[string]struct{}

// NewGenreSet builds a set from values, trimming each and skipping empties.
func NewGenreSet(values ...string) GenreSet {
	s := make(GenreSet, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports whether genre is selected.
func (s GenreSet) Has(genre string) bool {
	_, ok := s[genre]
	return ok
}

// Values returns the selected genres in collation order.
func (s GenreSet) Values(c *collation.Collator) []string {
	out := make([]string, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	c.SortStrings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s GenreSet) Clone() GenreSet {
	out := make(GenreSet, len(s))
	for g := range s {
		out[g] = struct{}{}
	}
	return out
}

// NormalizeQuery trims and case-folds a free-text query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Haystack returns the case-folded text a query is matched against:
// artist, album, genre and every track title joined by spaces.
func Haystack(r model.Record) string {
	parts := make([]string, 0, 3+len(r.Tracks))
	parts = append(parts, r.Artist, r.Album, r.Genre)
	parts = append(parts, r.Tracks...)
	return strings.ToLower(strings.Join(parts, " "))
}

// MatchesQuery reports whether the normalized query is a substring of the
// record's haystack. An empty query matches everything.
func MatchesQuery(r model.Record, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return true
	}
	return strings.Contains(Haystack(r), normalizedQuery)
}

// MatchesGenres reports whether the record passes the facet predicate.
func MatchesGenres(r model.Record, genres GenreSet) bool {
	if len(genres) == 0 {
		return true
	}
	return genres.Has(strings.TrimSpace(r.Genre))
}

// Filter returns the records matching both the query and the genre facet,
// preserving input order.
func Filter(records []model.Record, query string, genres GenreSet) []model.Record {
	idx := Indices(records, query, genres)
	out := make([]model.Record, len(idx))
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}

// Indices is like Filter but returns the positions of the matching records
// in ascending order.
func Indices(records []model.Record, query string, genres GenreSet) []int {
	q := NormalizeQuery(query)
	out := make([]int, 0, len(records))
	for i, r := range records {
		if MatchesQuery(r, q) && MatchesGenres(r, genres) {
			out = append(out, i)
		}
	}
	return out
}

// Genres returns the distinct non-empty genre values of records, trimmed
// and in collation order.
func Genres(records []model.Record, c *collation.Collator) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		g := strings.TrimSpace(r.Genre)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	c.SortStrings(out)
	return out
}
