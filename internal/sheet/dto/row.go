package dto

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/handiism/album-catalog/internal/model"
)

// Column labels of the source sheet, in positional order.
const (
	ColumnArtist = "Artist"
	ColumnAlbum  = "Album"
	ColumnYear   = "Year"
	ColumnGenre  = "Genre"
	ColumnCover  = "Cover"
	ColumnTracks = "Tracks"
)

// coverAlias is the historical label of the cover column: the spreadsheet
// column letter left behind by an older export.
const coverAlias = "F"

const byteOrderMark = "\ufeff"

// Columns lists the expected labels in the fixed positional order.
var Columns = []string{ColumnArtist, ColumnAlbum, ColumnYear, ColumnGenre, ColumnCover, ColumnTracks}

var trackDelimiters = regexp.MustCompile(`\s*;\s*|\s*·\s*|\s*\|\s*|\s*,\s*`)

// KeyedRow is one data row of a header-keyed parse: column label to raw value.
type KeyedRow map[string]string

// PositionalRow is one data row of a header-less parse, in column order.
type PositionalRow []string

// Labels returns the row's column labels in sorted order.
func (r KeyedRow) Labels() []string {
	return slices.Sorted(maps.Keys(r))
}

// ToRecord converts a header-keyed row into a model.Record.
//
// Labels are looked up exactly first, then lower-cased, then upper-cased,
// and finally with a case-insensitive scan. The cover column also accepts
// the historical alias "F". Missing labels normalize to the empty string.
// ToRecord never fails; validity is judged by model.Record.IsValid.
func (r KeyedRow) ToRecord() model.Record {
	cover := r.get(ColumnCover)
	if cover == "" {
		cover = r.get(coverAlias)
	}

	return model.NewRecord(
		r.get(ColumnArtist),
		r.get(ColumnAlbum),
		r.get(ColumnYear),
		r.get(ColumnGenre),
		cover,
		SplitTracks(r.lookup(ColumnTracks)),
	)
}

func (r KeyedRow) get(label string) string {
	return Clean(r.lookup(label))
}

func (r KeyedRow) lookup(label string) string {
	if v, ok := r[label]; ok {
		return v
	}
	if v, ok := r[strings.ToLower(label)]; ok {
		return v
	}
	if v, ok := r[strings.ToUpper(label)]; ok {
		return v
	}
	for _, k := range r.Labels() {
		if strings.EqualFold(Clean(k), label) {
			return r[k]
		}
	}
	return ""
}

// ToRecord converts a positional row into a model.Record assuming the
// column order Artist, Album, Year, Genre, Cover, Tracks. Short rows leave
// the remaining fields empty; extra cells are ignored.
func (r PositionalRow) ToRecord() model.Record {
	return model.NewRecord(
		Clean(r.at(0)),
		Clean(r.at(1)),
		Clean(r.at(2)),
		Clean(r.at(3)),
		Clean(r.at(4)),
		SplitTracks(r.at(5)),
	)
}

func (r PositionalRow) at(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

// Clean strips a leading byte-order mark and surrounding whitespace.
func Clean(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, byteOrderMark))
}

// SplitTracks splits a delimiter-joined track list.
//
// Semicolon, middle dot, vertical bar and comma are all delimiters, each
// optionally surrounded by whitespace. Empty fragments are dropped and the
// remaining order is preserved.
//
// Example:
//
//	SplitTracks("So What; Freddie Freeloader | Blue in Green")
//	// ["So What", "Freddie Freeloader", "Blue in Green"]
func SplitTracks(s string) []string {
	s = Clean(s)
	if s == "" {
		return []string{}
	}

	parts := trackDelimiters.Split(s, -1)
	tracks := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tracks = append(tracks, p)
		}
	}
	return tracks
}
