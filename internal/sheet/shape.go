package sheet

import (
	"strings"

	"github.com/handiism/album-catalog/internal/sheet/dto"
)

// expectedLabels is the case-folded set of recognised column labels.
var expectedLabels = func() map[string]struct{} {
	m := make(map[string]struct{}, len(dto.Columns))
	for _, c := range dto.Columns {
		m[strings.ToLower(c)] = struct{}{}
	}
	return m
}()

// HasExpectedHeader reports whether any of the given labels, case-folded,
// is one of the expected columns (artist, album, year, genre, cover, tracks).
func HasExpectedHeader(labels []string) bool {
	for _, l := range labels {
		if _, ok := expectedLabels[strings.ToLower(dto.Clean(l))]; ok {
			return true
		}
	}
	return false
}

// KeyedShapeOK is the shape predicate for a header-keyed parse: the first
// row's labels must intersect the expected columns.
func KeyedShapeOK(res Result) bool {
	if res.Shape != ShapeKeyed || len(res.Keyed) == 0 {
		return false
	}
	return HasExpectedHeader(res.Keyed[0].Labels())
}

// IsHeaderRow reports whether a positional row looks like the expected header.
func IsHeaderRow(row dto.PositionalRow) bool {
	return HasExpectedHeader(row)
}
