package router

import "strings"

// Marker is the persisted navigation token, the address-bar fragment of a
// browser host.
type Marker string

const (
	// MarkerList selects the list view.
	MarkerList Marker = "#list"

	// MarkerDetail selects the detail view of the open record.
	MarkerDetail Marker = "#detail"
)

// ParseMarker normalizes a raw marker value. "#list" and "#detail" are
// matched case-insensitively; any other value is kept as is and treated as
// the list view.
func ParseMarker(raw string) Marker {
	s := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(s, string(MarkerDetail)):
		return MarkerDetail
	case strings.EqualFold(s, string(MarkerList)):
		return MarkerList
	default:
		return Marker(s)
	}
}

// IsDetail reports whether the marker asks for the detail view.
func (m Marker) IsDetail() bool {
	return m == MarkerDetail
}

// State is the visible view.
type State int

const (
	// StateList shows the filtered list.
	StateList State = iota

	// StateDetail shows the open record.
	StateDetail
)

// String returns "list" or "detail".
func (s State) String() string {
	if s == StateDetail {
		return "detail"
	}
	return "list"
}
