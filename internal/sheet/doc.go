// Package sheet parses a published spreadsheet export (CSV) into raw rows.
//
// The parser is tolerant: malformed rows surface as Diagnostics rather than
// errors, and Parse itself never fails. Two header modes are supported:
//
//	res := sheet.Parse(text, sheet.Header)    // rows keyed by header label
//	res := sheet.Parse(text, sheet.NoHeader)  // rows as positional cells
//
// The header-keyed result is only trusted when its labels look like the
// expected columns; HasExpectedHeader is the shape predicate used by the
// ingestion pipeline to decide whether to fall back to positional parsing.
package sheet
