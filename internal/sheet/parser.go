package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/album-catalog/internal/sheet/dto"
)

// HeaderMode selects how the first record of the document is treated.
type HeaderMode int

const (
	// Header treats the first non-empty record as column labels.
	Header HeaderMode = iota

	// NoHeader treats every record as data.
	NoHeader
)

// Shape tags which variant of rows a Result carries.
type Shape int

const (
	// ShapeKeyed means rows are dto.KeyedRow values.
	ShapeKeyed Shape = iota

	// ShapePositional means rows are dto.PositionalRow values.
	ShapePositional
)

// String returns "keyed" or "positional".
func (s Shape) String() string {
	if s == ShapePositional {
		return "positional"
	}
	return "keyed"
}

// Diagnostic codes.
const (
	CodeInvalidQuotes   = "InvalidQuotes"
	CodeTooFewFields    = "TooFewFields"
	CodeTooManyFields   = "TooManyFields"
	CodeDuplicateHeader = "DuplicateHeader"
	CodeUnreadable      = "Unreadable"
)

// Diagnostic is a non-fatal parse warning.
type Diagnostic struct {
	// Line is the 1-based source line the warning refers to, or 0.
	Line int

	// Code classifies the warning (CodeInvalidQuotes, ...).
	Code string

	// Message is a human-readable description.
	Message string
}

// String formats the diagnostic as "line N: Code: message".
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Result is the output of Parse. Exactly one of Keyed and Positional is
// populated, as indicated by Shape.
type Result struct {
	Shape       Shape
	Header      []string
	Keyed       []dto.KeyedRow
	Positional  []dto.PositionalRow
	Diagnostics []Diagnostic
}

// Len returns the number of data rows in the result.
func (r Result) Len() int {
	if r.Shape == ShapePositional {
		return len(r.Positional)
	}
	return len(r.Keyed)
}

// Parse reads CSV text into rows.
//
// A leading byte-order mark is stripped, blank lines are skipped and stray
// quotes are tolerated. Rows that cannot be read are reported as
// Diagnostics and skipped; Parse never returns an error.
//
// In Header mode, a row shorter than the header omits the missing labels
// (CodeTooFewFields) and a longer row drops its extra cells
// (CodeTooManyFields). A repeated header label keeps its first column
// (CodeDuplicateHeader).
func Parse(text string, mode HeaderMode) Result {
	text = strings.TrimPrefix(text, "\ufeff")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	res := Result{Shape: ShapeKeyed}
	if mode == NoHeader {
		res.Shape = ShapePositional
	}

	var header []string
	var headerIndex []int
	var width int
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Line:    pe.Line,
					Code:    CodeInvalidQuotes,
					Message: pe.Err.Error(),
				})
				continue
			}
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Code: CodeUnreadable, Message: err.Error()})
			break
		}
		if isBlank(record) {
			continue
		}

		line, _ := r.FieldPos(0)

		if mode == NoHeader {
			res.Positional = append(res.Positional, dto.PositionalRow(record))
			continue
		}

		if header == nil {
			header, headerIndex, res.Diagnostics = readHeader(record, line, res.Diagnostics)
			width = len(record)
			res.Header = header
			continue
		}

		row := make(dto.KeyedRow, len(header))
		for i, col := range headerIndex {
			if col < len(record) {
				row[header[i]] = record[col]
			}
		}
		switch {
		case len(record) < width:
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Line:    line,
				Code:    CodeTooFewFields,
				Message: fmt.Sprintf("expected %d fields but parsed %d", width, len(record)),
			})
		case len(record) > width:
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Line:    line,
				Code:    CodeTooManyFields,
				Message: fmt.Sprintf("expected %d fields but parsed %d", width, len(record)),
			})
		}
		res.Keyed = append(res.Keyed, row)
	}

	return res
}

// readHeader cleans the header labels. headerIndex maps each kept label to
// its source column; duplicates and empty labels keep no column.
func readHeader(record []string, line int, diags []Diagnostic) ([]string, []int, []Diagnostic) {
	header := make([]string, 0, len(record))
	index := make([]int, 0, len(record))
	seen := make(map[string]struct{}, len(record))

	for col, raw := range record {
		label := dto.Clean(raw)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			diags = append(diags, Diagnostic{
				Line:    line,
				Code:    CodeDuplicateHeader,
				Message: fmt.Sprintf("duplicate column %q ignored", label),
			})
			continue
		}
		seen[label] = struct{}{}
		header = append(header, label)
		index = append(index, col)
	}

	return header, index, diags
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
