package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/album-catalog/internal/sheet/dto"
)

func TestParse_Header(t *testing.T) {
	text := "Artist,Album,Year,Genre,Cover,Tracks\n" +
		"Miles Davis,Kind of Blue,1959,Jazz,http://x/y.jpg,So What;Freddie Freeloader\n"

	res := Parse(text, Header)

	require.Equal(t, ShapeKeyed, res.Shape)
	require.Len(t, res.Keyed, 1)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, []string{"Artist", "Album", "Year", "Genre", "Cover", "Tracks"}, res.Header)
	assert.Equal(t, "Miles Davis", res.Keyed[0]["Artist"])
	assert.Equal(t, "So What;Freddie Freeloader", res.Keyed[0]["Tracks"])
	assert.True(t, KeyedShapeOK(res))
}

func TestParse_NoHeader(t *testing.T) {
	text := "Miles Davis,Kind of Blue,1959,Jazz,,So What\nColtrane,Giant Steps,1960,Jazz,,Naima\n"

	res := Parse(text, NoHeader)

	require.Equal(t, ShapePositional, res.Shape)
	require.Equal(t, 2, res.Len())
	assert.Equal(t, dto.PositionalRow{"Coltrane", "Giant Steps", "1960", "Jazz", "", "Naima"}, res.Positional[1])
	assert.False(t, KeyedShapeOK(res))
}

func TestParse_SkipsBlankLinesAndBOM(t *testing.T) {
	text := "\ufeffArtist,Album\n\nA,B\n,\n\nC,D\n"

	res := Parse(text, Header)

	require.Len(t, res.Keyed, 2)
	assert.Equal(t, "Artist", res.Header[0])
	assert.Equal(t, "C", res.Keyed[1]["Artist"])
}

func TestParse_FieldCountDiagnostics(t *testing.T) {
	text := "Artist,Album,Year\nA,B\nC,D,E,F\n"

	res := Parse(text, Header)

	require.Len(t, res.Keyed, 2)
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, CodeTooFewFields, res.Diagnostics[0].Code)
	assert.Equal(t, 2, res.Diagnostics[0].Line)
	assert.Equal(t, CodeTooManyFields, res.Diagnostics[1].Code)

	_, hasYear := res.Keyed[0]["Year"]
	assert.False(t, hasYear, "missing trailing field leaves label absent")
	assert.Equal(t, "E", res.Keyed[1]["Year"])
}

func TestParse_DuplicateHeader(t *testing.T) {
	res := Parse("Artist,Artist,Album\nA,X,B\n", Header)

	require.Len(t, res.Keyed, 1)
	assert.Equal(t, "A", res.Keyed[0]["Artist"])
	assert.Equal(t, "B", res.Keyed[0]["Album"])
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, CodeDuplicateHeader, res.Diagnostics[0].Code)
}

func TestParse_LazyQuotes(t *testing.T) {
	res := Parse("Artist,Album\nThe \"Band\",Music from Big Pink\n", Header)

	require.Len(t, res.Keyed, 1)
	assert.Equal(t, `The "Band"`, res.Keyed[0]["Artist"])
}

func TestParse_QuotedDelimiters(t *testing.T) {
	res := Parse("Artist,Album,Tracks\n\"Crosby, Stills & Nash\",CSN,\"Suite, Judy; Marrakesh\"\n", Header)

	require.Len(t, res.Keyed, 1)
	assert.Equal(t, "Crosby, Stills & Nash", res.Keyed[0]["Artist"])
}

func TestParse_Empty(t *testing.T) {
	assert.Equal(t, 0, Parse("", Header).Len())
	assert.Equal(t, 0, Parse("", NoHeader).Len())
	assert.Equal(t, 0, Parse("Artist,Album\n", Header).Len())
}

func TestHasExpectedHeader(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   bool
	}{
		{"exact", []string{"Artist", "Album"}, true},
		{"case folded", []string{"ARTIST"}, true},
		{"one match among others", []string{"x", "y", "tracks"}, true},
		{"letters", []string{"A", "B", "C", "D", "E", "F"}, false},
		{"none", nil, false},
		{"padded", []string{"  genre "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExpectedHeader(tt.labels))
		})
	}
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "line 3: TooFewFields: short", Diagnostic{Line: 3, Code: CodeTooFewFields, Message: "short"}.String())
	assert.Equal(t, "Unreadable: boom", Diagnostic{Code: CodeUnreadable, Message: "boom"}.String())
}
