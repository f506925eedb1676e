package collation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/album-catalog/internal/model"
)

func TestNew_InvalidLocale(t *testing.T) {
	_, err := New("not a locale!!")
	require.Error(t, err)
}

func TestNew_DefaultLocale(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, c.Locale())
}

func TestCompare_Insensitive(t *testing.T) {
	c := MustNew("en")

	tests := []struct {
		a, b string
	}{
		{"abc", "ABC"},
		{"abc", "ａｂｃ"},
		{"Bjork", "Björk"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.a+"="+tt.b, func(t *testing.T) {
			assert.Equal(t, 0, c.Compare(tt.a, tt.b))
		})
	}

	assert.Negative(t, c.Compare("apple", "Banana"))
	assert.Positive(t, c.Compare("zebra", "Apple"))
	assert.Negative(t, c.Compare("", "a"))
}

func TestSortByArtist_Stable(t *testing.T) {
	c := MustNew(DefaultLocale)

	records := []model.Record{
		model.NewRecord("Zappa", "1", "", "", "", nil),
		model.NewRecord("abba", "first", "", "", "", nil),
		model.NewRecord("ABBA", "second", "", "", "", nil),
		model.NewRecord("", "no artist", "", "", "", nil),
		model.NewRecord("Abba", "third", "", "", "", nil),
		model.NewRecord("Miles Davis", "2", "", "", "", nil),
	}

	c.SortByArtist(records)

	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.Album
	}
	assert.Equal(t, []string{"no artist", "first", "second", "third", "2", "1"}, got)
	assert.True(t, c.IsSortedByArtist(records))
}

func TestSortByArtist_HangulAfterLatin(t *testing.T) {
	c := MustNew("ko")

	records := []model.Record{
		model.NewRecord("아이유", "", "", "", "", nil),
		model.NewRecord("Beatles", "", "", "", "", nil),
		model.NewRecord("김광석", "", "", "", "", nil),
	}

	c.SortByArtist(records)

	assert.Equal(t, "Beatles", records[0].Artist)
	assert.Equal(t, "김광석", records[1].Artist)
	assert.Equal(t, "아이유", records[2].Artist)
}

func TestSortStrings(t *testing.T) {
	c := MustNew("en")
	values := []string{"rock", "Jazz", "blues"}

	c.SortStrings(values)

	assert.Equal(t, []string{"blues", "Jazz", "rock"}, values)
}
