package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/album-catalog/internal/collation"
	"github.com/handiism/album-catalog/internal/filter"
	"github.com/handiism/album-catalog/internal/model"
)

func makeRecords(n int) []model.Record {
	genres := []string{"Jazz", "Rock", "Folk"}
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.NewRecord(fmt.Sprintf("Artist %03d", i), fmt.Sprintf("Album %d", i), "2000",
			genres[i%len(genres)], "", []string{"One", "Two"})
	}
	return out
}

func newLoaded(t *testing.T, n int) *Catalog {
	t.Helper()
	c := New(collation.MustNew("en"), 0)
	c.Populate(makeRecords(n))
	return c
}

func TestPopulate_InitialState(t *testing.T) {
	c := newLoaded(t, 3)

	assert.True(t, c.Loaded())
	assert.Equal(t, c.Records(), c.Filtered())
	assert.Equal(t, DefaultPageSize, c.PageLimit())
	assert.Empty(t, c.SelectedGenres())
	assert.Empty(t, c.Query())
	_, open := c.CurrentItem()
	assert.False(t, open)
	assert.Equal(t, []string{"Folk", "Jazz", "Rock"}, c.Genres())
}

func TestPagination_LoadMoreThenFilterResets(t *testing.T) {
	c := newLoaded(t, 120)

	assert.Equal(t, 50, c.PageLimit())
	assert.Len(t, c.Window(), 50)

	require.True(t, c.LoadMore())
	assert.Equal(t, 100, c.PageLimit())
	assert.Len(t, c.Window(), 100)

	c.ApplyFilter("", nil)
	assert.Equal(t, 50, c.PageLimit())
}

func TestLoadMore_StopsAtEnd(t *testing.T) {
	c := newLoaded(t, 120)

	assert.True(t, c.LoadMore())
	assert.True(t, c.LoadMore())
	assert.Equal(t, 120, c.Shown())
	assert.False(t, c.HasMore())
	assert.False(t, c.LoadMore())
	assert.Equal(t, 150, c.PageLimit())
}

func TestFilterResetsPage(t *testing.T) {
	c := newLoaded(t, 120)
	c.LoadMore()

	c.ToggleGenre("Jazz")
	assert.Equal(t, 50, c.PageLimit())
	assert.Equal(t, 40, c.Total())

	c.LoadMore()
	c.SetQuery("album 1")
	assert.Equal(t, 50, c.PageLimit())
}

func TestToggleGenre(t *testing.T) {
	c := newLoaded(t, 9)

	c.ToggleGenre("Jazz")
	assert.Equal(t, []string{"Jazz"}, c.SelectedGenres())
	assert.Equal(t, 3, c.Total())

	c.ToggleGenre("Rock")
	assert.Equal(t, 6, c.Total())
	assert.True(t, c.GenreSelected("Rock"))

	c.ToggleGenre("Jazz")
	assert.Equal(t, []string{"Rock"}, c.SelectedGenres())
	assert.Equal(t, 3, c.Total())

	c.ToggleGenre("  ")
	assert.Equal(t, []string{"Rock"}, c.SelectedGenres())
}

func TestReset(t *testing.T) {
	c := newLoaded(t, 9)
	c.ApplyFilter("artist 00", filter.NewGenreSet("Jazz"))
	require.Equal(t, 1, c.Total())

	c.Reset()

	assert.Equal(t, 9, c.Total())
	assert.Empty(t, c.Query())
	assert.Empty(t, c.SelectedGenres())
}

func TestFilteredIsSubsequence(t *testing.T) {
	c := newLoaded(t, 30)
	c.ApplyFilter("1", filter.NewGenreSet("Rock", "Folk"))

	all := c.Records()
	j := 0
	for i := 0; i < c.Total(); i++ {
		idx, err := c.RecordIndexOfFiltered(i)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, j)
		assert.True(t, all[idx].Equal(c.Filtered()[i]))
		j = idx + 1
	}
}

func TestUnloadedIsNoop(t *testing.T) {
	c := New(collation.MustNew("en"), 10)

	c.ApplyFilter("x", filter.NewGenreSet("Jazz"))
	assert.False(t, c.LoadMore())
	assert.Empty(t, c.Window())
	assert.Empty(t, c.Query())
	assert.ErrorIs(t, c.SetCurrent(0), ErrNotLoaded)
	_, err := c.RecordIndexOfFiltered(0)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestCurrentItem(t *testing.T) {
	c := newLoaded(t, 5)

	require.NoError(t, c.SetCurrent(2))
	rec, ok := c.CurrentItem()
	require.True(t, ok)
	assert.Equal(t, "Artist 002", rec.Artist)
	assert.Equal(t, 2, c.CurrentIndex())

	c.ApplyFilter("artist 004", nil)
	_, ok = c.CurrentItem()
	assert.True(t, ok, "open record need not be in the filtered view")

	assert.ErrorIs(t, c.SetCurrent(5), ErrOutOfRange)
	assert.ErrorIs(t, c.SetCurrent(-1), ErrOutOfRange)

	c.ClearCurrent()
	_, ok = c.CurrentItem()
	assert.False(t, ok)
}

func TestIndexOf(t *testing.T) {
	c := newLoaded(t, 5)
	records := c.Records()

	assert.Equal(t, 3, c.IndexOf(records[3]))
	assert.Equal(t, -1, c.IndexOf(model.NewRecord("nobody", "", "", "", "", nil)))
}

func TestRecordsAreCopies(t *testing.T) {
	src := makeRecords(2)
	c := New(collation.MustNew("en"), 10)
	c.Populate(src)

	src[0] = model.NewRecord("changed", "", "", "", "", nil)
	out := c.Records()
	out[1] = model.NewRecord("changed", "", "", "", "", nil)

	assert.Equal(t, "Artist 000", c.Records()[0].Artist)
	assert.Equal(t, "Artist 001", c.Records()[1].Artist)
}

func TestCountLine(t *testing.T) {
	c := newLoaded(t, 1204)
	assert.Equal(t, "1,204 albums, showing 50", c.CountLine())

	c.ApplyFilter("album 1203", nil)
	assert.Equal(t, "1 albums, showing 1", c.CountLine())
}
