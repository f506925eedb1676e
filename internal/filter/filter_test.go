package filter

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/album-catalog/internal/collation"
	"github.com/handiism/album-catalog/internal/model"
)

var kindOfBlue = model.NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz", "http://x/y.jpg",
	[]string{"So What", "Freddie Freeloader"})

func TestMatchesQuery_AlbumArtistAndMiss(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"blue", true},
		{"davis", true},
		{"xyz", false},
		{"", true},
		{"  BLUE  ", true},
		{"freeloader", true},
		{"jazz", true},
		{"so wh", true},
		{"1959", false},
		{"davis kind", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := MatchesQuery(kindOfBlue, NormalizeQuery(tt.query))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesGenres(t *testing.T) {
	assert.True(t, MatchesGenres(kindOfBlue, nil))
	assert.True(t, MatchesGenres(kindOfBlue, NewGenreSet()))
	assert.True(t, MatchesGenres(kindOfBlue, NewGenreSet("Jazz", "Rock")))
	assert.False(t, MatchesGenres(kindOfBlue, NewGenreSet("Rock")))
	assert.False(t, MatchesGenres(kindOfBlue, NewGenreSet("jazz")), "facet match is exact")

	padded := model.NewRecord("a", "b", "", " Jazz ", "", nil)
	assert.True(t, MatchesGenres(padded, NewGenreSet("Jazz")))
}

func TestFilter_AndComposition(t *testing.T) {
	records := []model.Record{
		model.NewRecord("Miles Davis", "Kind of Blue", "", "Jazz", "", nil),
		model.NewRecord("Joni Mitchell", "Blue", "", "Folk", "", nil),
		model.NewRecord("Coltrane", "Giant Steps", "", "Jazz", "", nil),
	}

	got := Filter(records, "blue", NewGenreSet("Jazz"))

	require.Len(t, got, 1)
	assert.Equal(t, "Kind of Blue", got[0].Album)
}

func TestFilter_NoMatchIsEmpty(t *testing.T) {
	got := Filter([]model.Record{kindOfBlue}, "xyz", nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func randomRecords(r *rand.Rand, n int) []model.Record {
	words := []string{"blue", "red", "Kind", "giant", "steps", "so", "what", "Jazz", "rock", "Folk"}
	genres := []string{"Jazz", "Rock", "Folk", ""}
	pick := func() string { return words[r.IntN(len(words))] }

	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.NewRecord(
			fmt.Sprintf("%s %d", pick(), i),
			pick()+" "+pick(),
			"",
			genres[r.IntN(len(genres))],
			"",
			[]string{pick(), pick()},
		)
	}
	return out
}

func TestFilter_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	queries := []string{"", "blue", "o", "JAZZ", "steps", "zzz", " kind "}
	genreSets := []GenreSet{nil, NewGenreSet("Jazz"), NewGenreSet("Rock", "Folk"), NewGenreSet("None")}

	for trial := 0; trial < 20; trial++ {
		records := randomRecords(r, 50)
		for _, q := range queries {
			for _, g := range genreSets {
				once := Filter(records, q, g)
				twice := Filter(once, q, g)

				// idempotent
				require.Equal(t, once, twice)

				// subsequence in input order
				j := 0
				for _, rec := range once {
					for j < len(records) && !records[j].Equal(rec) {
						j++
					}
					require.Less(t, j, len(records), "filtered record not found in order")
					j++
				}
			}
		}
	}
}

func TestGenres(t *testing.T) {
	records := []model.Record{
		model.NewRecord("a", "", "", "rock", "", nil),
		model.NewRecord("b", "", "", " Jazz ", "", nil),
		model.NewRecord("c", "", "", "", "", nil),
		model.NewRecord("d", "", "", "Jazz", "", nil),
		model.NewRecord("e", "", "", "Blues", "", nil),
	}

	got := Genres(records, collation.MustNew("en"))

	assert.Equal(t, []string{"Blues", "Jazz", "rock"}, got)
}

func TestGenreSet(t *testing.T) {
	s := NewGenreSet(" Jazz", "", "Rock ", "Jazz")

	assert.Len(t, s, 2)
	assert.True(t, s.Has("Jazz"))
	assert.Equal(t, []string{"Jazz", "Rock"}, s.Values(collation.MustNew("en")))

	c := s.Clone()
	delete(c, "Jazz")
	assert.True(t, s.Has("Jazz"))
}
