package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	v := NewView(newTestStore())
	s := Summary(v)

	assert.Equal(t, 3, s.TotalFragrances)
	assert.Equal(t, 2, s.UniqueBrands)
	assert.Equal(t, 2, s.UniqueCountries)
	assert.Equal(t, 3, s.RatedCount)
	assert.Equal(t, 4.0, s.AvgRating) // (4.5+4.5+3.0)/3
}

func TestOverview(t *testing.T) {
	v := NewView(newTestStore())
	o := Overview(v)

	// Histogram spans the occupied bins only: 3.00-3.25 up to 4.50-4.75.
	require.Equal(t, 7, len(o.Histogram))
	first, last := o.Histogram[0], o.Histogram[6]
	assert.Equal(t, "3.00-3.25", first.Label)
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, "4.50-4.75", last.Label)
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, 0, o.Histogram[3].Count) // interior gap kept

	require.Equal(t, 2, len(o.Genders))
	assert.Equal(t, "male", o.Genders[0].Label)
	assert.Equal(t, 2, o.Genders[0].Count)
	assert.Equal(t, "female", o.Genders[1].Label)

	require.Equal(t, 3, len(o.Scatter))
	assert.Equal(t, 4.5, o.Scatter[0].Rating)
	assert.Equal(t, 100.0, o.Scatter[0].Reviews)
}

func TestRatings(t *testing.T) {
	v := NewView(newTestStore())
	r := Ratings(v, 10)

	assert.Equal(t, 3, r.Stats.Count)
	assert.Equal(t, 4.0, r.Stats.Mean)
	assert.Equal(t, 4.5, r.Stats.Median)
	assert.Equal(t, 3.0, r.Stats.Min)
	assert.Equal(t, 4.5, r.Stats.Max)
	assert.Equal(t, 0.87, r.Stats.StdDev) // sample stddev of {4.5, 4.5, 3.0}

	// Equal ratings tie-break on review count descending.
	require.Equal(t, 3, len(r.TopRated))
	assert.Equal(t, "Noir", r.TopRated[0].Name)
	assert.Equal(t, "Lumen", r.TopRated[1].Name)
	assert.Equal(t, "Brume", r.TopRated[2].Name)
	assert.Equal(t, 100, r.TopRated[0].Reviews)

	require.Equal(t, 3, len(r.MostReviewed))
	assert.Equal(t, "Noir", r.MostReviewed[0].Name)
	assert.Equal(t, "Brume", r.MostReviewed[2].Name)
}

func TestRatingsTieBreakByName(t *testing.T) {
	cs := &ColumnStore{
		Names:        []string{"Zeta", "Alpha"},
		Ratings:      []float64{4.0, 4.0},
		RatingCounts: []float64{10, 10},
		BrandIDs:     []int32{0, 0},
		CountryIDs:   []int32{0, 0},
		GenderIDs:    []int32{0, 0},
		BrandDict:    []string{"A"},
		CountryDict:  []string{"US"},
		GenderDict:   []string{"male"},
	}
	for l := range cs.Notes {
		cs.Notes[l].Rows = make([][]int32, 2)
	}

	r := Ratings(NewView(cs), 10)
	require.Equal(t, 2, len(r.TopRated))
	assert.Equal(t, "Alpha", r.TopRated[0].Name)
	assert.Equal(t, "Zeta", r.TopRated[1].Name)
}

func TestRatingsExcludesMissingValues(t *testing.T) {
	cs := newTestStore()
	cs.Ratings[1] = math.NaN()

	r := Ratings(NewView(cs), 10)
	assert.Equal(t, 2, r.Stats.Count)
	assert.Equal(t, 3.75, r.Stats.Mean)
	// Lumen has no rating, so it drops out of the rated ranking...
	require.Equal(t, 2, len(r.TopRated))
	assert.Equal(t, "Noir", r.TopRated[0].Name)
	// ...but still counts among most reviewed.
	assert.Equal(t, 3, len(r.MostReviewed))
}

func TestRatingsTopNTruncation(t *testing.T) {
	r := Ratings(NewView(newTestStore()), 2)
	assert.Equal(t, 2, len(r.TopRated))
	assert.Equal(t, 2, len(r.MostReviewed))
}

func TestBrandsSpecScenario(t *testing.T) {
	v := NewView(newTestStore())
	b := Brands(v, 15, 1)

	require.Equal(t, 2, len(b.MostPopular))
	assert.Equal(t, "A", b.MostPopular[0].Name)
	assert.Equal(t, 2, b.MostPopular[0].Count)
	assert.Equal(t, 4.5, b.MostPopular[0].AvgRating)
	assert.Equal(t, "B", b.MostPopular[1].Name)
	assert.Equal(t, 1, b.MostPopular[1].Count)
	assert.Equal(t, 3.0, b.MostPopular[1].AvgRating)

	require.Equal(t, 2, len(b.HighestRated))
	assert.Equal(t, "A", b.HighestRated[0].Name)
}

func TestBrandsMinSampleThreshold(t *testing.T) {
	v := NewView(newTestStore())

	b := Brands(v, 15, 2)
	require.Equal(t, 1, len(b.HighestRated)) // only A has >= 2 rated records
	assert.Equal(t, "A", b.HighestRated[0].Name)

	b = Brands(v, 15, 5)
	assert.Empty(t, b.HighestRated)
	assert.Equal(t, 2, len(b.MostPopular)) // popularity ranking is unaffected
}

func TestGeography(t *testing.T) {
	v := NewView(newTestStore())
	g := Geography(v, 15, 1)

	require.Equal(t, 2, len(g.Countries))
	assert.Equal(t, "US", g.Countries[0].Name)
	assert.Equal(t, 2, g.Countries[0].Count)
	assert.Equal(t, "FR", g.Countries[1].Name)

	require.Equal(t, 2, len(g.HighestRated))
	assert.Equal(t, "US", g.HighestRated[0].Name)
	assert.Equal(t, 4.5, g.HighestRated[0].AvgRating)
}

func TestNotesFrequency(t *testing.T) {
	v := NewView(newTestStore())
	n := Notes(v, 15)

	// "Citrus, Musk, Citrus" -> {Citrus: 2, Musk: 1}
	require.Equal(t, 2, len(n.Top))
	assert.Equal(t, "Citrus", n.Top[0].Note)
	assert.Equal(t, 2, n.Top[0].Count)
	assert.Equal(t, "Musk", n.Top[1].Note)
	assert.Equal(t, 1, n.Top[1].Count)

	// Equal frequencies order alphabetically.
	require.Equal(t, 2, len(n.Middle))
	assert.Equal(t, "Amber", n.Middle[0].Note)
	assert.Equal(t, "Iris", n.Middle[1].Note)

	assert.Empty(t, n.Base)
	assert.Empty(t, n.MainAccords)
}

func TestNotesTopNTruncation(t *testing.T) {
	n := Notes(NewView(newTestStore()), 1)
	require.Equal(t, 1, len(n.Top))
	assert.Equal(t, "Citrus", n.Top[0].Note)
}

func TestAggregationsOnEmptyView(t *testing.T) {
	cs := newTestStore()
	v := Filter(cs, Selection{Brands: []string{"no-such-brand"}})
	require.Equal(t, 0, v.Len())

	s := Summary(v)
	assert.Equal(t, 0, s.TotalFragrances)
	assert.Equal(t, 0.0, s.AvgRating)

	o := Overview(v)
	assert.Empty(t, o.Histogram)
	assert.Empty(t, o.Genders)
	assert.Empty(t, o.Scatter)

	r := Ratings(v, 10)
	assert.Equal(t, 0, r.Stats.Count)
	assert.Empty(t, r.TopRated)
	assert.Empty(t, r.MostReviewed)

	b := Brands(v, 15, 5)
	assert.Empty(t, b.MostPopular)
	assert.Empty(t, b.HighestRated)

	g := Geography(v, 15, 5)
	assert.Empty(t, g.Countries)

	n := Notes(v, 15)
	assert.Empty(t, n.Top)
}

func TestFacets(t *testing.T) {
	f := Facets(newTestStore())
	assert.Equal(t, []string{"A", "B"}, f.Brands)
	assert.Equal(t, []string{"FR", "US"}, f.Countries)
	assert.Equal(t, []string{"female", "male"}, f.Genders)
}
