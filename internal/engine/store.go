package engine

import "math"

// NoteLayer identifies one of the four multi-valued note fields.
type NoteLayer int

const (
	TopNotes NoteLayer = iota
	MiddleNotes
	BaseNotes
	MainAccords

	noteLayerCount
)

// NoteColumn stores one note layer: per-row token ID lists plus the
// ID -> label dictionary. Tokens are split and encoded once at load time.
type NoteColumn struct {
	Rows [][]int32
	Dict []string
}

// ColumnStore holds the dataset in Struct-of-Arrays format. It is built
// once by Load and never mutated afterwards, so it may be shared by
// reference across requests without locking.
type ColumnStore struct {
	// Data Columns (Flat Arrays). NaN marks a missing numeric value.
	Names        []string
	Ratings      []float64
	RatingCounts []float64

	// Dictionary Encoded IDs (0..N)
	BrandIDs   []int32
	CountryIDs []int32
	GenderIDs  []int32

	// Dictionaries (ID -> String)
	BrandDict   []string
	CountryDict []string
	GenderDict  []string

	Notes [noteLayerCount]NoteColumn
}

func (cs *ColumnStore) Len() int { return len(cs.Names) }

// View is an ordered subset of a ColumnStore. rows holds source row
// indices; a nil rows means the full store. Views never copy column data.
type View struct {
	cs   *ColumnStore
	rows []int
}

// NewView returns a view over the whole store.
func NewView(cs *ColumnStore) View { return View{cs: cs} }

func (v View) Len() int {
	if v.cs == nil {
		return 0
	}
	if v.rows == nil {
		return v.cs.Len()
	}
	return len(v.rows)
}

// Row maps a view position to its source row index.
func (v View) Row(i int) int {
	if v.rows == nil {
		return i
	}
	return v.rows[i]
}

func (v View) Name(i int) string     { return v.cs.Names[v.Row(i)] }
func (v View) Brand(i int) string    { return v.cs.BrandDict[v.cs.BrandIDs[v.Row(i)]] }
func (v View) Country(i int) string  { return v.cs.CountryDict[v.cs.CountryIDs[v.Row(i)]] }
func (v View) Gender(i int) string   { return v.cs.GenderDict[v.cs.GenderIDs[v.Row(i)]] }
func (v View) Rating(i int) float64  { return v.cs.Ratings[v.Row(i)] }
func (v View) Reviews(i int) float64 { return v.cs.RatingCounts[v.Row(i)] }

// HasRating reports whether row i carries a rating value.
func (v View) HasRating(i int) bool { return !math.IsNaN(v.Rating(i)) }

// NoteTokens returns the token IDs of one layer for row i.
func (v View) NoteTokens(layer NoteLayer, i int) []int32 {
	return v.cs.Notes[layer].Rows[v.Row(i)]
}
