package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Expected header names, as shipped in the cleaned fragrance export.
const (
	colName        = "Perfume"
	colBrand       = "Brand"
	colCountry     = "Country"
	colGender      = "Gender"
	colRating      = "Rating Value"
	colRatingCount = "Rating Count"
	colTopNotes    = "Top"
	colMiddleNotes = "Middle"
	colBaseNotes   = "Base"
	colMainAccords = "Main Accords"
)

// fieldDelim separates CSV columns; tokenDelim separates note tokens inside
// a single field. They must differ so token lists survive quoting.
const (
	fieldDelim = ';'
	tokenDelim = ","
)

// --- DICTIONARY ENCODING ---

type dict struct {
	ids  map[string]int32
	list []string
}

func newDict() *dict { return &dict{ids: make(map[string]int32)} }

func (d *dict) encode(s string) int32 {
	if id, ok := d.ids[s]; ok {
		return id
	}
	id := int32(len(d.list))
	d.list = append(d.list, s)
	d.ids[s] = id
	return id
}

// --- HEADER MAPPING ---

type colIndex struct {
	name, brand, country, gender, rating, reviews int
	notes                                         [noteLayerCount]int
	width                                         int
}

func mapHeader(header []string) (colIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	var idx colIndex
	var missing []string
	at := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		if i >= idx.width {
			idx.width = i + 1
		}
		return i
	}

	idx.name = at(colName)
	idx.brand = at(colBrand)
	idx.country = at(colCountry)
	idx.gender = at(colGender)
	idx.rating = at(colRating)
	idx.reviews = at(colRatingCount)
	idx.notes[TopNotes] = at(colTopNotes)
	idx.notes[MiddleNotes] = at(colMiddleNotes)
	idx.notes[BaseNotes] = at(colBaseNotes)
	idx.notes[MainAccords] = at(colMainAccords)

	if len(missing) > 0 {
		return idx, &SchemaError{Missing: missing}
	}
	return idx, nil
}

// --- LOADER ---

// Load reads the semicolon-delimited dataset at path into a ColumnStore.
// Numeric cells that are blank or unparseable become NaN (missing), and
// the multi-valued note fields are tokenized and dictionary-encoded here
// so aggregations never re-split text. Returns ErrDatasetNotFound when the
// file is absent and *SchemaError when required columns are missing.
func Load(path string) (*ColumnStore, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	// The export is latin-1 encoded.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = fieldDelim
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	store := &ColumnStore{}
	brands, countries, genders := newDict(), newDict(), newDict()
	var noteDicts [noteLayerCount]*dict
	for l := range noteDicts {
		noteDicts[l] = newDict()
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if len(row) < cols.width {
			continue
		}

		store.Names = append(store.Names, strings.TrimSpace(row[cols.name]))
		store.BrandIDs = append(store.BrandIDs, brands.encode(strings.TrimSpace(row[cols.brand])))
		store.CountryIDs = append(store.CountryIDs, countries.encode(strings.TrimSpace(row[cols.country])))
		store.GenderIDs = append(store.GenderIDs, genders.encode(strings.TrimSpace(row[cols.gender])))
		store.Ratings = append(store.Ratings, parseMeasure(row[cols.rating]))
		store.RatingCounts = append(store.RatingCounts, parseMeasure(row[cols.reviews]))

		for l := NoteLayer(0); l < noteLayerCount; l++ {
			store.Notes[l].Rows = append(store.Notes[l].Rows, encodeTokens(noteDicts[l], row[cols.notes[l]]))
		}
	}

	store.BrandDict = brands.list
	store.CountryDict = countries.list
	store.GenderDict = genders.list
	for l := range noteDicts {
		store.Notes[l].Dict = noteDicts[l].list
	}

	zap.S().Infow("dataset loaded",
		"path", path, "rows", store.Len(), "elapsed", time.Since(start))
	return store, nil
}

// parseMeasure parses a numeric cell. Blank or unparseable cells are
// recorded as NaN, never zero.
func parseMeasure(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// splitTokens splits a multi-valued field into trimmed note tokens.
func splitTokens(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, tokenDelim)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func encodeTokens(d *dict, field string) []int32 {
	tokens := splitTokens(field)
	if len(tokens) == 0 {
		return nil
	}
	ids := make([]int32, len(tokens))
	for i, t := range tokens {
		ids[i] = d.encode(t)
	}
	return ids
}
