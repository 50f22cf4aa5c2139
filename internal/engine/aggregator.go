package engine

import (
	"fmt"
	"math"
	"sort"

	"scentboard/internal/models"
)

// Aggregations are pure: they read a View, return a summary struct, and
// touch no shared state. Every ranking carries secondary and tertiary sort
// keys so equal primary values still order deterministically, and every
// function returns empty (not nil, not an error) summaries on a zero-row
// view. Missing numeric values (NaN) are excluded from numeric aggregates.

// Histogram geometry: fixed 0.25-wide bins over the 0-5 rating scale, so
// bin labels stay comparable across filter changes.
const (
	histLo    = 0.0
	histHi    = 5.0
	histWidth = 0.25
)

// --- OVERVIEW ---

// Summary computes the dashboard header metrics for a view.
func Summary(v View) models.SummaryData {
	out := models.SummaryData{TotalFragrances: v.Len()}
	if v.cs == nil || v.Len() == 0 {
		return out
	}

	seenBrand := make([]bool, len(v.cs.BrandDict))
	seenCountry := make([]bool, len(v.cs.CountryDict))
	var sum float64
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if b := v.cs.BrandIDs[r]; !seenBrand[b] && v.cs.BrandDict[b] != "" {
			seenBrand[b] = true
			out.UniqueBrands++
		}
		if c := v.cs.CountryIDs[r]; !seenCountry[c] && v.cs.CountryDict[c] != "" {
			seenCountry[c] = true
			out.UniqueCountries++
		}
		if v.HasRating(i) {
			out.RatedCount++
			sum += v.Rating(i)
		}
	}
	if out.RatedCount > 0 {
		out.AvgRating = round2(sum / float64(out.RatedCount))
	}
	return out
}

// Overview computes the first dashboard tab: rating histogram, gender
// breakdown, and the (rating, reviews) scatter series.
func Overview(v View) models.OverviewData {
	out := models.OverviewData{
		Summary:   Summary(v),
		Histogram: make([]models.HistogramBin, 0),
		Genders:   make([]models.LabelCount, 0),
		Scatter:   make([]models.ScatterPoint, 0),
	}
	if v.cs == nil || v.Len() == 0 {
		return out
	}

	nBins := int((histHi - histLo) / histWidth)
	bins := make([]int, nBins)
	genderCounts := make([]int, len(v.cs.GenderDict))

	for i := 0; i < v.Len(); i++ {
		genderCounts[v.cs.GenderIDs[v.Row(i)]]++

		if !v.HasRating(i) {
			continue
		}
		r := v.Rating(i)
		b := int((r - histLo) / histWidth)
		if b < 0 {
			b = 0
		}
		if b >= nBins {
			b = nBins - 1
		}
		bins[b]++

		if reviews := v.Reviews(i); !math.IsNaN(reviews) {
			out.Scatter = append(out.Scatter, models.ScatterPoint{Rating: r, Reviews: reviews})
		}
	}

	// Trim empty bins at both edges, keep interior gaps.
	lo, hi := 0, nBins
	for lo < hi && bins[lo] == 0 {
		lo++
	}
	for hi > lo && bins[hi-1] == 0 {
		hi--
	}
	for b := lo; b < hi; b++ {
		from := histLo + float64(b)*histWidth
		to := from + histWidth
		out.Histogram = append(out.Histogram, models.HistogramBin{
			Label: fmt.Sprintf("%.2f-%.2f", from, to),
			From:  from,
			To:    to,
			Count: bins[b],
		})
	}

	for id, c := range genderCounts {
		if c > 0 && v.cs.GenderDict[id] != "" {
			out.Genders = append(out.Genders, models.LabelCount{Label: v.cs.GenderDict[id], Count: c})
		}
	}
	sort.Slice(out.Genders, func(i, j int) bool {
		if out.Genders[i].Count != out.Genders[j].Count {
			return out.Genders[i].Count > out.Genders[j].Count
		}
		return out.Genders[i].Label < out.Genders[j].Label
	})

	return out
}

// --- RATINGS ---

// Ratings computes descriptive statistics over rating values plus the
// top-N ranked record lists.
func Ratings(v View, topN int) models.RatingsData {
	out := models.RatingsData{
		TopRated:     make([]models.RankedFragrance, 0),
		MostReviewed: make([]models.RankedFragrance, 0),
	}
	if v.cs == nil || v.Len() == 0 {
		return out
	}

	vals := make([]float64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.HasRating(i) {
			vals = append(vals, v.Rating(i))
		}
	}
	out.Stats = describe(vals)

	// Highest rated: rating desc, reviews desc, name asc.
	out.TopRated = rankRecords(v, topN, func(i int) (float64, float64, bool) {
		return v.Rating(i), v.Reviews(i), v.HasRating(i)
	})
	// Most reviewed: reviews desc, rating desc, name asc.
	out.MostReviewed = rankRecords(v, topN, func(i int) (float64, float64, bool) {
		reviews := v.Reviews(i)
		return reviews, v.Rating(i), !math.IsNaN(reviews)
	})
	return out
}

// describe computes count/mean/median/stddev/min/max over vals.
func describe(vals []float64) models.RatingStats {
	s := models.RatingStats{Count: len(vals)}
	if s.Count == 0 {
		return s
	}

	s.Min, s.Max = vals[0], vals[0]
	var sum float64
	for _, x := range vals {
		sum += x
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	s.Mean = sum / float64(s.Count)

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := s.Count / 2
	if s.Count%2 == 1 {
		s.Median = sorted[mid]
	} else {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	}

	if s.Count > 1 {
		var sq float64
		for _, x := range vals {
			d := x - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(s.Count-1))
	}

	s.Mean = round2(s.Mean)
	s.Median = round2(s.Median)
	s.StdDev = round2(s.StdDev)
	return s
}

// rankRecords builds a top-N record list. key returns (primary, secondary,
// ok) for a view position; rows with ok=false are excluded. Ties on the
// primary key fall back to the secondary key (missing secondary sorts
// last), then to name ascending.
func rankRecords(v View, topN int, key func(i int) (float64, float64, bool)) []models.RankedFragrance {
	type entry struct {
		primary, secondary float64
		name               string
		idx                int
	}
	entries := make([]entry, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		p, s, ok := key(i)
		if !ok {
			continue
		}
		if math.IsNaN(s) {
			s = -1 // missing tie-break key sorts below any real count
		}
		entries = append(entries, entry{primary: p, secondary: s, name: v.Name(i), idx: i})
	}

	sort.Slice(entries, func(a, b int) bool {
		if entries[a].primary != entries[b].primary {
			return entries[a].primary > entries[b].primary
		}
		if entries[a].secondary != entries[b].secondary {
			return entries[a].secondary > entries[b].secondary
		}
		return entries[a].name < entries[b].name
	})
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	out := make([]models.RankedFragrance, 0, len(entries))
	for _, e := range entries {
		rf := models.RankedFragrance{Name: e.name, Brand: v.Brand(e.idx)}
		if v.HasRating(e.idx) {
			rf.Rating = v.Rating(e.idx)
		}
		if revs := v.Reviews(e.idx); !math.IsNaN(revs) {
			rf.Reviews = int(revs)
		}
		out = append(out, rf)
	}
	return out
}

// --- BRANDS / GEOGRAPHY ---

// Brands groups the view by brand: record count and mean rating per brand,
// ranked as "most popular" (count desc) and "highest rated" (mean desc,
// restricted to brands with at least minSample rated records).
func Brands(v View, topN, minSample int) models.BrandsData {
	if v.cs == nil {
		return models.BrandsData{
			MostPopular:  make([]models.GroupStat, 0),
			HighestRated: make([]models.GroupStat, 0),
		}
	}
	popular, rated := groupStats(v, v.cs.BrandIDs, v.cs.BrandDict, topN, minSample)
	return models.BrandsData{MostPopular: popular, HighestRated: rated}
}

// Geography groups the view by country, with the same ranking pair.
func Geography(v View, topN, minSample int) models.GeographyData {
	if v.cs == nil {
		return models.GeographyData{
			Countries:    make([]models.GroupStat, 0),
			HighestRated: make([]models.GroupStat, 0),
		}
	}
	counts, rated := groupStats(v, v.cs.CountryIDs, v.cs.CountryDict, topN, minSample)
	return models.GeographyData{Countries: counts, HighestRated: rated}
}

// groupStats accumulates per-group counts and rating sums into arrays sized
// by the dictionary, then builds the two sorted rankings. byCount orders by
// count desc / name asc; byRating keeps groups with >= minSample rated
// records and orders by mean desc / count desc / name asc.
func groupStats(v View, ids []int32, dictionary []string, topN, minSample int) (byCount, byRating []models.GroupStat) {
	counts := make([]int, len(dictionary))
	ratedN := make([]int, len(dictionary))
	sums := make([]float64, len(dictionary))

	for i := 0; i < v.Len(); i++ {
		g := ids[v.Row(i)]
		counts[g]++
		if v.HasRating(i) {
			ratedN[g]++
			sums[g] += v.Rating(i)
		}
	}

	stats := make([]models.GroupStat, 0, len(dictionary))
	for g, c := range counts {
		if c == 0 || dictionary[g] == "" {
			continue
		}
		gs := models.GroupStat{Name: dictionary[g], Count: c, RatedCount: ratedN[g]}
		if ratedN[g] > 0 {
			gs.AvgRating = round2(sums[g] / float64(ratedN[g]))
		}
		stats = append(stats, gs)
	}

	byCount = append(make([]models.GroupStat, 0, len(stats)), stats...)
	sort.Slice(byCount, func(i, j int) bool {
		if byCount[i].Count != byCount[j].Count {
			return byCount[i].Count > byCount[j].Count
		}
		return byCount[i].Name < byCount[j].Name
	})
	byCount = truncGroups(byCount, topN)

	if minSample < 1 {
		minSample = 1
	}
	byRating = make([]models.GroupStat, 0, len(stats))
	for _, gs := range stats {
		if gs.RatedCount >= minSample {
			byRating = append(byRating, gs)
		}
	}
	sort.Slice(byRating, func(i, j int) bool {
		if byRating[i].AvgRating != byRating[j].AvgRating {
			return byRating[i].AvgRating > byRating[j].AvgRating
		}
		if byRating[i].Count != byRating[j].Count {
			return byRating[i].Count > byRating[j].Count
		}
		return byRating[i].Name < byRating[j].Name
	})
	byRating = truncGroups(byRating, topN)

	return byCount, byRating
}

func truncGroups(stats []models.GroupStat, topN int) []models.GroupStat {
	if topN > 0 && len(stats) > topN {
		return stats[:topN]
	}
	return stats
}

// --- NOTES ---

// Notes computes token frequency rankings for all four note layers.
func Notes(v View, topN int) models.NotesData {
	return models.NotesData{
		Top:         noteFrequencies(v, TopNotes, topN),
		Middle:      noteFrequencies(v, MiddleNotes, topN),
		Base:        noteFrequencies(v, BaseNotes, topN),
		MainAccords: noteFrequencies(v, MainAccords, topN),
	}
}

// noteFrequencies counts token occurrences for one layer across the view,
// sorted by frequency desc with alphabetical tie-break.
func noteFrequencies(v View, layer NoteLayer, topN int) []models.NoteFrequency {
	out := make([]models.NoteFrequency, 0)
	if v.cs == nil || v.Len() == 0 {
		return out
	}

	counts := make([]int, len(v.cs.Notes[layer].Dict))
	for i := 0; i < v.Len(); i++ {
		for _, id := range v.NoteTokens(layer, i) {
			counts[id]++
		}
	}

	for id, c := range counts {
		if c > 0 {
			out = append(out, models.NoteFrequency{Note: v.cs.Notes[layer].Dict[id], Count: c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Note < out[j].Note
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// --- FACETS ---

// Facets lists the distinct filterable values, sorted, with blank labels
// dropped. Computed from the dictionaries so casing matches the data.
func Facets(cs *ColumnStore) models.FacetsData {
	return models.FacetsData{
		Brands:    sortedLabels(cs.BrandDict),
		Countries: sortedLabels(cs.CountryDict),
		Genders:   sortedLabels(cs.GenderDict),
	}
}

func sortedLabels(dictionary []string) []string {
	out := make([]string, 0, len(dictionary))
	for _, label := range dictionary {
		if label != "" {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
