package models

// SummaryData is the dashboard header row: dataset-wide counts and the
// mean rating over rated records. AvgRating is 0 when RatedCount is 0.
type SummaryData struct {
	TotalFragrances int     `json:"total_fragrances"`
	UniqueBrands    int     `json:"unique_brands"`
	UniqueCountries int     `json:"unique_countries"`
	RatedCount      int     `json:"rated_count"`
	AvgRating       float64 `json:"avg_rating"`
}

type OverviewData struct {
	Summary   SummaryData    `json:"summary"`
	Histogram []HistogramBin `json:"rating_histogram"`
	Genders   []LabelCount   `json:"gender_counts"`
	Scatter   []ScatterPoint `json:"rating_scatter"`
}

// HistogramBin counts ratings in [From, To).
type HistogramBin struct {
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ScatterPoint pairs a rating with its review count. Only records carrying
// both values appear.
type ScatterPoint struct {
	Rating  float64 `json:"rating"`
	Reviews float64 `json:"reviews"`
}

type RatingsData struct {
	Stats        RatingStats       `json:"stats"`
	TopRated     []RankedFragrance `json:"top_rated"`
	MostReviewed []RankedFragrance `json:"most_reviewed"`
}

// RatingStats are descriptive statistics over non-missing rating values.
// All fields except Count are 0 when Count is 0; StdDev is the sample
// standard deviation and is 0 when Count < 2.
type RatingStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type RankedFragrance struct {
	Name    string  `json:"name"`
	Brand   string  `json:"brand"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

type BrandsData struct {
	MostPopular  []GroupStat `json:"most_popular"`
	HighestRated []GroupStat `json:"highest_rated"`
}

type GeographyData struct {
	Countries    []GroupStat `json:"countries"`
	HighestRated []GroupStat `json:"highest_rated"`
}

// GroupStat is one brand or country row. Count is total records in the
// group, RatedCount how many of those carry a rating, AvgRating the mean
// over them (0 when RatedCount is 0).
type GroupStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	RatedCount int     `json:"rated_count"`
	AvgRating  float64 `json:"avg_rating"`
}

type NotesData struct {
	Top         []NoteFrequency `json:"top_notes"`
	Middle      []NoteFrequency `json:"middle_notes"`
	Base        []NoteFrequency `json:"base_notes"`
	MainAccords []NoteFrequency `json:"main_accords"`
}

type NoteFrequency struct {
	Note  string `json:"note"`
	Count int    `json:"count"`
}

// FacetsData lists the distinct values available to the filter controls.
type FacetsData struct {
	Brands    []string `json:"brands"`
	Countries []string `json:"countries"`
	Genders   []string `json:"genders"`
}
