package model

import "time"

// AttractionRecord is one candidate scraped from a listing page.
type AttractionRecord struct {
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	Reviews       string  `json:"reviews"`
	QualityScore  int     `json:"qualityScore"`
	OriginalIndex int     `json:"originalIndex"`
}

// Attraction is the response shape of a ranked record. Verified is always
// true on the ranking path; it does not mean the Verifier ran.
type Attraction struct {
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	Reviews       string  `json:"reviews"`
	Verified      bool    `json:"verified"`
	OriginalIndex int     `json:"originalIndex"`
}

// Verification is the outcome of a best-effort name correction.
type Verification struct {
	Exists      bool   `json:"exists"`
	CorrectName string `json:"correctName"`
}

// LookupRun is one completed pipeline run kept in the history store.
type LookupRun struct {
	ID          string       `json:"id"`
	CityKey     string       `json:"city_key"`
	City        string       `json:"city"`
	FetchedAt   time.Time    `json:"fetched_at"`
	Attractions []Attraction `json:"attractions"`
}
