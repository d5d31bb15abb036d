package attraction

import (
	"cmp"
	"slices"

	"github.com/intelligrit/attraction-scout/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MaxResults bounds the ranked output.
const MaxResults = 20

// Rank sorts candidates by quality score then rating (both descending),
// breaking remaining ties by Chinese collation of the name. It keeps the
// first occurrence of each name and truncates to MaxResults. The input
// slice is not modified.
func Rank(candidates []model.AttractionRecord) []model.Attraction {
	sorted := slices.Clone(candidates)
	SortRecords(sorted)

	seen := make(map[string]bool, len(sorted))
	out := make([]model.Attraction, 0, min(len(sorted), MaxResults))
	for _, rec := range sorted {
		if seen[rec.Name] {
			continue
		}
		seen[rec.Name] = true
		out = append(out, model.Attraction{
			Name:          rec.Name,
			Rating:        rec.Rating,
			Reviews:       rec.Reviews,
			Verified:      true,
			OriginalIndex: rec.OriginalIndex,
		})
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

// SortRecords orders records in place using the ranking comparator.
func SortRecords(records []model.AttractionRecord) {
	// collators are not safe for concurrent use
	col := collate.New(language.Chinese)
	slices.SortStableFunc(records, func(a, b model.AttractionRecord) int {
		if c := cmp.Compare(b.QualityScore, a.QualityScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
