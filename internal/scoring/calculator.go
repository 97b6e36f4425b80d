package scoring

import (
	"github.com/foliolabs/folio/internal/store"
)

// AggregateRating is the derived per-criterion mean across a set of
// ratings plus one weighted overall. It is recomputed on every request
// and never persisted. HasData distinguishes "no ratings" from a real
// all-zero aggregate.
type AggregateRating struct {
	Overall       float64 `json:"overall"`
	Enjoyment     float64 `json:"enjoyment"`
	Writing       float64 `json:"writing"`
	Themes        float64 `json:"themes"`
	Characters    float64 `json:"characters"`
	Worldbuilding float64 `json:"worldbuilding"`
	RatingCount   int     `json:"rating_count"`
	HasData       bool    `json:"has_data"`
}

// Mean returns the per-criterion mean for one criterion.
func (a AggregateRating) Mean(c Criterion) float64 {
	switch c {
	case CriterionEnjoyment:
		return a.Enjoyment
	case CriterionWriting:
		return a.Writing
	case CriterionThemes:
		return a.Themes
	case CriterionCharacters:
		return a.Characters
	case CriterionWorldbuilding:
		return a.Worldbuilding
	}
	return 0
}

// CriterionValue returns one rating's raw value for one criterion.
func CriterionValue(r *store.Rating, c Criterion) float64 {
	switch c {
	case CriterionEnjoyment:
		return r.Enjoyment
	case CriterionWriting:
		return r.Writing
	case CriterionThemes:
		return r.Themes
	case CriterionCharacters:
		return r.Characters
	case CriterionWorldbuilding:
		return r.Worldbuilding
	}
	return 0
}

// ScoreOne combines one rating's five criterion values into a single
// overall score under the given profile. The result is not clamped:
// out-of-range inputs or weights that do not sum to 1 push it outside
// the nominal display range, and that is accepted behavior.
func ScoreOne(r *store.Rating, p WeightProfile) float64 {
	var total float64
	for _, c := range Criteria() {
		total += CriterionValue(r, c) * p.Weight(c)
	}
	return total
}

// StraightAverage is the unweighted arithmetic mean of the five raw
// values. It exists for contexts that must not reflect any individual
// reader's preference weighting, such as the author-facing management
// view; it is not interchangeable with ScoreOne.
func StraightAverage(r *store.Rating) float64 {
	var total float64
	for _, c := range Criteria() {
		total += CriterionValue(r, c)
	}
	return total / float64(len(Criteria()))
}

// Aggregate computes per-criterion means across the ratings, then
// weights those means into one overall score. Raw values are averaged
// first and weighted second, so the per-criterion means displayed
// alongside the overall are exactly the values that produced it.
func Aggregate(ratings []*store.Rating, p WeightProfile) AggregateRating {
	if len(ratings) == 0 {
		return AggregateRating{}
	}

	var means store.Rating
	n := float64(len(ratings))
	for _, r := range ratings {
		means.Enjoyment += r.Enjoyment
		means.Writing += r.Writing
		means.Themes += r.Themes
		means.Characters += r.Characters
		means.Worldbuilding += r.Worldbuilding
	}
	means.Enjoyment /= n
	means.Writing /= n
	means.Themes /= n
	means.Characters /= n
	means.Worldbuilding /= n

	return AggregateRating{
		Overall:       ScoreOne(&means, p),
		Enjoyment:     means.Enjoyment,
		Writing:       means.Writing,
		Themes:        means.Themes,
		Characters:    means.Characters,
		Worldbuilding: means.Worldbuilding,
		RatingCount:   len(ratings),
		HasData:       true,
	}
}

// AggregateStraight is Aggregate with the unweighted overall, for the
// objective author-facing figure.
func AggregateStraight(ratings []*store.Rating) AggregateRating {
	agg := Aggregate(ratings, DefaultProfile())
	if !agg.HasData {
		return agg
	}
	means := store.Rating{
		Enjoyment:     agg.Enjoyment,
		Writing:       agg.Writing,
		Themes:        agg.Themes,
		Characters:    agg.Characters,
		Worldbuilding: agg.Worldbuilding,
	}
	agg.Overall = StraightAverage(&means)
	return agg
}
