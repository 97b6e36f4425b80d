package scoring

import (
	"log/slog"
	"math"
)

// MinRatingsForCompatibility is the default floor below which a
// compatibility judgment is withheld.
const MinRatingsForCompatibility = 10

// CriterionCompat is one criterion's contribution to the comparison,
// returned for UI drill-down.
type CriterionCompat struct {
	Compatibility string  `json:"compatibility"`
	Difference    float64 `json:"difference"`
	Normalized    float64 `json:"normalized"`
}

// CompatibilityResult is the bounded, bucketed judgment between a
// subject's aggregate ratings and a viewer's weight profile. Callers
// must branch on HasEnoughRatings: below the ratings floor only
// TotalRatings, RatingsNeeded and AuthorRatings are populated.
//
// Field names are a contract with the surrounding platform.
type CompatibilityResult struct {
	HasEnoughRatings     bool                          `json:"hasEnoughRatings"`
	TotalRatings         int                           `json:"totalRatings"`
	RatingsNeeded        int                           `json:"ratingsNeeded,omitempty"`
	Overall              string                        `json:"overall,omitempty"`
	Score                int                           `json:"score"`
	NormalizedDifference float64                       `json:"normalizedDifference"`
	Criteria             map[Criterion]CriterionCompat `json:"criteria,omitempty"`
	AuthorRatings        AggregateRating               `json:"authorRatings"`
}

// Comparer computes reader/author compatibility. It is pure computation
// over data the caller already fetched; the only state is configuration.
type Comparer struct {
	scale      Scale
	minRatings int
	logger     *slog.Logger
}

// NewComparer creates a Comparer. minRatings <= 0 falls back to the
// default floor.
func NewComparer(scale Scale, minRatings int, logger *slog.Logger) *Comparer {
	if minRatings <= 0 {
		minRatings = MinRatingsForCompatibility
	}
	return &Comparer{scale: scale, minRatings: minRatings, logger: logger}
}

// Compare produces the compatibility judgment for one subject aggregate
// against one viewer profile.
//
// Each criterion is mapped onto a common bipolar axis: the subject's
// mean through the rating scale, and the viewer's 0..1 importance
// weight through w*2-1. Reusing the weight as a like/dislike polarity
// conflates importance with direction, but the bucket thresholds were
// calibrated against exactly this mapping, so it is preserved as-is.
func (cp *Comparer) Compare(subject AggregateRating, viewer WeightProfile, totalRatings int) CompatibilityResult {
	result := CompatibilityResult{
		TotalRatings:  totalRatings,
		AuthorRatings: subject,
	}

	if totalRatings < cp.minRatings {
		result.RatingsNeeded = cp.minRatings - totalRatings
		return result
	}
	result.HasEnoughRatings = true

	criteria := make(map[Criterion]CriterionCompat, len(Criteria()))
	var weightedSum, weightSum float64
	for _, c := range Criteria() {
		subjectBipolar := cp.scale.Bipolar(subject.Mean(c))
		viewerBipolar := viewer.Weight(c)*2 - 1

		difference := math.Abs(subjectBipolar - viewerBipolar)
		normalized := difference / 2

		// Criteria where both parties feel strongly, in either
		// direction, influence the overall more than near-neutral ones.
		criterionWeight := (math.Abs(subjectBipolar) + math.Abs(viewerBipolar)) / 2

		weightedSum += normalized * criterionWeight
		weightSum += criterionWeight

		label, _ := bucketize(normalized)
		criteria[c] = CriterionCompat{
			Compatibility: label,
			Difference:    difference,
			Normalized:    normalized,
		}
	}

	// No signal on any criterion means perfect compatibility by default.
	var overall float64
	if weightSum > 0 {
		overall = weightedSum / weightSum
	}

	label, score := bucketize(overall)
	result.Overall = label
	result.Score = score
	result.NormalizedDifference = overall
	result.Criteria = criteria

	if cp.logger != nil {
		cp.logger.Debug("compatibility computed",
			"normalized_difference", overall,
			"label", label,
			"total_ratings", totalRatings,
		)
	}
	return result
}

// bucketize maps a normalized difference in [0,1] to the 7-point label
// vocabulary and its integer score. Upper bounds are inclusive: exactly
// 0.02 is still "Overwhelmingly compatible".
func bucketize(normalized float64) (string, int) {
	switch {
	case normalized <= 0.02:
		return "Overwhelmingly compatible", 3
	case normalized <= 0.05:
		return "Very compatible", 2
	case normalized <= 0.10:
		return "Mostly compatible", 1
	case normalized <= 0.20:
		return "Mixed compatibility", 0
	case normalized <= 0.35:
		return "Mostly incompatible", -1
	case normalized <= 0.40:
		return "Very incompatible", -2
	default:
		return "Overwhelmingly incompatible", -3
	}
}
