package scoring

// Criterion is one of the five fixed rating dimensions. The set is
// closed: every lookup in this package is an exhaustive switch, so
// adding or removing a criterion is a compile-time-checked change.
type Criterion string

const (
	CriterionEnjoyment     Criterion = "enjoyment"
	CriterionWriting       Criterion = "writing"
	CriterionThemes        Criterion = "themes"
	CriterionCharacters    Criterion = "characters"
	CriterionWorldbuilding Criterion = "worldbuilding"
)

// Criteria returns the fixed, ordered criterion set.
func Criteria() []Criterion {
	return []Criterion{
		CriterionEnjoyment,
		CriterionWriting,
		CriterionThemes,
		CriterionCharacters,
		CriterionWorldbuilding,
	}
}

// ParseCriterion maps a criterion name to its identifier.
func ParseCriterion(s string) (Criterion, bool) {
	switch Criterion(s) {
	case CriterionEnjoyment, CriterionWriting, CriterionThemes,
		CriterionCharacters, CriterionWorldbuilding:
		return Criterion(s), true
	}
	return "", false
}

// Scale describes the value domain ratings are recorded in. Midpoint and
// HalfRange define the mapping onto the bipolar [-1, +1] axis used by
// the compatibility scorer.
type Scale struct {
	Name      string
	Min       float64
	Max       float64
	Midpoint  float64
	HalfRange float64
}

// The two value domains found in the wild. Stars is canonical; thumbs is
// kept as a selectable preset rather than discarded.
var (
	ScaleStars  = Scale{Name: "stars", Min: 0, Max: 5, Midpoint: 2.5, HalfRange: 2.5}
	ScaleThumbs = Scale{Name: "thumbs", Min: -1, Max: 1, Midpoint: 0, HalfRange: 1}
)

// ScaleByName resolves a configured scale name, defaulting to stars.
func ScaleByName(name string) Scale {
	if name == ScaleThumbs.Name {
		return ScaleThumbs
	}
	return ScaleStars
}

// Bipolar maps a raw value on this scale to [-1, +1].
func (s Scale) Bipolar(v float64) float64 {
	return (v - s.Midpoint) / s.HalfRange
}
