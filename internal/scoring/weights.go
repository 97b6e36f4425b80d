package scoring

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// WeightProfile maps each criterion to a non-negative weight. Weights
// are used as-is: explicit profiles are never renormalized, even when
// they do not sum to 1.
type WeightProfile struct {
	Enjoyment     float64 `json:"enjoyment"`
	Writing       float64 `json:"writing"`
	Themes        float64 `json:"themes"`
	Characters    float64 `json:"characters"`
	Worldbuilding float64 `json:"worldbuilding"`
}

// DefaultProfile returns the platform-wide default weight distribution,
// applied whenever a reader has not configured anything.
func DefaultProfile() WeightProfile {
	return WeightProfile{
		Enjoyment:     0.30,
		Writing:       0.30,
		Themes:        0.20,
		Characters:    0.10,
		Worldbuilding: 0.10,
	}
}

// PositionalTable assigns weight by rank when a reader configures only
// an importance order: whichever criterion is ranked first gets 0.35,
// regardless of which criterion that is.
var PositionalTable = [5]float64{0.35, 0.25, 0.20, 0.12, 0.08}

// Weight returns the weight for one criterion.
func (p WeightProfile) Weight(c Criterion) float64 {
	switch c {
	case CriterionEnjoyment:
		return p.Enjoyment
	case CriterionWriting:
		return p.Writing
	case CriterionThemes:
		return p.Themes
	case CriterionCharacters:
		return p.Characters
	case CriterionWorldbuilding:
		return p.Worldbuilding
	}
	return 0
}

func (p *WeightProfile) setWeight(c Criterion, v float64) {
	switch c {
	case CriterionEnjoyment:
		p.Enjoyment = v
	case CriterionWriting:
		p.Writing = v
	case CriterionThemes:
		p.Themes = v
	case CriterionCharacters:
		p.Characters = v
	case CriterionWorldbuilding:
		p.Worldbuilding = v
	}
}

// Sum returns the total of all weights.
func (p WeightProfile) Sum() float64 {
	return p.Enjoyment + p.Writing + p.Themes + p.Characters + p.Worldbuilding
}

// Validate checks that no weight is negative. There is deliberately no
// sum-to-1 check: explicit profiles are accepted as supplied.
func (p WeightProfile) Validate() error {
	for _, c := range Criteria() {
		if p.Weight(c) < 0 {
			return fmt.Errorf("negative weight for %s: %f", c, p.Weight(c))
		}
	}
	return nil
}

// CoerceWeight converts a loosely typed weight value (profiles are read
// from sources that store numbers as text) to a float64. Returns false
// for anything that does not parse.
func CoerceWeight(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

// ResolveExplicit builds a profile from caller-supplied per-criterion
// weights. Each criterion that is absent or malformed falls back to its
// default value independently of the others.
func ResolveExplicit(explicit map[Criterion]any) WeightProfile {
	p := DefaultProfile()
	for _, c := range Criteria() {
		raw, ok := explicit[c]
		if !ok {
			continue
		}
		if w, ok := CoerceWeight(raw); ok {
			p.setWeight(c, w)
		}
	}
	return p
}

// ResolvePositional builds a profile from an importance order
// (most-to-least important). A criterion omitted from the order gets
// weight 0; the order need not include all five criteria.
func ResolvePositional(order []Criterion) WeightProfile {
	var p WeightProfile
	for rank, c := range order {
		if rank >= len(PositionalTable) {
			break
		}
		p.setWeight(c, PositionalTable[rank])
	}
	return p
}

// Resolve produces the effective profile for one set of inputs:
// explicit weights win over an order, an order wins over nothing, and
// nothing resolves to the default profile.
func Resolve(explicit map[Criterion]any, order []Criterion) WeightProfile {
	if len(explicit) > 0 {
		return ResolveExplicit(explicit)
	}
	if len(order) > 0 {
		return ResolvePositional(order)
	}
	return DefaultProfile()
}
