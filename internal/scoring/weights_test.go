package scoring

import (
	"math"
	"testing"
)

func TestDefaultProfileSumsToOne(t *testing.T) {
	p := DefaultProfile()
	if err := p.Validate(); err != nil {
		t.Errorf("default profile invalid: %v", err)
	}
	if math.Abs(p.Sum()-1.0) > 0.001 {
		t.Errorf("default profile sums to %f, expected 1.0", p.Sum())
	}
}

func TestPositionalTableSumsToOne(t *testing.T) {
	var sum float64
	for _, w := range PositionalTable {
		sum += w
	}
	if math.Abs(sum-1.0) > 0.001 {
		t.Errorf("positional table sums to %f, expected 1.0", sum)
	}
}

func TestResolveFallback(t *testing.T) {
	// resolve() with no input, resolve({}) and the literal default
	// profile must all be identical.
	want := DefaultProfile()
	if got := Resolve(nil, nil); got != want {
		t.Errorf("Resolve(nil, nil) = %+v, want default", got)
	}
	if got := Resolve(map[Criterion]any{}, nil); got != want {
		t.Errorf("Resolve(empty, nil) = %+v, want default", got)
	}
}

func TestResolveExplicit(t *testing.T) {
	t.Run("numeric strings coerced", func(t *testing.T) {
		p := ResolveExplicit(map[Criterion]any{
			CriterionEnjoyment: "0.5",
			CriterionWriting:   0.25,
		})
		if p.Enjoyment != 0.5 {
			t.Errorf("expected 0.5, got %f", p.Enjoyment)
		}
		if p.Writing != 0.25 {
			t.Errorf("expected 0.25, got %f", p.Writing)
		}
	})

	t.Run("absent criteria fall back to defaults", func(t *testing.T) {
		p := ResolveExplicit(map[Criterion]any{CriterionThemes: 0.9})
		if p.Themes != 0.9 {
			t.Errorf("expected 0.9, got %f", p.Themes)
		}
		if p.Enjoyment != 0.30 {
			t.Errorf("expected default 0.30 for enjoyment, got %f", p.Enjoyment)
		}
		if p.Worldbuilding != 0.10 {
			t.Errorf("expected default 0.10 for worldbuilding, got %f", p.Worldbuilding)
		}
	})

	t.Run("malformed value falls back without aborting the rest", func(t *testing.T) {
		p := ResolveExplicit(map[Criterion]any{
			CriterionEnjoyment: "not-a-number",
			CriterionWriting:   "0.6",
		})
		if p.Enjoyment != 0.30 {
			t.Errorf("expected default for malformed value, got %f", p.Enjoyment)
		}
		if p.Writing != 0.6 {
			t.Errorf("expected 0.6, got %f", p.Writing)
		}
	})

	t.Run("no renormalization", func(t *testing.T) {
		p := ResolveExplicit(map[Criterion]any{
			CriterionEnjoyment:     1.0,
			CriterionWriting:       1.0,
			CriterionThemes:        1.0,
			CriterionCharacters:    1.0,
			CriterionWorldbuilding: 1.0,
		})
		if math.Abs(p.Sum()-5.0) > 1e-9 {
			t.Errorf("expected sum 5.0 untouched, got %f", p.Sum())
		}
	})
}

func TestResolvePositional(t *testing.T) {
	t.Run("rank assigns weight regardless of identity", func(t *testing.T) {
		p := ResolvePositional([]Criterion{
			CriterionWorldbuilding, CriterionCharacters, CriterionThemes,
			CriterionWriting, CriterionEnjoyment,
		})
		if p.Worldbuilding != 0.35 {
			t.Errorf("rank 0 should get 0.35, got %f", p.Worldbuilding)
		}
		if p.Enjoyment != 0.08 {
			t.Errorf("rank 4 should get 0.08, got %f", p.Enjoyment)
		}
	})

	t.Run("omitted criteria get zero", func(t *testing.T) {
		p := ResolvePositional([]Criterion{CriterionThemes, CriterionWriting})
		if p.Themes != 0.35 || p.Writing != 0.25 {
			t.Errorf("unexpected ranked weights: %+v", p)
		}
		if p.Enjoyment != 0 || p.Characters != 0 || p.Worldbuilding != 0 {
			t.Errorf("omitted criteria should be zero: %+v", p)
		}
	})
}

func TestResolvePrecedence(t *testing.T) {
	explicit := map[Criterion]any{CriterionEnjoyment: 0.7}
	order := []Criterion{CriterionWriting}

	p := Resolve(explicit, order)
	if p.Enjoyment != 0.7 {
		t.Errorf("explicit weights should win over order, got %+v", p)
	}
	if p.Writing != 0.30 {
		t.Errorf("expected default writing weight under explicit mode, got %f", p.Writing)
	}

	p = Resolve(nil, order)
	if p.Writing != 0.35 {
		t.Errorf("order alone should be positional, got %+v", p)
	}
}

func TestCoerceWeight(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 0.3, 0.3, true},
		{"int", 1, 1.0, true},
		{"numeric string", "0.12", 0.12, true},
		{"junk string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceWeight(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CoerceWeight(%v) = (%f, %v), want (%f, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseCriterion(t *testing.T) {
	for _, c := range Criteria() {
		got, ok := ParseCriterion(string(c))
		if !ok || got != c {
			t.Errorf("ParseCriterion(%q) failed", c)
		}
	}
	if _, ok := ParseCriterion("pacing"); ok {
		t.Error("expected unknown criterion to be rejected")
	}
}
