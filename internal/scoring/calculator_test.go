package scoring

import (
	"math"
	"testing"

	"github.com/foliolabs/folio/internal/store"
)

func starRating(enjoyment, writing, themes, characters, worldbuilding float64) *store.Rating {
	return &store.Rating{
		Enjoyment:     enjoyment,
		Writing:       writing,
		Themes:        themes,
		Characters:    characters,
		Worldbuilding: worldbuilding,
	}
}

func TestScoreOne(t *testing.T) {
	t.Run("uniform rating equals its value under normalized weights", func(t *testing.T) {
		r := starRating(4, 4, 4, 4, 4)
		got := ScoreOne(r, DefaultProfile())
		if math.Abs(got-4.0) > 1e-9 {
			t.Errorf("expected 4.0, got %f", got)
		}
	})

	t.Run("weighted sum", func(t *testing.T) {
		r := starRating(5, 0, 0, 0, 0)
		got := ScoreOne(r, DefaultProfile())
		if math.Abs(got-1.5) > 1e-9 {
			t.Errorf("expected 1.5 (5 * 0.30), got %f", got)
		}
	})

	t.Run("bounded for in-range inputs and normalized weights", func(t *testing.T) {
		ratings := []*store.Rating{
			starRating(0, 0, 0, 0, 0),
			starRating(5, 5, 5, 5, 5),
			starRating(1, 4, 2.5, 0, 5),
			starRating(3.3, 0.1, 4.9, 2, 1),
		}
		for _, r := range ratings {
			got := ScoreOne(r, DefaultProfile())
			if got < 0 || got > 5 {
				t.Errorf("score %f out of [0,5] for %+v", got, r)
			}
		}
	})

	t.Run("no clamping for out-of-range inputs", func(t *testing.T) {
		r := starRating(10, 10, 10, 10, 10)
		got := ScoreOne(r, DefaultProfile())
		if got <= 5 {
			t.Errorf("expected unclamped score above 5, got %f", got)
		}
	})

	t.Run("order changes result for a non-uniform rating", func(t *testing.T) {
		r := starRating(5, 1, 3, 2, 4)
		a := ScoreOne(r, ResolvePositional([]Criterion{
			CriterionEnjoyment, CriterionWriting, CriterionThemes,
			CriterionCharacters, CriterionWorldbuilding,
		}))
		b := ScoreOne(r, ResolvePositional([]Criterion{
			CriterionWriting, CriterionEnjoyment, CriterionThemes,
			CriterionCharacters, CriterionWorldbuilding,
		}))
		if a == b {
			t.Errorf("expected different scores for different orders, both %f", a)
		}
	})
}

func TestStraightAverage(t *testing.T) {
	r := starRating(5, 1, 3, 2, 4)
	got := StraightAverage(r)
	if math.Abs(got-3.0) > 1e-9 {
		t.Errorf("expected 3.0, got %f", got)
	}

	// The straight average must ignore weighting entirely.
	weighted := ScoreOne(r, ResolvePositional([]Criterion{CriterionEnjoyment}))
	if got == weighted {
		t.Error("straight average unexpectedly equals a weighted score")
	}
}

func TestAggregate(t *testing.T) {
	t.Run("empty input yields no-data sentinel", func(t *testing.T) {
		agg := Aggregate(nil, DefaultProfile())
		if agg.HasData {
			t.Error("expected HasData=false for empty input")
		}
		if agg.Overall != 0 || agg.RatingCount != 0 {
			t.Errorf("expected zero sentinel, got %+v", agg)
		}
		if math.IsNaN(agg.Overall) {
			t.Error("sentinel must not be NaN")
		}
	})

	t.Run("per-criterion means then weighted overall", func(t *testing.T) {
		ratings := []*store.Rating{
			starRating(5, 3, 4, 2, 1),
			starRating(3, 5, 2, 4, 3),
		}
		agg := Aggregate(ratings, DefaultProfile())
		if !agg.HasData {
			t.Fatal("expected HasData=true")
		}
		if agg.RatingCount != 2 {
			t.Errorf("expected count 2, got %d", agg.RatingCount)
		}
		if math.Abs(agg.Enjoyment-4.0) > 1e-9 {
			t.Errorf("expected enjoyment mean 4.0, got %f", agg.Enjoyment)
		}
		if math.Abs(agg.Writing-4.0) > 1e-9 {
			t.Errorf("expected writing mean 4.0, got %f", agg.Writing)
		}
		// overall = 4*0.3 + 4*0.3 + 3*0.2 + 3*0.1 + 2*0.1 = 3.5
		if math.Abs(agg.Overall-3.5) > 1e-9 {
			t.Errorf("expected overall 3.5, got %f", agg.Overall)
		}
	})

	t.Run("ten perfect ratings under default profile score 5", func(t *testing.T) {
		var ratings []*store.Rating
		for i := 0; i < 10; i++ {
			ratings = append(ratings, starRating(5, 5, 5, 5, 5))
		}
		agg := Aggregate(ratings, DefaultProfile())
		if math.Abs(agg.Overall-5.0) > 1e-9 {
			t.Errorf("expected overall 5.0, got %f", agg.Overall)
		}
	})
}

func TestAggregateStraight(t *testing.T) {
	ratings := []*store.Rating{
		starRating(5, 1, 3, 2, 4),
		starRating(5, 1, 3, 2, 4),
	}
	agg := AggregateStraight(ratings)
	if math.Abs(agg.Overall-3.0) > 1e-9 {
		t.Errorf("expected objective overall 3.0, got %f", agg.Overall)
	}

	empty := AggregateStraight(nil)
	if empty.HasData {
		t.Error("expected no-data sentinel for empty input")
	}
}
