package store

import (
	"testing"
)

func TestShelfKindValues(t *testing.T) {
	kinds := []ShelfKind{ShelfKindShelf, ShelfKindWishlist}
	expected := []string{"shelf", "wishlist"}
	for i, k := range kinds {
		if string(k) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], k)
		}
	}
}

func TestRatingFilterDefaults(t *testing.T) {
	f := RatingFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.BookID != nil {
		t.Error("expected nil book filter")
	}
	if f.ReaderID != nil {
		t.Error("expected nil reader filter")
	}
}

func TestProfileRowModes(t *testing.T) {
	explicit := ProfileRow{Enjoyment: "0.4"}
	if len(explicit.CriteriaOrder) != 0 {
		t.Error("expected explicit row to have no order")
	}

	positional := ProfileRow{CriteriaOrder: []string{"writing", "themes"}}
	if len(positional.CriteriaOrder) != 2 {
		t.Error("expected positional row to carry its order")
	}
}
