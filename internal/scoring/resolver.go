package scoring

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/store"
)

// ProfileStore is the slice of the storage layer the resolver needs.
type ProfileStore interface {
	GetProfile(ctx context.Context, readerID uuid.UUID) (*store.ProfileRow, error)
	UpsertProfile(ctx context.Context, row *store.ProfileRow) error
}

// Resolver turns a reader's stored configuration into an effective
// weight profile. Readers with no stored row get the default profile,
// and a default row is persisted on first access so later resolutions
// read an explicit row instead of re-deriving it.
type Resolver struct {
	store  ProfileStore
	logger *slog.Logger
}

func NewResolver(s ProfileStore, logger *slog.Logger) *Resolver {
	return &Resolver{store: s, logger: logger}
}

// ProfileForReader resolves the effective profile for one reader.
// It never fails: storage errors and missing rows both resolve to the
// default profile. The lazy persist of the default row is best-effort —
// the values are deterministic and re-derivable on every call, so a
// failed write is logged and swallowed.
func (r *Resolver) ProfileForReader(ctx context.Context, readerID uuid.UUID) WeightProfile {
	row, err := r.store.GetProfile(ctx, readerID)
	if err != nil {
		r.logger.Warn("profile read failed, using default", "reader_id", readerID, "error", err)
		return DefaultProfile()
	}

	if row == nil {
		if err := r.store.UpsertProfile(ctx, defaultProfileRow(readerID)); err != nil {
			r.logger.Warn("default profile persist failed", "reader_id", readerID, "error", err)
		}
		return DefaultProfile()
	}

	return ResolveRow(row)
}

// ResolveRow converts one stored row into an effective profile. A row
// with an importance order is positional; otherwise each weight column
// is coerced from text, falling back per criterion on junk values.
func ResolveRow(row *store.ProfileRow) WeightProfile {
	if len(row.CriteriaOrder) > 0 {
		var order []Criterion
		for _, name := range row.CriteriaOrder {
			if c, ok := ParseCriterion(name); ok {
				order = append(order, c)
			}
		}
		return ResolvePositional(order)
	}

	return ResolveExplicit(map[Criterion]any{
		CriterionEnjoyment:     row.Enjoyment,
		CriterionWriting:       row.Writing,
		CriterionThemes:        row.Themes,
		CriterionCharacters:    row.Characters,
		CriterionWorldbuilding: row.Worldbuilding,
	})
}

// ProfileRowFromWeights builds a storable row from an effective profile.
func ProfileRowFromWeights(readerID uuid.UUID, p WeightProfile) *store.ProfileRow {
	return &store.ProfileRow{
		ReaderID:      readerID,
		Enjoyment:     formatWeight(p.Enjoyment),
		Writing:       formatWeight(p.Writing),
		Themes:        formatWeight(p.Themes),
		Characters:    formatWeight(p.Characters),
		Worldbuilding: formatWeight(p.Worldbuilding),
	}
}

func defaultProfileRow(readerID uuid.UUID) *store.ProfileRow {
	return ProfileRowFromWeights(readerID, DefaultProfile())
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
