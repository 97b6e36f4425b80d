package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/store"
)

type fakeProfileStore struct {
	rows       map[uuid.UUID]*store.ProfileRow
	getErr     error
	upsertErr  error
	upsertCnt  int
	lastUpsert *store.ProfileRow
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{rows: make(map[uuid.UUID]*store.ProfileRow)}
}

func (f *fakeProfileStore) GetProfile(_ context.Context, readerID uuid.UUID) (*store.ProfileRow, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rows[readerID], nil
}

func (f *fakeProfileStore) UpsertProfile(_ context.Context, row *store.ProfileRow) error {
	f.upsertCnt++
	f.lastUpsert = row
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[row.ReaderID] = row
	return nil
}

func TestProfileForReaderLazyCreate(t *testing.T) {
	fs := newFakeProfileStore()
	r := NewResolver(fs, discardLogger())
	readerID := uuid.New()

	got := r.ProfileForReader(context.Background(), readerID)
	if got != DefaultProfile() {
		t.Errorf("expected default profile, got %+v", got)
	}
	if fs.upsertCnt != 1 {
		t.Errorf("expected one lazy upsert, got %d", fs.upsertCnt)
	}
	if fs.lastUpsert.ReaderID != readerID {
		t.Error("persisted row keyed to wrong reader")
	}
	if fs.lastUpsert.Enjoyment != "0.3" {
		t.Errorf("expected persisted default '0.3', got %q", fs.lastUpsert.Enjoyment)
	}

	// Second resolution reads the persisted row, no second upsert.
	got = r.ProfileForReader(context.Background(), readerID)
	if got != DefaultProfile() {
		t.Errorf("expected default profile from stored row, got %+v", got)
	}
	if fs.upsertCnt != 1 {
		t.Errorf("expected no further upserts, got %d", fs.upsertCnt)
	}
}

func TestProfileForReaderPersistFailureIsNonFatal(t *testing.T) {
	fs := newFakeProfileStore()
	fs.upsertErr = errors.New("connection reset")
	r := NewResolver(fs, discardLogger())

	got := r.ProfileForReader(context.Background(), uuid.New())
	if got != DefaultProfile() {
		t.Errorf("persist failure must still yield the default profile, got %+v", got)
	}
}

func TestProfileForReaderReadFailureFallsBack(t *testing.T) {
	fs := newFakeProfileStore()
	fs.getErr = errors.New("timeout")
	r := NewResolver(fs, discardLogger())

	got := r.ProfileForReader(context.Background(), uuid.New())
	if got != DefaultProfile() {
		t.Errorf("read failure must resolve to the default profile, got %+v", got)
	}
	if fs.upsertCnt != 0 {
		t.Error("must not attempt a write after a failed read")
	}
}

func TestResolveRow(t *testing.T) {
	t.Run("explicit row with coercion and per-criterion fallback", func(t *testing.T) {
		row := &store.ProfileRow{
			Enjoyment:     "0.5",
			Writing:       "garbage",
			Themes:        "",
			Characters:    "0.1",
			Worldbuilding: "0.05",
		}
		p := ResolveRow(row)
		if p.Enjoyment != 0.5 {
			t.Errorf("expected 0.5, got %f", p.Enjoyment)
		}
		if p.Writing != 0.30 {
			t.Errorf("malformed writing should default to 0.30, got %f", p.Writing)
		}
		if p.Themes != 0.20 {
			t.Errorf("empty themes should default to 0.20, got %f", p.Themes)
		}
	})

	t.Run("positional row wins over weight columns", func(t *testing.T) {
		row := &store.ProfileRow{
			Enjoyment:     "0.9",
			CriteriaOrder: []string{"characters", "enjoyment"},
		}
		p := ResolveRow(row)
		if p.Characters != 0.35 || p.Enjoyment != 0.25 {
			t.Errorf("expected positional weights, got %+v", p)
		}
		if p.Writing != 0 {
			t.Errorf("criteria omitted from the order should be zero, got %f", p.Writing)
		}
	})

	t.Run("unknown names in the order are skipped", func(t *testing.T) {
		row := &store.ProfileRow{CriteriaOrder: []string{"pacing", "writing"}}
		p := ResolveRow(row)
		if p.Writing != 0.35 {
			t.Errorf("expected writing to take rank 0 after skip, got %f", p.Writing)
		}
	})
}
