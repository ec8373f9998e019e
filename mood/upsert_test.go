package mood

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"
	"time"

	"github.com/skillsenselab/moodvoice/errors"
	"github.com/skillsenselab/moodvoice/logger"
)

// fakeStore keeps entries in memory, keyed by user and day.
type fakeStore struct {
	entries map[string]*Entry

	findErr   error
	createErr error
	updateErr error

	creates int
	updates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]*Entry)}
}

func storeKey(userID string, date time.Time) string {
	return userID + "|" + date.Format(DateLayout)
}

func (s *fakeStore) FindByUserDate(_ context.Context, userID string, date time.Time) (*Entry, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	entry, ok := s.entries[storeKey(userID, date)]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

func (s *fakeStore) Create(_ context.Context, entry *Entry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.creates++
	s.entries[storeKey(entry.UserID, entry.Date)] = entry
	return nil
}

func (s *fakeStore) Update(_ context.Context, entry *Entry) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates++
	s.entries[storeKey(entry.UserID, entry.Date)] = entry
	return nil
}

func newTestUpserter(store Store) *Upserter {
	u := NewUpserter(store, logger.NewDefault("test"))
	u.now = func() time.Time {
		return time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	}
	return u
}

func TestResolveDateEmptyDefaultsToToday(t *testing.T) {
	u := newTestUpserter(newFakeStore())

	got, err := u.ResolveDate("")
	if err != nil {
		t.Fatalf("ResolveDate(\"\") returned error: %v", err)
	}
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}
}

func TestResolveDateExplicit(t *testing.T) {
	u := newTestUpserter(newFakeStore())

	got, err := u.ResolveDate("2024-11-02")
	if err != nil {
		t.Fatalf("ResolveDate returned error: %v", err)
	}
	want := time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}
}

func TestResolveDateMalformed(t *testing.T) {
	u := newTestUpserter(newFakeStore())

	for _, raw := range []string{"02-11-2024", "2024/11/02", "yesterday", "2024-13-40"} {
		_, err := u.ResolveDate(raw)
		if err == nil {
			t.Errorf("ResolveDate(%q) succeeded, want rejection", raw)
			continue
		}
		if errors.CodeOf(err) != errors.ErrCodeInvalidInput {
			t.Errorf("ResolveDate(%q) error code = %v, want invalid input", raw, errors.CodeOf(err))
		}
	}
}

func TestUpsertCreatesWhenAbsent(t *testing.T) {
	store := newFakeStore()
	u := newTestUpserter(store)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	record, err := u.Upsert(context.Background(), "user-1", date, 4, []string{"joy", "calm"}, "good day")
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if store.creates != 1 || store.updates != 0 {
		t.Errorf("creates=%d updates=%d, want 1 create", store.creates, store.updates)
	}
	if record.MoodLevel != 4 || record.Notes != "good day" {
		t.Errorf("record = %+v, want mood 4 with notes", record)
	}
	if !reflect.DeepEqual(record.Tags, []string{"joy", "calm"}) {
		t.Errorf("tags = %v, want [joy calm]", record.Tags)
	}
	if record.Date != "2025-03-14" {
		t.Errorf("date = %q, want 2025-03-14", record.Date)
	}
}

func TestUpsertOverwritesExisting(t *testing.T) {
	store := newFakeStore()
	u := newTestUpserter(store)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	if _, err := u.Upsert(context.Background(), "user-1", date, 2, []string{"sad"}, "rough morning"); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	record, err := u.Upsert(context.Background(), "user-1", date, 5, []string{"joy"}, "better evening")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if store.creates != 1 || store.updates != 1 {
		t.Errorf("creates=%d updates=%d, want one of each", store.creates, store.updates)
	}
	if len(store.entries) != 1 {
		t.Errorf("entries = %d, want single row per (user, date)", len(store.entries))
	}
	if record.MoodLevel != 5 || record.Notes != "better evening" {
		t.Errorf("record = %+v, want fully replaced fields", record)
	}
	if !reflect.DeepEqual(record.Tags, []string{"joy"}) {
		t.Errorf("tags = %v, want [joy] (no merge with previous tags)", record.Tags)
	}
}

func TestUpsertDistinctDatesDistinctRows(t *testing.T) {
	store := newFakeStore()
	u := newTestUpserter(store)

	day1 := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	if _, err := u.Upsert(context.Background(), "user-1", day1, 3, nil, ""); err != nil {
		t.Fatalf("day1 upsert: %v", err)
	}
	if _, err := u.Upsert(context.Background(), "user-1", day2, 4, nil, ""); err != nil {
		t.Fatalf("day2 upsert: %v", err)
	}
	if len(store.entries) != 2 {
		t.Errorf("entries = %d, want separate rows per day", len(store.entries))
	}
}

func TestUpsertWrapsStoreFailures(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(*fakeStore)
	}{
		{"create fails", func(s *fakeStore) { s.createErr = stderrors.New("disk full") }},
		{"lookup fails", func(s *fakeStore) { s.findErr = stderrors.New("connection lost") }},
		{"update fails", func(s *fakeStore) {
			s.entries[storeKey("user-1", date)] = &Entry{UserID: "user-1", Date: date}
			s.updateErr = stderrors.New("locked")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tt.setup(store)
			u := newTestUpserter(store)

			_, err := u.Upsert(context.Background(), "user-1", date, 3, nil, "")
			if err == nil {
				t.Fatal("Upsert succeeded, want persistence error")
			}
			if errors.CodeOf(err) != errors.ErrCodePersistenceFailed {
				t.Errorf("error code = %v, want persistence failed", errors.CodeOf(err))
			}
		})
	}
}
