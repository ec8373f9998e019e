package mood

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/skillsenselab/moodvoice/database"
)

// ErrNotFound is returned when no entry exists for the given key.
var ErrNotFound = stderrors.New("mood entry not found")

// Store is the persistence boundary for mood entries, keyed by
// (user_id, date). Uniqueness is enforced at the storage layer.
type Store interface {
	FindByUserDate(ctx context.Context, userID string, date time.Time) (*Entry, error)
	Create(ctx context.Context, entry *Entry) error
	Update(ctx context.Context, entry *Entry) error
}

// GormStore implements Store on the GORM database.
type GormStore struct {
	db *database.DB
}

// NewGormStore creates a GORM-backed mood store.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the moods table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&Entry{})
}

// FindByUserDate looks up the entry for (userID, date).
func (s *GormStore) FindByUserDate(ctx context.Context, userID string, date time.Time) (*Entry, error) {
	var entry Entry
	err := s.db.Gorm.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, dateOnly(date)).
		First(&entry).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new entry.
func (s *GormStore) Create(ctx context.Context, entry *Entry) error {
	entry.Date = dateOnly(entry.Date)
	return s.db.Gorm.WithContext(ctx).Create(entry).Error
}

// Update persists the mutated fields of an existing entry.
func (s *GormStore) Update(ctx context.Context, entry *Entry) error {
	entry.Date = dateOnly(entry.Date)
	return s.db.Gorm.WithContext(ctx).Save(entry).Error
}

// dateOnly truncates a timestamp to its calendar day in UTC, the key
// granularity of the moods table.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// encodeTags joins tags into the CSV form stored in the Tags column.
func encodeTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

// decodeTags splits the stored CSV back into a tag list.
func decodeTags(csv string) []string {
	if csv == "" {
		return []string{}
	}
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
