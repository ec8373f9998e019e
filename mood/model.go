package mood

import (
	"time"

	"github.com/skillsenselab/moodvoice/database"
)

// Entry is the persisted mood record, unique per (user_id, date).
type Entry struct {
	database.BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_date"`
	MoodLevel int       `gorm:"not null"`
	// Tags is CSV-encoded in storage; the store translates to/from []string.
	Tags  string `gorm:"type:text"`
	Notes string `gorm:"type:text"`
}

// TableName sets the GORM table name.
func (Entry) TableName() string { return "moods" }

// Record is the outward-facing shape of a mood entry.
type Record struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Date      string   `json:"date"`
	MoodLevel int      `json:"moodLevel"`
	Tags      []string `json:"tags"`
	Notes     string   `json:"notes"`
}

// ToRecord converts the persisted entry to its outward-facing shape.
func (e *Entry) ToRecord() *Record {
	return &Record{
		ID:        e.ID.String(),
		UserID:    e.UserID,
		Date:      e.Date.Format("2006-01-02"),
		MoodLevel: e.MoodLevel,
		Tags:      decodeTags(e.Tags),
		Notes:     e.Notes,
	}
}
