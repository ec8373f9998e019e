package mood

import (
	"context"
	"time"

	"github.com/skillsenselab/moodvoice/errors"
	"github.com/skillsenselab/moodvoice/logger"
)

// DateLayout is the accepted wire format for explicit mood dates.
const DateLayout = "2006-01-02"

// Upserter owns create-or-update semantics for mood entries. It also owns
// the date resolution policy: explicit dates are parsed strictly, absent
// dates default to the current day.
type Upserter struct {
	store Store
	now   func() time.Time
	log   *logger.Logger
}

// NewUpserter creates an upserter over the given store.
func NewUpserter(store Store, log *logger.Logger) *Upserter {
	return &Upserter{
		store: store,
		now:   time.Now,
		log:   log.WithComponent("mood"),
	}
}

// ResolveDate parses an explicit date string or falls back to today.
// Malformed input is rejected; it is never silently replaced by the
// current date.
func (u *Upserter) ResolveDate(raw string) (time.Time, error) {
	if raw == "" {
		return dateOnly(u.now().UTC()), nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, errors.InvalidInput("invalid date format, use YYYY-MM-DD")
	}
	return dateOnly(parsed), nil
}

// Upsert creates the entry for (userID, date) or overwrites the existing
// one in place: mood level, tags, and notes are replaced wholesale, last
// write wins, no history is kept.
func (u *Upserter) Upsert(ctx context.Context, userID string, date time.Time, moodLevel int, tags []string, notes string) (*Record, error) {
	existing, err := u.store.FindByUserDate(ctx, userID, date)
	switch {
	case err == nil:
		existing.MoodLevel = moodLevel
		existing.Tags = encodeTags(tags)
		existing.Notes = notes
		if err := u.store.Update(ctx, existing); err != nil {
			return nil, errors.PersistenceFailed(err)
		}
		u.log.Debug("mood entry updated", map[string]interface{}{
			"user_id":    userID,
			"date":       date.Format(DateLayout),
			"mood_level": moodLevel,
		})
		return existing.ToRecord(), nil

	case err == ErrNotFound:
		entry := &Entry{
			UserID:    userID,
			Date:      dateOnly(date),
			MoodLevel: moodLevel,
			Tags:      encodeTags(tags),
			Notes:     notes,
		}
		if err := u.store.Create(ctx, entry); err != nil {
			return nil, errors.PersistenceFailed(err)
		}
		u.log.Debug("mood entry created", map[string]interface{}{
			"user_id":    userID,
			"date":       date.Format(DateLayout),
			"mood_level": moodLevel,
		})
		return entry.ToRecord(), nil

	default:
		return nil, errors.PersistenceFailed(err)
	}
}
