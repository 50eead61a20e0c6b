package alarm

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one scheduled alarm. Entries are never mutated after creation.
type Entry struct {
	// ID uniquely identifies the entry inside a registry.
	ID string
	// ScheduledAt is the moment the alarm fires, at second precision.
	ScheduledAt time.Time
	// Label is ScheduledAt formatted as HH:MM:SS.
	Label string
}

// NewEntry schedules the next occurrence of t relative to now.
func NewEntry(now time.Time, t TimeOfDay) Entry {
	scheduledAt := t.Next(now)

	return Entry{
		ID:          uuid.NewString(),
		ScheduledAt: scheduledAt,
		Label:       scheduledAt.Format(LabelLayout),
	}
}

// DueAt reports whether the entry fires at now, comparing whole seconds.
func (e Entry) DueAt(now time.Time) bool {
	return e.ScheduledAt.Truncate(time.Second).Equal(now.Truncate(time.Second))
}
