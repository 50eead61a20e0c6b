package alarm

import (
	"slices"
	"time"
)

// Registry holds pending alarms in insertion order.
//
// A Registry is not safe for concurrent use. It is owned by a single
// goroutine (the engine loop) and everybody else goes through it.
type Registry struct {
	// now reports the current time for scheduling new entries.
	now func() time.Time
	// entries are the pending alarms, oldest first.
	entries []Entry
}

// NewRegistry creates an empty registry. A nil now defaults to time.Now.
func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}

	return &Registry{
		now: now,
	}
}

// Add validates t and appends the next occurrence of it.
// Identical times are not deduplicated.
func (r *Registry) Add(t TimeOfDay) (Entry, error) {
	if err := t.Validate(); err != nil {
		return Entry{}, err
	}

	entry := NewEntry(r.now(), t)
	r.entries = append(r.entries, entry)

	return entry, nil
}

// Remove deletes the first entry with the given label.
// It reports whether anything was removed; an unknown label is a no-op.
func (r *Registry) Remove(label string) bool {
	idx := slices.IndexFunc(r.entries, func(e Entry) bool {
		return e.Label == label
	})
	if idx < 0 {
		return false
	}

	r.entries = slices.Delete(r.entries, idx, idx+1)

	return true
}

// RemoveSelected is the "delete selected" path: an empty selection
// yields ErrSelectionRequired, anything else behaves like Remove.
func (r *Registry) RemoveSelected(label string) (bool, error) {
	if label == "" {
		return false, ErrSelectionRequired
	}

	return r.Remove(label), nil
}

// DueEntries returns every entry scheduled for the same whole second as now.
func (r *Registry) DueEntries(now time.Time) []Entry {
	var due []Entry

	for _, e := range r.entries {
		if e.DueAt(now) {
			due = append(due, e)
		}
	}

	return due
}

// CheckAndFire calls onFire for each due entry in registry order and then
// removes the fired entries. It returns the fired entries.
func (r *Registry) CheckAndFire(now time.Time, onFire func(Entry)) []Entry {
	due := r.DueEntries(now)
	if len(due) == 0 {
		return nil
	}

	for _, e := range due {
		if onFire != nil {
			onFire(e)
		}
	}

	fired := make(map[string]struct{}, len(due))
	for _, e := range due {
		fired[e.ID] = struct{}{}
	}

	r.entries = slices.DeleteFunc(r.entries, func(e Entry) bool {
		_, ok := fired[e.ID]
		return ok
	})

	return due
}

// DropBefore removes entries scheduled before the given moment and returns them.
// The engine uses it for alarms that fell out of its catch-up window.
func (r *Registry) DropBefore(t time.Time) []Entry {
	var dropped []Entry

	r.entries = slices.DeleteFunc(r.entries, func(e Entry) bool {
		if e.ScheduledAt.Before(t) {
			dropped = append(dropped, e)
			return true
		}

		return false
	})

	return dropped
}

// List returns the labels in registry order.
func (r *Registry) List() []string {
	labels := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		labels = append(labels, e.Label)
	}

	return labels
}

// Entries returns a copy of the pending entries in registry order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Len returns the number of pending entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
