package service

import (
	"time"

	"daytrack/internal/errors"
	"daytrack/internal/model"
)

// Policy holds the activity lifecycle rules: how many activities may be
// created per calendar day, and for how long / how many times an activity
// stays editable after creation.
type Policy struct {
	DailyCap   int
	MaxEdits   int
	EditWindow time.Duration
}

// DefaultPolicy returns the rules the reference system enforces.
func DefaultPolicy() *Policy {
	return &Policy{
		DailyCap:   2,
		MaxEdits:   2,
		EditWindow: time.Hour,
	}
}

// DayBounds returns the half-open local calendar day [start, end) containing
// now. A creation exactly at midnight counts toward the new day.
func (p *Policy) DayBounds(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}

// CheckEditable decides whether an activity may still be mutated. The time
// window is checked first so callers get the more specific diagnostic when
// both limits have run out.
func (p *Policy) CheckEditable(activity *model.Activity, now time.Time) error {
	if now.Sub(activity.CreatedAt) >= p.EditWindow {
		return errors.ErrEditWindowExpired
	}
	if activity.EditCount >= p.MaxEdits {
		return errors.ErrEditLimitReached
	}
	return nil
}

// Editable reports whether the activity is still in its mutation window.
// Once false it never becomes true again: created_at is immutable and
// edit_count only grows.
func (p *Policy) Editable(activity *model.Activity, now time.Time) bool {
	return p.CheckEditable(activity, now) == nil
}
