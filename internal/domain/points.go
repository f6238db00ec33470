package domain

import "time"

// Points is one day's score: how many of the three daily goals were met,
// plus free-form notes.
type Points struct {
	ID       int64   `json:"id"`
	Date     *Date   `json:"date,omitempty"`
	Exercise *int    `json:"exercise,omitempty"`
	Meals    *int    `json:"meals,omitempty"`
	Alcohol  *int    `json:"alcohol,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	User     *User   `json:"user,omitempty"`
}

func (p Points) Identity() int64 { return p.ID }

// IndexFields returns the searchable text of p keyed by field name.
// Absent values are omitted.
func (p Points) IndexFields() map[string]string {
	f := indexFields(p.ID, p.User)
	if p.Date != nil {
		f["date"] = p.Date.String()
	}
	putInt(f, "exercise", p.Exercise)
	putInt(f, "meals", p.Meals)
	putInt(f, "alcohol", p.Alcohol)
	if p.Notes != nil {
		f["notes"] = *p.Notes
	}
	return f
}

// Weight is a single weigh-in.
type Weight struct {
	ID        int64      `json:"id"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
	User      *User      `json:"user,omitempty"`
}

func (w Weight) Identity() int64 { return w.ID }

func (w Weight) IndexFields() map[string]string {
	f := indexFields(w.ID, w.User)
	putTime(f, "timestamp", w.Timestamp)
	if w.Weight != nil {
		f["weight"] = formatFloat(*w.Weight)
	}
	return f
}

// BloodPressure is a single blood pressure reading.
type BloodPressure struct {
	ID        int64      `json:"id"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Systolic  *int       `json:"systolic,omitempty"`
	Diastolic *int       `json:"diastolic,omitempty"`
	User      *User      `json:"user,omitempty"`
}

func (b BloodPressure) Identity() int64 { return b.ID }

func (b BloodPressure) IndexFields() map[string]string {
	f := indexFields(b.ID, b.User)
	putTime(f, "timestamp", b.Timestamp)
	putInt(f, "systolic", b.Systolic)
	putInt(f, "diastolic", b.Diastolic)
	return f
}

// Preferences holds a user's weekly goal and preferred weight unit.
type Preferences struct {
	ID          int64      `json:"id"`
	WeeklyGoals int        `json:"weeklyGoals"`
	WeightUnit  WeightUnit `json:"weightUnit"`
	User        *User      `json:"user,omitempty"`
}

const (
	MinWeeklyGoals = 10
	MaxWeeklyGoals = 21
)

func (p Preferences) Identity() int64 { return p.ID }

func (p Preferences) IndexFields() map[string]string {
	f := indexFields(p.ID, p.User)
	f["weeklyGoals"] = formatInt(p.WeeklyGoals)
	if p.WeightUnit != "" {
		f["weightUnit"] = p.WeightUnit.String()
	}
	return f
}

// Validate checks the constraints a stored Preferences must satisfy.
func (p Preferences) Validate() error {
	var errs []FieldError
	if p.WeeklyGoals < MinWeeklyGoals || p.WeeklyGoals > MaxWeeklyGoals {
		errs = append(errs, FieldError{Field: "weeklyGoals", Message: "must be between 10 and 21"})
	}
	if !p.WeightUnit.IsValid() {
		errs = append(errs, FieldError{Field: "weightUnit", Message: "must be LBS or KG"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
