package cardcycle

import "time"

// Default year bounds accepted by the checked calendar operations.
const (
	DefaultMinYear = 1900
	DefaultMaxYear = 2100
)

// midnightUTC truncates a time to its calendar day at 00:00:00 UTC.
// All date math in this package works on midnight-UTC values.
func midnightUTC(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}

// IsLeapYear reports whether year is a Gregorian leap year:
// divisible by 4, except centuries not divisible by 400.
func IsLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}

// LastDayOfMonth returns the last valid day (28..31) of the given month.
// Uses the day-zero normalization idiom: day 0 of month+1 is the last
// day of month.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDayToMonth projects a configured day-of-month onto the given month,
// returning the last day of the month when day overshoots it. Total: never
// errors, always returns a valid day for the month.
func ClampDayToMonth(day, year int, month time.Month) int {
	if last := LastDayOfMonth(year, month); day > last {
		return last
	}
	return day
}

// DateWithClampedDay builds a midnight-UTC date, clamping day into the
// month. Month values outside 1..12 normalize across year boundaries, so
// callers can pass month+1 or month-1 directly.
func DateWithClampedDay(year int, month time.Month, day int) time.Time {
	// Normalize the year/month first so the clamp targets the right month.
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	y, m, _ := anchor.Date()
	return time.Date(y, m, ClampDayToMonth(day, y, m), 0, 0, 0, 0, time.UTC)
}

// NextOccurrenceOfDay returns the next date whose day-of-month is targetDay
// (clamped into each candidate month), strictly after any reference that
// already sits on the target day. A reference exactly on the (clamped)
// target day counts as already occurred, so the result rolls into the
// following month. This on-day rule is what defers a purchase made on the
// closing day itself to the next cycle.
func NextOccurrenceOfDay(ref time.Time, targetDay int) time.Time {
	r := midnightUTC(ref)
	y, m, d := r.Date()
	if clamped := ClampDayToMonth(targetDay, y, m); d < clamped {
		return time.Date(y, m, clamped, 0, 0, 0, 0, time.UTC)
	}
	return DateWithClampedDay(y, m+1, targetDay)
}

// PreviousOccurrenceOfDay is the backward-searching counterpart. A
// reference exactly on the (clamped) target day counts as occurred this
// month, so the reference's own month is returned in that case.
func PreviousOccurrenceOfDay(ref time.Time, targetDay int) time.Time {
	r := midnightUTC(ref)
	y, m, d := r.Date()
	if clamped := ClampDayToMonth(targetDay, y, m); d >= clamped {
		return time.Date(y, m, clamped, 0, 0, 0, 0, time.UTC)
	}
	return DateWithClampedDay(y, m-1, targetDay)
}

// AddMonths adds n calendar months (n may be negative), clamping the
// day-of-month into the resulting month. Multi-year spans and negative
// spans crossing year boundaries are handled by time.Date normalization.
func AddMonths(t time.Time, n int) time.Time {
	d := midnightUTC(t)
	y, m, day := d.Date()
	return DateWithClampedDay(y, m+time.Month(n), day)
}

// daysBetween returns the whole number of days from a to b. Both inputs
// must already be midnight-UTC values.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// Calendar performs year-bounded date arithmetic. The checked methods
// reject dates outside [MinYear, MaxYear] instead of propagating a corrupt
// date; each has a Safe counterpart that substitutes a shifted
// approximation and logs a warning, because this layer backs interactive
// calculations that must never crash on bad input.
type Calendar struct {
	MinYear int
	MaxYear int
	Logger  Logger
}

// NewCalendar returns a Calendar with the default year bounds and a noop
// logger.
func NewCalendar() Calendar {
	return Calendar{MinYear: DefaultMinYear, MaxYear: DefaultMaxYear, Logger: &NoopLogger{}}
}

// CheckDate validates that t is a usable calendar date within bounds.
func (c Calendar) CheckDate(t time.Time) error {
	if t.IsZero() {
		return ErrInvalidDate
	}
	if y := t.Year(); y < c.MinYear || y > c.MaxYear {
		return ErrYearOutOfRange
	}
	return nil
}

func (c Calendar) checkDay(day int) error {
	if day < 1 || day > 31 {
		return ErrInvalidDayOfMonth
	}
	return nil
}

// Date builds a clamped midnight-UTC date, rejecting out-of-range years
// and day-of-month values.
func (c Calendar) Date(year int, month time.Month, day int) (time.Time, error) {
	if err := c.checkDay(day); err != nil {
		return time.Time{}, err
	}
	d := DateWithClampedDay(year, month, day)
	if err := c.CheckDate(d); err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// NextOccurrence is the checked variant of NextOccurrenceOfDay. Both the
// reference and the result must fall within bounds.
func (c Calendar) NextOccurrence(ref time.Time, targetDay int) (time.Time, error) {
	if err := c.CheckDate(ref); err != nil {
		return time.Time{}, err
	}
	if err := c.checkDay(targetDay); err != nil {
		return time.Time{}, err
	}
	next := NextOccurrenceOfDay(ref, targetDay)
	if err := c.CheckDate(next); err != nil {
		return time.Time{}, err
	}
	return next, nil
}

// PreviousOccurrence is the checked variant of PreviousOccurrenceOfDay.
func (c Calendar) PreviousOccurrence(ref time.Time, targetDay int) (time.Time, error) {
	if err := c.CheckDate(ref); err != nil {
		return time.Time{}, err
	}
	if err := c.checkDay(targetDay); err != nil {
		return time.Time{}, err
	}
	prev := PreviousOccurrenceOfDay(ref, targetDay)
	if err := c.CheckDate(prev); err != nil {
		return time.Time{}, err
	}
	return prev, nil
}

// AddMonthsChecked is the checked variant of AddMonths.
func (c Calendar) AddMonthsChecked(t time.Time, n int) (time.Time, error) {
	if err := c.CheckDate(t); err != nil {
		return time.Time{}, err
	}
	out := AddMonths(t, n)
	if err := c.CheckDate(out); err != nil {
		return time.Time{}, err
	}
	return out, nil
}

// SafeNextOccurrence never fails: on error it approximates with a +30 day
// shift from the reference and logs a warning.
func (c Calendar) SafeNextOccurrence(ref time.Time, targetDay int) time.Time {
	next, err := c.NextOccurrence(ref, targetDay)
	if err == nil {
		return next
	}
	c.warn("next occurrence", ref, targetDay, err)
	return midnightUTC(ref).AddDate(0, 0, 30)
}

// SafePreviousOccurrence never fails: on error it approximates with a -30
// day shift from the reference and logs a warning.
func (c Calendar) SafePreviousOccurrence(ref time.Time, targetDay int) time.Time {
	prev, err := c.PreviousOccurrence(ref, targetDay)
	if err == nil {
		return prev
	}
	c.warn("previous occurrence", ref, targetDay, err)
	return midnightUTC(ref).AddDate(0, 0, -30)
}

// SafeAddMonths never fails: on error it approximates each month as 30
// days and logs a warning.
func (c Calendar) SafeAddMonths(t time.Time, n int) time.Time {
	out, err := c.AddMonthsChecked(t, n)
	if err == nil {
		return out
	}
	if c.Logger != nil {
		c.Logger.Warn("calendar add months failed, using 30-day approximation",
			Field{"date", t},
			Field{"months", n},
			Field{"error", err},
		)
	}
	return midnightUTC(t).AddDate(0, 0, 30*n)
}

func (c Calendar) warn(op string, ref time.Time, targetDay int, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn("calendar "+op+" failed, using 30-day approximation",
		Field{"reference", ref},
		Field{"targetDay", targetDay},
		Field{"error", err},
	)
}
