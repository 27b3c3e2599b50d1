package cardcycle

import "time"

// monthLabelLayout is the single human-readable "Month Year" display form.
const monthLabelLayout = "January 2006"

// StatementPeriod is the date range of purchases grouped into one bill.
type StatementPeriod struct {
	// Start and End bound the period, inclusive. Start is one day after
	// the previous closing date; End is the next closing date at or after
	// the reference date.
	Start time.Time
	End   time.Time

	// ReferenceLabel is the "Month Year" label of the month End falls in.
	ReferenceLabel string

	// DaysRemaining counts whole days from the reference date to End,
	// never negative.
	DaysRemaining int
}

// StatementPeriodFor computes the statement period containing ref under
// the default calendar bounds. Pure: identical inputs always produce an
// identical period. Invalid configuration switches to the approximate
// fallback period instead of erroring, so the result is always usable.
func StatementPeriodFor(cfg AccountConfig, ref time.Time) StatementPeriod {
	p, _ := statementPeriod(NewCalendar(), cfg, ref)
	return p
}

// statementPeriod reports whether the fallback path was taken alongside
// the period itself.
func statementPeriod(cal Calendar, cfg AccountConfig, ref time.Time) (StatementPeriod, bool) {
	r := midnightUTC(ref)

	if err := cfg.Validate(); err != nil {
		return fallbackPeriod(cfg, r), true
	}

	prevClose, err := cal.PreviousOccurrence(r, cfg.ClosingDay)
	if err != nil {
		return fallbackPeriod(cfg, r), true
	}
	nextClose, err := cal.NextOccurrence(prevClose, cfg.ClosingDay)
	if err != nil {
		return fallbackPeriod(cfg, r), true
	}

	end := nextClose
	days := daysBetween(r, end)
	if days < 0 {
		days = 0
	}

	return StatementPeriod{
		Start:          prevClose.AddDate(0, 0, 1),
		End:            end,
		ReferenceLabel: end.Format(monthLabelLayout),
		DaysRemaining:  days,
	}, false
}

// fallbackPeriod trades precision for guaranteed termination: simple month
// arithmetic with the closing day clamped into range. Its output may
// diverge from the primary algorithm at month and leap-year boundaries;
// that divergence is tolerated. ref must already be midnight UTC.
func fallbackPeriod(cfg AccountConfig, ref time.Time) StatementPeriod {
	closing := clampDayRange(cfg.ClosingDay)
	y, m, d := ref.Date()

	endMonth := m
	if d > closing {
		endMonth++
	}
	end := DateWithClampedDay(y, endMonth, closing)
	start := AddMonths(end, -1).AddDate(0, 0, 1)

	days := daysBetween(ref, end)
	if days < 0 {
		days = 0
	}

	return StatementPeriod{
		Start:          start,
		End:            end,
		ReferenceLabel: end.Format(monthLabelLayout),
		DaysRemaining:  days,
	}
}
