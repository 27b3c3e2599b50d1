package cardcycle

import "time"

// PostingPreview describes when a purchase becomes payable. All fields are
// derived on demand; none are persisted.
type PostingPreview struct {
	// PostDate is the due date on which the purchase appears payable.
	PostDate time.Time

	// PostingMonthLabel is the "Month Year" label for PostDate.
	PostingMonthLabel string

	// ContainingPeriod is the statement period the purchase date itself
	// falls within, not the one it posts to.
	ContainingPeriod StatementPeriod

	// DaysToDue counts whole days between the purchase date and PostDate.
	DaysToDue int

	// IsDeferred is true when PostDate's month or year differs from the
	// purchase date's.
	IsDeferred bool
}

// PostDateFor maps a purchase date to the due date it posts to, under the
// default calendar bounds. A purchase made exactly on the closing day is
// deferred to the following cycle (the on-day rule of
// NextOccurrenceOfDay), and posting always lands in the month after the
// next closing, even when that closing is only days away.
func PostDateFor(purchase time.Time, cfg AccountConfig) time.Time {
	d, _ := postDate(NewCalendar(), purchase, cfg)
	return d
}

// PostingPreviewFor computes the full posting preview for a purchase date.
func PostingPreviewFor(purchase time.Time, cfg AccountConfig) PostingPreview {
	p, _ := postingPreview(NewCalendar(), purchase, cfg)
	return p
}

func postDate(cal Calendar, purchase time.Time, cfg AccountConfig) (time.Time, bool) {
	p := midnightUTC(purchase)

	if err := cfg.Validate(); err != nil {
		return fallbackPostDate(cal, cfg, p), true
	}

	nextClose, err := cal.NextOccurrence(p, cfg.ClosingDay)
	if err != nil {
		return fallbackPostDate(cal, cfg, p), true
	}

	// Posting lands in the month after the next closing.
	y, m, _ := nextClose.Date()
	post, err := cal.Date(y, m+1, cfg.ResolveDefaults().DueDay)
	if err != nil {
		return fallbackPostDate(cal, cfg, p), true
	}
	return post, false
}

func postingPreview(cal Calendar, purchase time.Time, cfg AccountConfig) (PostingPreview, bool) {
	p := midnightUTC(purchase)

	post, postFellBack := postDate(cal, p, cfg)
	period, periodFellBack := statementPeriod(cal, cfg, p)

	return PostingPreview{
		PostDate:          post,
		PostingMonthLabel: post.Format(monthLabelLayout),
		ContainingPeriod:  period,
		DaysToDue:         daysBetween(p, post),
		IsDeferred:        post.Month() != p.Month() || post.Year() != p.Year(),
	}, postFellBack || periodFellBack
}

// fallbackPostDate clamps the configured days into range and posts two
// months after the purchase on the due day (clamped into the target
// month). If even that lands outside the calendar bounds, the ultimate
// fallback is purchase+45 days with the day-of-month left as it falls.
// These nested fallbacks exist because this calculation runs on every
// keystroke of an interactive form and must never fail. purchase must
// already be midnight UTC.
func fallbackPostDate(cal Calendar, cfg AccountConfig, purchase time.Time) time.Time {
	closing := clampDayRange(cfg.ClosingDay)
	due := defaultDueDay(closing)
	if cfg.DueDay != nil {
		due = clampDayRange(*cfg.DueDay)
	}

	shifted, err := cal.AddMonthsChecked(purchase, 2)
	if err != nil {
		if cal.Logger != nil {
			cal.Logger.Warn("fallback post date out of calendar bounds, using 45-day shift",
				Field{"purchase", purchase},
				Field{"error", err},
			)
		}
		return purchase.AddDate(0, 0, 45)
	}

	y, m, _ := shifted.Date()
	return DateWithClampedDay(y, m, due)
}
