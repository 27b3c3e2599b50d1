package cardcycle

import (
	"fmt"
	"strings"
)

// AccountConfig describes one revolving-credit account's billing days.
// The calculator holds no authoritative copy; callers supply it per
// invocation and signal cache invalidation themselves when it changes.
type AccountConfig struct {
	// EntityID scopes cache entries to one account. It plays no part in
	// the date math and may be empty when caching is not used.
	EntityID string

	// ClosingDay is the day-of-month (1-31) on which the statement closes.
	ClosingDay int

	// DueDay is the day-of-month (1-31) on which payment is owed. When
	// nil, ClosingDay+10 (wrapped into 1-31) is used. Must differ from
	// ClosingDay when set.
	DueDay *int

	// BestPurchaseDay is the day-of-month (1-31) that maximizes the grace
	// period. When nil, ClosingDay+1 (wrapped) is used.
	BestPurchaseDay *int
}

// ResolvedConfig carries the due and best-purchase days after defaulting.
type ResolvedConfig struct {
	DueDay          int
	BestPurchaseDay int
}

// Day returns a pointer to d, for the optional day-of-month fields.
func Day(d int) *int {
	return &d
}

// ValidationError aggregates every violated configuration rule so callers
// can display all of them at once.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid account config: " + strings.Join(e.Reasons, "; ")
}

// Validate checks the configured days. It returns nil or a
// *ValidationError listing ALL violated rules, not just the first.
// A due day equal to the closing day is rejected rather than adjusted.
func (c AccountConfig) Validate() error {
	var reasons []string

	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		reasons = append(reasons, fmt.Sprintf("closing day %d must be between 1 and 31", c.ClosingDay))
	}
	if c.DueDay != nil {
		if *c.DueDay < 1 || *c.DueDay > 31 {
			reasons = append(reasons, fmt.Sprintf("due day %d must be between 1 and 31", *c.DueDay))
		} else if *c.DueDay == c.ClosingDay {
			reasons = append(reasons, fmt.Sprintf("due day %d must differ from closing day", *c.DueDay))
		}
	}
	if c.BestPurchaseDay != nil && (*c.BestPurchaseDay < 1 || *c.BestPurchaseDay > 31) {
		reasons = append(reasons, fmt.Sprintf("best purchase day %d must be between 1 and 31", *c.BestPurchaseDay))
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// ResolveDefaults fills in the optional days for configurations created
// before those fields existed, without requiring a migration step.
// Existing values pass through unchanged.
func (c AccountConfig) ResolveDefaults() ResolvedConfig {
	out := ResolvedConfig{
		DueDay:          defaultDueDay(c.ClosingDay),
		BestPurchaseDay: defaultBestPurchaseDay(c.ClosingDay),
	}
	if c.DueDay != nil {
		out.DueDay = *c.DueDay
	}
	if c.BestPurchaseDay != nil {
		out.BestPurchaseDay = *c.BestPurchaseDay
	}
	return out
}

// defaultDueDay is closing+10 with the legacy wrap rule: values past 31
// subtract 31 (closing day 25 yields due day 4, not 35). This is a fixed
// offset, not a modulo over the month length.
func defaultDueDay(closingDay int) int {
	d := closingDay + 10
	if d > 31 {
		d -= 31
	}
	return d
}

// defaultBestPurchaseDay is the day right after closing, wrapping 31+1 to 1.
func defaultBestPurchaseDay(closingDay int) int {
	d := closingDay + 1
	if d > 31 {
		d = 1
	}
	return d
}

// clampDayRange forces a day-of-month into [1,31] for the fallback paths.
func clampDayRange(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}
