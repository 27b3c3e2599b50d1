package cardcycle

import "errors"

var (
	// ErrInvalidDate is returned for zero or otherwise unusable input dates
	ErrInvalidDate = errors.New("invalid date")

	// ErrYearOutOfRange is returned when a date falls outside the
	// calendar's configured year bounds
	ErrYearOutOfRange = errors.New("year out of range")

	// ErrInvalidDayOfMonth is returned for day-of-month values outside 1-31
	ErrInvalidDayOfMonth = errors.New("invalid day of month")

	// ErrInvalidYearBounds is returned by NewCalculator for inverted bounds
	ErrInvalidYearBounds = errors.New("invalid year bounds")
)
