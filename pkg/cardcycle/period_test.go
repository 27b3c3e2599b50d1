package cardcycle

import (
	"testing"
	"time"
)

func TestStatementPeriodFor(t *testing.T) {
	cfg := AccountConfig{ClosingDay: 15}

	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
		wantDays  int
	}{
		{
			name:      "before closing day",
			ref:       date(2025, time.January, 10),
			wantStart: date(2024, time.December, 16),
			wantEnd:   date(2025, time.January, 15),
			wantLabel: "January 2025",
			wantDays:  5,
		},
		{
			name:      "after closing day",
			ref:       date(2025, time.January, 20),
			wantStart: date(2025, time.January, 16),
			wantEnd:   date(2025, time.February, 15),
			wantLabel: "February 2025",
			wantDays:  26,
		},
		{
			name:      "on the closing day",
			ref:       date(2025, time.January, 15),
			wantStart: date(2025, time.January, 16),
			wantEnd:   date(2025, time.February, 15),
			wantLabel: "February 2025",
			wantDays:  31,
		},
		{
			name:      "reference equals period end minus period",
			ref:       date(2025, time.December, 20),
			wantStart: date(2025, time.December, 16),
			wantEnd:   date(2026, time.January, 15),
			wantLabel: "January 2026",
			wantDays:  26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatementPeriodFor(cfg, tt.ref)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start: got %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("end: got %v, want %v", got.End, tt.wantEnd)
			}
			if got.ReferenceLabel != tt.wantLabel {
				t.Errorf("label: got %q, want %q", got.ReferenceLabel, tt.wantLabel)
			}
			if got.DaysRemaining != tt.wantDays {
				t.Errorf("days remaining: got %d, want %d", got.DaysRemaining, tt.wantDays)
			}
		})
	}
}

func TestStatementPeriodFor_ShortMonth(t *testing.T) {
	// Closing day 29 in non-leap February ends the period on Feb 28.
	cfg := AccountConfig{ClosingDay: 29}
	got := StatementPeriodFor(cfg, date(2025, time.February, 15))

	if !got.End.Equal(date(2025, time.February, 28)) {
		t.Errorf("end: got %v, want 2025-02-28", got.End)
	}
	if !got.Start.Equal(date(2025, time.January, 30)) {
		t.Errorf("start: got %v, want 2025-01-30", got.Start)
	}
	if got.ReferenceLabel != "February 2025" {
		t.Errorf("label: got %q", got.ReferenceLabel)
	}
}

func TestStatementPeriodFor_LeapFebruary(t *testing.T) {
	cfg := AccountConfig{ClosingDay: 30}
	got := StatementPeriodFor(cfg, date(2024, time.February, 10))

	if !got.End.Equal(date(2024, time.February, 29)) {
		t.Errorf("end: got %v, want 2024-02-29", got.End)
	}
}

func TestStatementPeriodFor_StartNeverAfterEnd(t *testing.T) {
	refs := []time.Time{
		date(2025, time.January, 1),
		date(2025, time.January, 31),
		date(2025, time.February, 28),
		date(2024, time.February, 29),
		date(2025, time.June, 15),
		date(2025, time.December, 31),
	}
	for closing := 1; closing <= 31; closing++ {
		cfg := AccountConfig{ClosingDay: closing}
		for _, ref := range refs {
			p := StatementPeriodFor(cfg, ref)
			if p.Start.After(p.End) {
				t.Fatalf("closing %d ref %v: start %v after end %v", closing, ref, p.Start, p.End)
			}
			if p.DaysRemaining < 0 {
				t.Fatalf("closing %d ref %v: negative days remaining", closing, ref)
			}
		}
	}
}

func TestStatementPeriodFor_InvalidConfigFallsBack(t *testing.T) {
	// Invalid closing day must still yield a usable period.
	cfg := AccountConfig{ClosingDay: 0}
	ref := date(2025, time.January, 10)

	got, fellBack := statementPeriod(NewCalendar(), cfg, ref)
	if !fellBack {
		t.Fatal("expected fallback path")
	}

	// Fallback clamps the closing day to 1; Jan 10 is past day 1, so the
	// period closes on Feb 1.
	if !got.End.Equal(date(2025, time.February, 1)) {
		t.Errorf("end: got %v, want 2025-02-01", got.End)
	}
	if !got.Start.Equal(date(2025, time.January, 2)) {
		t.Errorf("start: got %v, want 2025-01-02", got.Start)
	}
	if got.DaysRemaining < 0 {
		t.Errorf("days remaining: got %d", got.DaysRemaining)
	}
	if got.ReferenceLabel == "" {
		t.Error("fallback period missing reference label")
	}
}

func TestStatementPeriodFor_OutOfBoundsDateFallsBack(t *testing.T) {
	// A valid config with a prehistoric reference date exercises the
	// "primary algorithm failed" branch rather than validation.
	cfg := AccountConfig{ClosingDay: 15}
	ref := date(1850, time.June, 20)

	got, fellBack := statementPeriod(NewCalendar(), cfg, ref)
	if !fellBack {
		t.Fatal("expected fallback path")
	}
	if got.Start.After(got.End) {
		t.Errorf("start %v after end %v", got.Start, got.End)
	}
	if !got.End.Equal(date(1850, time.July, 15)) {
		t.Errorf("end: got %v, want 1850-07-15", got.End)
	}
}

func TestStatementPeriodFor_TimeOfDayIgnored(t *testing.T) {
	cfg := AccountConfig{ClosingDay: 15}
	a := StatementPeriodFor(cfg, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))
	b := StatementPeriodFor(cfg, time.Date(2025, time.January, 10, 23, 59, 59, 0, time.UTC))
	if a != b {
		t.Errorf("time of day changed the period: %+v vs %+v", a, b)
	}
}
