/*
summary.go - Human-readable cadence description

PURPOSE:
  Renders a subscription's configuration as display text for calendars and
  customer-facing screens. This is a read-only view over the fields; it
  never recomputes quantities beyond simple formatting and carries no state
  of its own.
*/
package subscription

import (
	"fmt"
	"strings"
)

// CalendarSummary is the display form of a subscription's cadence.
type CalendarSummary struct {
	Mode      Mode
	Status    Status
	Frequency string
	Quantity  string
}

// Summarize builds the display summary for a subscription.
func Summarize(s *Subscription) CalendarSummary {
	sum := CalendarSummary{Mode: s.Mode, Status: s.Status}

	switch s.Mode {
	case ModeFixedDaily:
		sum.Frequency = "Every day"
		sum.Quantity = fmt.Sprintf("%s per day", s.DefaultQty)

	case ModeWeeklyPattern:
		sum.Frequency = formatWeekdays(s.WeeklyPattern)
		sum.Quantity = fmt.Sprintf("%s per delivery day", s.DefaultQty)

	case ModeOneTime:
		if s.OneTime != nil {
			sum.Frequency = fmt.Sprintf("%s to %s", s.OneTime.Start, s.OneTime.End)
			if s.OneTime.Quantity != nil {
				sum.Quantity = fmt.Sprintf("%s per day", s.OneTime.Quantity)
			} else {
				sum.Quantity = fmt.Sprintf("%s per day", s.DefaultQty)
			}
		} else {
			sum.Frequency = "One-time"
		}

	case ModeDayByDay:
		sum.Frequency = "Day by day"
		sum.Quantity = fmt.Sprintf("%d days scheduled", len(s.DayOverrides))

	case ModeIrregular:
		sum.Frequency = "Irregular"
		sum.Quantity = fmt.Sprintf("%d days planned", len(s.IrregularList))
	}

	return sum
}

// formatWeekdays renders weekday abbreviations Monday-first regardless of
// the order the pattern was entered in. Duplicates collapse.
func formatWeekdays(pattern []Weekday) string {
	var present [7]bool
	for _, w := range pattern {
		if w.Valid() {
			present[w] = true
		}
	}

	var names []string
	for w := Monday; w <= Sunday; w++ {
		if present[w] {
			names = append(names, w.String())
		}
	}
	if len(names) == 0 {
		return "No delivery days"
	}
	return strings.Join(names, ", ")
}
