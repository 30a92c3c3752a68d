package subscription_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
)

func TestSummarize_FixedDaily(t *testing.T) {
	sum := subscription.Summarize(activeDaily(2))

	assert.Equal(t, subscription.ModeFixedDaily, sum.Mode)
	assert.Equal(t, subscription.StatusActive, sum.Status)
	assert.Equal(t, "Every day", sum.Frequency)
	assert.Equal(t, "2 per day", sum.Quantity)
}

func TestSummarize_WeeklyPatternMondayFirstRegardlessOfInputOrder(t *testing.T) {
	s := activeDaily(1)
	s.Mode = subscription.ModeWeeklyPattern
	s.WeeklyPattern = []subscription.Weekday{
		subscription.Sunday, subscription.Wednesday, subscription.Monday,
	}

	sum := subscription.Summarize(s)
	assert.Equal(t, "Mon, Wed, Sun", sum.Frequency)
}

func TestSummarize_WeeklyPatternCollapsesDuplicates(t *testing.T) {
	s := activeDaily(1)
	s.Mode = subscription.ModeWeeklyPattern
	s.WeeklyPattern = []subscription.Weekday{
		subscription.Friday, subscription.Friday, subscription.Monday,
	}

	sum := subscription.Summarize(s)
	assert.Equal(t, "Mon, Fri", sum.Frequency)
}

func TestSummarize_OneTimeRendersWindow(t *testing.T) {
	s := activeDaily(2)
	s.Mode = subscription.ModeOneTime
	s.OneTime = &subscription.OneTimeWindow{
		Start:    date("2026-01-19"),
		End:      date("2026-01-25"),
		Quantity: qtyPtr(4),
	}

	sum := subscription.Summarize(s)
	assert.Equal(t, "2026-01-19 to 2026-01-25", sum.Frequency)
	assert.Equal(t, "4 per day", sum.Quantity)
}

func TestSummarize_OneTimeFallsBackToDefaultQty(t *testing.T) {
	s := activeDaily(2)
	s.Mode = subscription.ModeOneTime
	s.OneTime = &subscription.OneTimeWindow{
		Start: date("2026-01-19"),
		End:   date("2026-01-25"),
	}

	sum := subscription.Summarize(s)
	assert.Equal(t, "2 per day", sum.Quantity)
}

func TestSummarize_DayByDayAndIrregularShowEntryCounts(t *testing.T) {
	s := activeDaily(0)
	s.Mode = subscription.ModeDayByDay
	s.DefaultQty = decimal.Zero
	s.DayOverrides = []subscription.DateQuantity{
		{Date: date("2026-01-19"), Quantity: qty(1)},
		{Date: date("2026-01-22"), Quantity: qty(2)},
	}

	sum := subscription.Summarize(s)
	assert.Equal(t, "Day by day", sum.Frequency)
	assert.Equal(t, "2 days scheduled", sum.Quantity)

	s.Mode = subscription.ModeIrregular
	s.IrregularList = []subscription.DateQuantity{
		{Date: date("2026-01-19"), Quantity: qty(1)},
	}
	sum = subscription.Summarize(s)
	assert.Equal(t, "Irregular", sum.Frequency)
	assert.Equal(t, "1 days planned", sum.Quantity)
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	s := activeDaily(1)
	s.Mode = subscription.ModeWeeklyPattern
	s.WeeklyPattern = []subscription.Weekday{subscription.Friday, subscription.Monday}

	subscription.Summarize(s)
	assert.Equal(t, subscription.Friday, s.WeeklyPattern[0], "input order must be preserved")
}
