package subscription_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
)

// =============================================================================
// DELIVERY DATE PROJECTION
// =============================================================================

func TestNextDeliveryDates_WeeklyPatternOverOneWeek(t *testing.T) {
	// GIVEN: Mon/Wed/Fri pattern, qty 1
	// WHEN:  Projecting 7 days from Monday 2026-01-19
	// THEN:  Exactly Mon, Wed, Fri of that week

	s := activeDaily(1)
	s.Mode = subscription.ModeWeeklyPattern
	s.WeeklyPattern = []subscription.Weekday{
		subscription.Monday, subscription.Wednesday, subscription.Friday,
	}

	got := subscription.NextDeliveryDates(s, date("2026-01-19"), 7)

	require.Len(t, got, 3)
	assert.Equal(t, "2026-01-19", got[0].String())
	assert.Equal(t, "2026-01-21", got[1].String())
	assert.Equal(t, "2026-01-23", got[2].String())
}

func TestNextDeliveryDates_MatchesResolverExactly(t *testing.T) {
	// The projection must contain exactly the dates the resolver marks
	// positive, strictly ascending, all inside [start, start+horizon).

	s := activeDaily(2)
	s.PauseIntervals = []subscription.PauseInterval{
		{Start: date("2026-02-01"), End: datePtr("2026-02-05")},
	}
	s.DayOverrides = []subscription.DateQuantity{
		{Date: date("2026-02-10"), Quantity: decimal.Zero},
	}

	start := date("2026-01-25")
	const horizon = 30
	got := subscription.NextDeliveryDates(s, start, horizon)

	end := start.AddDays(horizon)
	seen := map[string]bool{}
	for i, d := range got {
		assert.True(t, d.AfterOrEqual(start) && d.Before(end), "date %s out of range", d)
		assert.True(t, subscription.ComputeQty(d, s).IsPositive(), "date %s resolves to zero", d)
		if i > 0 {
			assert.True(t, got[i-1].Before(d), "dates not strictly ascending at %d", i)
		}
		seen[d.String()] = true
	}
	// And nothing positive was missed.
	for d, i := start, 0; i < horizon; d, i = d.AddDays(1), i+1 {
		if subscription.ComputeQty(d, s).IsPositive() {
			assert.True(t, seen[d.String()], "missed positive date %s", d)
		}
	}
}

func TestNextDeliveryDates_EmptyForNonPositiveHorizon(t *testing.T) {
	s := activeDaily(2)
	assert.Empty(t, subscription.NextDeliveryDates(s, date("2026-01-19"), 0))
	assert.Empty(t, subscription.NextDeliveryDates(s, date("2026-01-19"), -5))
}

func TestNextDeliveryDates_RestartableFromAnyDate(t *testing.T) {
	// Projections carry no state: restarting mid-range yields the suffix
	// of the longer projection.

	s := activeDaily(1)
	s.Mode = subscription.ModeWeeklyPattern
	s.WeeklyPattern = []subscription.Weekday{subscription.Tuesday, subscription.Thursday}

	full := subscription.NextDeliveryDates(s, date("2026-01-19"), 28)
	later := subscription.NextDeliveryDates(s, date("2026-01-26"), 21)

	require.True(t, len(full) > len(later))
	offset := len(full) - len(later)
	for i, d := range later {
		assert.True(t, d.Equal(full[offset+i]))
	}
}

func TestProjectDeliveries_CarriesQuantities(t *testing.T) {
	s := activeDaily(2)
	s.DayOverrides = []subscription.DateQuantity{
		{Date: date("2026-01-20"), Quantity: qty(5)},
	}

	plans := subscription.ProjectDeliveries(s, date("2026-01-19"), 3)

	require.Len(t, plans, 3)
	assert.True(t, plans[0].Quantity.Equal(qty(2)))
	assert.True(t, plans[1].Quantity.Equal(qty(5)))
	assert.True(t, plans[2].Quantity.Equal(qty(2)))
}

// =============================================================================
// PENDING IRREGULAR ENTRIES
// =============================================================================

func TestPendingIrregularEntries_CountsUnplannedDates(t *testing.T) {
	// GIVEN: An irregular plan covering 2 of 5 days, one with qty 0
	// THEN:  3 days are pending; the explicit zero entry counts as planned

	s := activeDaily(0)
	s.Mode = subscription.ModeIrregular
	s.DefaultQty = decimal.Zero
	s.IrregularList = []subscription.DateQuantity{
		{Date: date("2026-01-19"), Quantity: qty(2)},
		{Date: date("2026-01-21"), Quantity: decimal.Zero},
	}

	pending := subscription.PendingIrregularEntries(s, date("2026-01-19"), date("2026-01-23"))
	assert.Equal(t, 3, pending)
}

func TestPendingIrregularEntries_ZeroForOtherModes(t *testing.T) {
	s := activeDaily(2)
	assert.Equal(t, 0, subscription.PendingIrregularEntries(s, date("2026-01-19"), date("2026-01-30")))

	s.Mode = subscription.ModeDayByDay
	assert.Equal(t, 0, subscription.PendingIrregularEntries(s, date("2026-01-19"), date("2026-01-30")))
}

func TestPendingIrregularEntries_SingleDayRange(t *testing.T) {
	s := activeDaily(0)
	s.Mode = subscription.ModeIrregular
	s.DefaultQty = decimal.Zero

	assert.Equal(t, 1, subscription.PendingIrregularEntries(s, date("2026-01-19"), date("2026-01-19")))

	s.IrregularList = []subscription.DateQuantity{{Date: date("2026-01-19"), Quantity: qty(1)}}
	assert.Equal(t, 0, subscription.PendingIrregularEntries(s, date("2026-01-19"), date("2026-01-19")))
}

// =============================================================================
// DEMAND FORECAST
// =============================================================================

func TestForecastDemand_SumsAcrossSubscriptions(t *testing.T) {
	daily := activeDaily(2)

	weekly := activeDaily(1)
	weekly.ID = "sub-2"
	weekly.Mode = subscription.ModeWeeklyPattern
	weekly.WeeklyPattern = []subscription.Weekday{subscription.Monday}

	paused := activeDaily(9)
	paused.ID = "sub-3"
	paused.PauseIntervals = []subscription.PauseInterval{{Start: date("2026-01-01")}}

	demand := subscription.ForecastDemand(
		[]*subscription.Subscription{daily, weekly, paused},
		date("2026-01-19"), 2, // Monday and Tuesday
	)

	require.Len(t, demand, 2)

	// Monday: daily 2 + weekly 1; the paused subscription contributes nothing.
	assert.True(t, demand[0].Total.Equal(qty(3)), "monday total %s", demand[0].Total)
	assert.Equal(t, 2, demand[0].Deliveries)

	// Tuesday: daily only.
	assert.True(t, demand[1].Total.Equal(qty(2)))
	assert.Equal(t, 1, demand[1].Deliveries)
}

func TestForecastDemand_IncludesEmptyDays(t *testing.T) {
	s := activeDaily(1)
	s.Mode = subscription.ModeWeeklyPattern
	s.WeeklyPattern = []subscription.Weekday{subscription.Monday}

	demand := subscription.ForecastDemand([]*subscription.Subscription{s}, date("2026-01-19"), 7)

	require.Len(t, demand, 7)
	assert.True(t, demand[0].Total.Equal(qty(1)))
	for i := 1; i < 7; i++ {
		assert.True(t, demand[i].Total.IsZero(), "day %d should be empty", i)
		assert.Equal(t, 0, demand[i].Deliveries)
	}
}
