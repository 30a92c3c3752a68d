package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
)

func TestBeginPause_FlipsActiveToPaused(t *testing.T) {
	s := activeDaily(2)

	require.NoError(t, s.BeginPause(date("2026-02-01"), nil))

	assert.Equal(t, subscription.StatusPaused, s.Status)
	require.Len(t, s.PauseIntervals, 1)
	assert.True(t, s.PauseIntervals[0].Open())
}

func TestEndPause_ClosesOpenIntervalAndReactivates(t *testing.T) {
	s := activeDaily(2)
	require.NoError(t, s.BeginPause(date("2026-02-01"), nil))

	require.NoError(t, s.EndPause(date("2026-02-14")))

	assert.Equal(t, subscription.StatusActive, s.Status)
	require.NotNil(t, s.PauseIntervals[0].End)
	assert.Equal(t, "2026-02-14", s.PauseIntervals[0].End.String())
}

func TestEndPause_WithoutOpenInterval(t *testing.T) {
	s := activeDaily(2)
	err := s.EndPause(date("2026-02-14"))
	assert.ErrorIs(t, err, subscription.ErrNoOpenPause)

	// A closed interval does not count as open.
	end := date("2026-02-05")
	s.PauseIntervals = []subscription.PauseInterval{{Start: date("2026-02-01"), End: &end}}
	err = s.EndPause(date("2026-02-14"))
	assert.ErrorIs(t, err, subscription.ErrNoOpenPause)
}

func TestEndPause_BeforeStartClampsToStart(t *testing.T) {
	// Resuming "before" the pause began must not create an inverted
	// interval; the pause collapses to its single start day.

	s := activeDaily(2)
	require.NoError(t, s.BeginPause(date("2026-02-10"), nil))

	require.NoError(t, s.EndPause(date("2026-02-03")))

	require.NotNil(t, s.PauseIntervals[0].End)
	assert.Equal(t, "2026-02-10", s.PauseIntervals[0].End.String())
	assert.NoError(t, subscription.Validate(s))
}

func TestEndPause_ClosesMostRecentOpenInterval(t *testing.T) {
	s := activeDaily(2)
	firstEnd := date("2026-01-10")
	s.PauseIntervals = []subscription.PauseInterval{
		{Start: date("2026-01-05"), End: &firstEnd},
		{Start: date("2026-02-01")},
	}
	s.Status = subscription.StatusPaused

	require.NoError(t, s.EndPause(date("2026-02-20")))

	assert.Equal(t, "2026-01-10", s.PauseIntervals[0].End.String(), "closed interval untouched")
	require.NotNil(t, s.PauseIntervals[1].End)
	assert.Equal(t, "2026-02-20", s.PauseIntervals[1].End.String())
}

func TestMarkStopped_IsTerminal(t *testing.T) {
	s := activeDaily(2)

	require.NoError(t, s.MarkStopped(date("2026-03-01")))
	assert.Equal(t, subscription.StatusStopped, s.Status)
	require.NotNil(t, s.StopDate)

	// Every further mutation is rejected.
	assert.ErrorIs(t, s.MarkStopped(date("2026-04-01")), subscription.ErrSubscriptionStopped)
	assert.ErrorIs(t, s.BeginPause(date("2026-04-01"), nil), subscription.ErrSubscriptionStopped)
	assert.ErrorIs(t, s.EndPause(date("2026-04-01")), subscription.ErrSubscriptionStopped)
	assert.ErrorIs(t, s.AddDayOverride(subscription.DateQuantity{Date: date("2026-04-01"), Quantity: qty(1)}), subscription.ErrSubscriptionStopped)
	assert.ErrorIs(t, s.AddIrregularEntries(subscription.DateQuantity{Date: date("2026-04-01"), Quantity: qty(1)}), subscription.ErrSubscriptionStopped)
}

func TestMarkStopped_HistoryRetained(t *testing.T) {
	// Overrides appended during the active lifetime survive the stop, for
	// audit and history.

	s := activeDaily(2)
	require.NoError(t, s.AddDayOverride(subscription.DateQuantity{Date: date("2026-02-01"), Quantity: qty(5)}))
	require.NoError(t, s.MarkStopped(date("2026-03-01")))

	assert.Len(t, s.DayOverrides, 1)
	assertQty(t, 0, date("2026-02-01"), s) // but nothing delivers anymore
}

func TestAddDayOverride_AppendsDuringPause(t *testing.T) {
	s := activeDaily(2)
	require.NoError(t, s.BeginPause(date("2026-02-01"), nil))

	// Staff can keep planning while paused; the pause still wins at
	// resolution time.
	require.NoError(t, s.AddDayOverride(subscription.DateQuantity{Date: date("2026-02-10"), Quantity: qty(4)}))
	assertQty(t, 0, date("2026-02-10"), s)

	require.NoError(t, s.EndPause(date("2026-02-05")))
	assertQty(t, 4, date("2026-02-10"), s)
}
