/*
lifecycle.go - Caller-side document mutations

PURPOSE:
  The resolver computes over an immutable snapshot and never changes state.
  Pausing, resuming, stopping and appending overrides are edits to the
  document made by a caller BEFORE it is persisted; this file keeps those
  edits in one place so every caller applies them the same way.

LIFECYCLE:
  draft -> active          requires product and price (enforced by Validate)
  active <-> paused        any number of times, via pause intervals
  * -> stopped             terminal and irreversible

  Override and irregular entries are appended throughout the active/paused
  lifetime and retained after stop, for audit and history.
*/
package subscription

// BeginPause opens a new pause interval. A nil end makes the pause
// indefinite until EndPause closes it. The status flips to paused as a hint
// for UIs; suppression itself comes from the interval.
func (s *Subscription) BeginPause(start Date, end *Date) error {
	if s.Status == StatusStopped {
		return ErrSubscriptionStopped
	}
	s.PauseIntervals = append(s.PauseIntervals, PauseInterval{Start: start, End: end})
	if s.Status == StatusActive {
		s.Status = StatusPaused
	}
	return nil
}

// EndPause closes the most recent open pause interval on the given end date
// and flips a paused subscription back to active. It fails if no interval
// is open.
func (s *Subscription) EndPause(end Date) error {
	if s.Status == StatusStopped {
		return ErrSubscriptionStopped
	}
	for i := len(s.PauseIntervals) - 1; i >= 0; i-- {
		p := &s.PauseIntervals[i]
		if !p.Open() {
			continue
		}
		closeOn := end
		if closeOn.Before(p.Start) {
			closeOn = p.Start
		}
		p.End = &closeOn
		if s.Status == StatusPaused {
			s.Status = StatusActive
		}
		return nil
	}
	return ErrNoOpenPause
}

// MarkStopped makes the subscription permanently dead from stopDate on.
// Calling it again on an already stopped subscription is an error so that
// the terminal transition stays visible to callers.
func (s *Subscription) MarkStopped(stopDate Date) error {
	if s.Status == StatusStopped {
		return ErrSubscriptionStopped
	}
	s.Status = StatusStopped
	s.StopDate = &stopDate
	return nil
}

// AddDayOverride appends a per-date quantity override. Appending a second
// entry for the same date supersedes the first; history is kept.
func (s *Subscription) AddDayOverride(e DateQuantity) error {
	if s.Status == StatusStopped {
		return ErrSubscriptionStopped
	}
	s.DayOverrides = append(s.DayOverrides, e)
	return nil
}

// AddIrregularEntries appends entries to the irregular plan.
func (s *Subscription) AddIrregularEntries(entries ...DateQuantity) error {
	if s.Status == StatusStopped {
		return ErrSubscriptionStopped
	}
	s.IrregularList = append(s.IrregularList, entries...)
	return nil
}
