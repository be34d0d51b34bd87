/*
policy.go - The four fare policy algorithms

PURPOSE:
  Implements the eligibility/charge algorithm for each fare class. Every
  variant receives (account, baseFare, now) and either charges the account
  and returns the amount, or returns a rejection error with no mutation.

THE FOUR VARIANTS:
  Standard:        No window. Frequent-use discount applies (discount.go),
                   then the monthly counter advances.
  HalfFareStudent: Mon-Fri [6,22) only. Half fare for the first two rides
                   of the day, full fare after; a 5-minute minimum spacing
                   is enforced before anything is charged.
  FreeFareStudent: Same window. First two rides of the day are free; from
                   the third onward the full base fare goes through the
                   balance and can be refused at the floor.
  FullExemption:   Same window. Always free inside it.

REJECTIONS NEVER MUTATE:
  Window and spacing checks run before any charge, and counters (with
  their period keys) are read prospectively and committed only after the
  charge succeeds. A refused ride leaves balance, pending overflow and
  every counter exactly as they were - including across a month or day
  boundary, where the old period's count stays in place.

SEE ALSO:
  - discount.go: Frequent-use tier application (Standard only)
  - engine.go:   Transfer check that runs before any of this
*/
package fare

import "time"

// evaluate dispatches to the class's algorithm. Exactly one case per
// FareClass value; Standard is the zero value and the fallback. The
// restricted classes share one service window, checked here before any
// algorithm runs.
func (c FareClass) evaluate(a *Account, base Money, now time.Time) (Money, error) {
	if c.Restricted() && !a.tariff.StudentWindow.Contains(now) {
		return Money{}, &OutsideWindowError{Class: c, At: now, Window: a.tariff.StudentWindow}
	}
	switch c {
	case HalfFareStudent:
		return halfFareRide(a, base, now)
	case FreeFareStudent:
		return freeFareRide(a, base, now)
	case FullExemption:
		return exemptRide(a, base, now)
	default:
		return standardRide(a, base, now)
	}
}

// =============================================================================
// STANDARD
// =============================================================================

func standardRide(a *Account, base Money, now time.Time) (Money, error) {
	rides := a.monthlyRidesAt(now)
	amount := a.tariff.frequentUseFare(base, rides)
	if !a.charge(amount) {
		return Money{}, &InsufficientBalanceError{
			CardID: a.id, Balance: a.balance, Requested: amount, Floor: a.tariff.Floor,
		}
	}
	a.commitMonthlyRide(now, rides+1)
	return amount, nil
}

// =============================================================================
// HALF-FARE STUDENT
// =============================================================================

func halfFareRide(a *Account, base Money, now time.Time) (Money, error) {
	insideSpacing := false
	if a.hasSpacedRide {
		if elapsed := now.Sub(a.lastSpacedRide); elapsed < a.tariff.HalfFareSpacing {
			if !a.tariff.ChargeFullInsideSpacing {
				return Money{}, &SpacingError{Elapsed: elapsed, Required: a.tariff.HalfFareSpacing}
			}
			insideSpacing = true
		}
	}

	rides := a.dailyRidesAt(now)
	amount := base
	if !insideSpacing && rides < a.tariff.HalfFareDailyLimit {
		amount = base.Half()
	}

	if !a.charge(amount) {
		return Money{}, &InsufficientBalanceError{
			CardID: a.id, Balance: a.balance, Requested: amount, Floor: a.tariff.Floor,
		}
	}

	// The counter keeps advancing past the limit for record-keeping.
	a.commitDailyRides(now, rides+1)
	a.lastSpacedRide = now
	a.hasSpacedRide = true
	return amount, nil
}

// =============================================================================
// FREE-FARE STUDENT
// =============================================================================

func freeFareRide(a *Account, base Money, now time.Time) (Money, error) {
	rides := a.dailyRidesAt(now)
	if rides < a.tariff.FreeFareDailyLimit {
		a.commitDailyRides(now, rides+1)
		return Money{}, nil
	}

	// Third ride of the day onward pays full fare through the balance.
	// The counter only tracks free rides, but the day key still moves.
	if !a.charge(base) {
		return Money{}, &InsufficientBalanceError{
			CardID: a.id, Balance: a.balance, Requested: base, Floor: a.tariff.Floor,
		}
	}
	a.commitDailyRides(now, rides)
	return base, nil
}

// =============================================================================
// FULL EXEMPTION
// =============================================================================

// exemptRide always rides free; the shared window check in evaluate is
// the only thing that can refuse it.
func exemptRide(a *Account, base Money, now time.Time) (Money, error) {
	return Money{}, nil
}
