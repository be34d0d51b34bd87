/*
engine.go - Ride orchestration and top-ups

PURPOSE:
  Runs one ride attempt end to end:

    Start -> TransferCheck -> {TransferGranted | PolicyEvaluation}
          -> {Charged | Rejected}

  A granted ride (charged or transferred) emits a Ticket; a rejection
  returns an error and leaves the account untouched. There are no retries:
  the caller may re-invoke with different inputs (e.g. after a top-up) as
  a brand-new transaction.

TIME:
  The injected clock is read exactly once per attempt. Every check within
  the attempt (transfer window, policy window, spacing, period rollovers)
  sees that single instant.

SEE ALSO:
  - transfer.go: Transfer eligibility
  - policy.go:   Per-class fare computation
*/
package fare

import (
	"time"

	"github.com/google/uuid"
)

// Ride attempts one ride on the route and returns the issued ticket, or a
// rejection error with no state change.
func Ride(a *Account, route Route, clock Clock) (*Ticket, error) {
	now := clock.Now()

	if a.CanTransfer(route.Line, now) {
		a.recordRide(route.Line, now)
		return newTicket(a, route.Line, now, Money{}, true), nil
	}

	charged, err := a.class.evaluate(a, route.BaseFare, now)
	if err != nil {
		return nil, err
	}
	a.recordRide(route.Line, now)
	return newTicket(a, route.Line, now, charged, false), nil
}

// TopUp credits the account with one of the allowed denominations.
func TopUp(a *Account, amount Money) error {
	return a.Credit(amount)
}

func newTicket(a *Account, line string, now time.Time, charged Money, transfer bool) *Ticket {
	return &Ticket{
		ID:               uuid.NewString(),
		IssuedAt:         now,
		FareClass:        a.class.String(),
		Line:             line,
		Charged:          charged,
		RemainingBalance: a.balance,
		CardID:           a.id,
		Transfer:         transfer,
	}
}
