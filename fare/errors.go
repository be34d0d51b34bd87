/*
errors.go - Centralized error types for the fare engine

PURPOSE:
  All rejection outcomes in one place. Every failure here is an expected
  business outcome, not an exception: the engine reports them synchronously
  and never retries on its own.

ERROR CATEGORIES:
  1. Ride rejections - the ride is refused, nothing mutates
  2. Top-up rejections - the credit is a no-op, balance unchanged

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, fare.ErrInsufficientBalance) {
        // offer a top-up, then re-invoke as a brand-new transaction
    }

  or extract details with errors.As:

    var winErr *fare.OutsideWindowError
    if errors.As(err, &winErr) {
        fmt.Println("come back within", winErr.Window)
    }
*/
package fare

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInsufficientBalance is returned when a charge would push the
	// balance below the floor.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOutsideWindow is returned when a restricted fare class is used
	// outside its allowed weekday/hour range.
	ErrOutsideWindow = errors.New("outside eligibility window")

	// ErrMinimumSpacing is returned when a half-fare ride is attempted
	// before the cooldown since the previous one has elapsed.
	ErrMinimumSpacing = errors.New("minimum ride spacing violated")

	// ErrInvalidTopUp is returned when a top-up amount is not one of the
	// allowed denominations.
	ErrInvalidTopUp = errors.New("top-up amount not allowed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError reports a charge that would breach the floor.
type InsufficientBalanceError struct {
	CardID    int
	Balance   Money
	Requested Money
	Floor     Money
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on card %d: balance %v, fare %v, floor %v",
		e.CardID, e.Balance, e.Requested, e.Floor)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// OutsideWindowError reports a restricted-class ride outside its window.
type OutsideWindowError struct {
	Class  FareClass
	At     time.Time
	Window Window
}

func (e *OutsideWindowError) Error() string {
	return fmt.Sprintf("%s ride at %s is outside the %s window",
		e.Class, e.At.Format("Mon 15:04"), e.Window)
}

func (e *OutsideWindowError) Unwrap() error { return ErrOutsideWindow }

// SpacingError reports a half-fare ride inside the cooldown.
type SpacingError struct {
	Elapsed  time.Duration
	Required time.Duration
}

func (e *SpacingError) Error() string {
	return fmt.Sprintf("only %s since the previous ride, %s required", e.Elapsed, e.Required)
}

func (e *SpacingError) Unwrap() error { return ErrMinimumSpacing }

// InvalidTopUpError reports a top-up with a disallowed denomination.
type InvalidTopUpError struct {
	Amount Money
}

func (e *InvalidTopUpError) Error() string {
	return fmt.Sprintf("top-up of %v is not an allowed denomination", e.Amount)
}

func (e *InvalidTopUpError) Unwrap() error { return ErrInvalidTopUp }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRejection returns true if the error is one of the expected business
// rejections (as opposed to a programming or infrastructure error).
func IsRejection(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrOutsideWindow) ||
		errors.Is(err, ErrMinimumSpacing) ||
		errors.Is(err, ErrInvalidTopUp)
}
