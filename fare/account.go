/*
account.go - Card account: balance mechanics and usage counters

PURPOSE:
  Holds the mutable state of one fare card: the balance, the pending
  overflow bank, and the per-policy usage counters. All mutation goes
  through Credit (top-ups) and the internal charge path (rides); an
  account is never destroyed during a process run.

INVARIANTS:
  - Floor <= balance <= Cap after every successful operation
  - pendingOverflow >= 0
  - counters and their period keys move only when a ride is granted; a
    rejected ride in a new period leaves the old period's count in place

PENDING OVERFLOW:
  A top-up larger than the card's remaining capacity is not lost: the
  excess is banked as pending overflow and drained back into the balance
  as rides free up headroom (creditPending runs after every successful
  charge).

CONCURRENCY:
  Accounts are processed by one logical rider at a time; no locking here.
  A concurrent adaptation would serialize per account, since the
  charge/credit/transfer-update sequences must stay atomic relative to
  each other.

SEE ALSO:
  - policy.go:   Who calls the charge path and maintains which counters
  - transfer.go: The shared last-line/last-ride bookkeeping
*/
package fare

import "time"

// =============================================================================
// ACCOUNT
// =============================================================================

type Account struct {
	id     int
	class  FareClass
	tariff *Tariff

	balance         Money
	pendingOverflow Money

	// Frequent-use counter, Standard class only.
	monthlyRides int
	rideMonth    MonthKey

	// Daily usage counter, HalfFare/FreeFare classes.
	dailyRides int
	usageDay   DayKey

	// Half-fare cooldown anchor. Distinct from the shared transfer state:
	// transfers never touch it.
	lastSpacedRide time.Time
	hasSpacedRide  bool

	// Shared transfer bookkeeping, all classes.
	lastLine    string
	lastRide    time.Time
	hasLastRide bool
}

// NewAccount creates a card under the reference tariff.
func NewAccount(id int, class FareClass, initial Money) *Account {
	return NewAccountWithTariff(id, class, initial, DefaultTariff())
}

// NewAccountWithTariff creates a card bound to a specific tariff.
func NewAccountWithTariff(id int, class FareClass, initial Money, t *Tariff) *Account {
	return &Account{id: id, class: class, tariff: t, balance: initial}
}

func (a *Account) ID() int                 { return a.id }
func (a *Account) Class() FareClass        { return a.class }
func (a *Account) Balance() Money          { return a.balance }
func (a *Account) PendingOverflow() Money  { return a.pendingOverflow }
func (a *Account) MonthlyRideCount() int   { return a.monthlyRides }
func (a *Account) DailyRideCount() int     { return a.dailyRides }

// =============================================================================
// BALANCE MECHANICS
// =============================================================================

// CanCharge reports whether deducting amount keeps the balance at or
// above the floor.
func (a *Account) CanCharge(amount Money) bool {
	return a.balance.Sub(amount).GreaterOrEqual(a.tariff.Floor)
}

// charge deducts amount, then backfills freed headroom from the pending
// overflow bank. Returns false with no mutation if the floor would be
// breached.
func (a *Account) charge(amount Money) bool {
	if !a.CanCharge(amount) {
		return false
	}
	a.balance = a.balance.Sub(amount)
	a.creditPending()
	return true
}

// Credit applies a top-up. The amount must be an allowed denomination;
// anything else is rejected with no effect. A negative balance is paid
// down first, and value above the cap is banked as pending overflow.
func (a *Account) Credit(amount Money) error {
	if !a.tariff.AllowsTopUp(amount) {
		return &InvalidTopUpError{Amount: amount}
	}

	if a.balance.IsNegative() {
		effective := amount.Sub(a.balance.Abs())
		if effective.GreaterThan(a.tariff.Cap) {
			a.balance = a.tariff.Cap
			a.pendingOverflow = a.pendingOverflow.Add(effective.Sub(a.tariff.Cap))
			return nil
		}
		a.balance = effective
		return nil
	}

	if a.balance.Add(amount).GreaterThan(a.tariff.Cap) {
		headroom := a.tariff.Cap.Sub(a.balance)
		a.balance = a.tariff.Cap
		a.pendingOverflow = a.pendingOverflow.Add(amount.Sub(headroom))
		return nil
	}

	a.balance = a.balance.Add(amount)
	return nil
}

// creditPending moves banked overflow into the balance, up to the cap.
func (a *Account) creditPending() {
	if !a.pendingOverflow.IsPositive() {
		return
	}
	headroom := a.tariff.Cap.Sub(a.balance)
	if !headroom.IsPositive() {
		return
	}
	credit := a.pendingOverflow.Min(headroom)
	a.balance = a.balance.Add(credit)
	a.pendingOverflow = a.pendingOverflow.Sub(credit)
}

// =============================================================================
// PERIOD ROLLOVERS - Read prospectively, commit only on a granted ride
// =============================================================================

// monthlyRidesAt returns the frequent-use count as of the incoming
// instant: zero when the instant opens a new (year, month) period. A pure
// read; a rejected ride must leave the counter and its period key alone.
func (a *Account) monthlyRidesAt(now time.Time) int {
	if MonthOf(now) != a.rideMonth {
		return 0
	}
	return a.monthlyRides
}

// commitMonthlyRide stores the counter and its period after a granted ride.
func (a *Account) commitMonthlyRide(now time.Time, rides int) {
	a.rideMonth = MonthOf(now)
	a.monthlyRides = rides
}

// dailyRidesAt is the daily-counter analog of monthlyRidesAt.
func (a *Account) dailyRidesAt(now time.Time) int {
	if DayOf(now) != a.usageDay {
		return 0
	}
	return a.dailyRides
}

func (a *Account) commitDailyRides(now time.Time, rides int) {
	a.usageDay = DayOf(now)
	a.dailyRides = rides
}
