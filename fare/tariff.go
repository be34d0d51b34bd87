/*
tariff.go - The complete ruleset a fare network operates under

PURPOSE:
  Bundles every tunable constant of the fare system: base fares, balance
  floor and cap, top-up denominations, service windows, transfer and
  spacing limits, and the frequent-use discount tiers. Accounts hold a
  Tariff reference; the reference values match the original network.

REFERENCE VALUES (DefaultTariff):
  Urban fare            1580      Interurban fare      3000
  Balance floor         -1200     Balance cap          56000
  Transfer limit        60 min    Half-fare spacing    5 min
  Student window        Mon-Fri [6,22)
  Transfer window       Mon-Sat [7,22)
  Discount tiers        rides 30-59 x0.80, rides 60-80 x0.75

LEGACY FLAG:
  ChargeFullInsideSpacing restores the earlier network behavior of charging
  full price inside the half-fare cooldown instead of refusing the ride.
  A deployment must pick one behavior; the engine never mixes the two.

SEE ALSO:
  - tariff package: TOML loading with these values as defaults
  - discount.go:    Tier application
*/
package fare

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SERVICE WINDOW - Weekday/hour eligibility range
// =============================================================================

// Window is a weekday and hour-of-day range. Monday through Friday are
// always included; Saturday is optional; Sunday never qualifies. The hour
// range is half-open: FromHour inclusive, ToHour exclusive.
type Window struct {
	FromHour int
	ToHour   int
	Saturday bool
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	switch t.Weekday() {
	case time.Sunday:
		return false
	case time.Saturday:
		if !w.Saturday {
			return false
		}
	}
	h := t.Hour()
	return h >= w.FromHour && h < w.ToHour
}

func (w Window) String() string {
	days := "Mon-Fri"
	if w.Saturday {
		days = "Mon-Sat"
	}
	return fmt.Sprintf("%s %02d:00-%02d:00", days, w.FromHour, w.ToHour)
}

// =============================================================================
// DISCOUNT TIER - One band of the frequent-use discount
// =============================================================================

// DiscountTier applies Rate to the base fare when the ride number within
// the month (1-based, counted before the current ride is added) falls in
// [FromRide, ToRide]. Ride numbers outside every tier pay full fare.
type DiscountTier struct {
	FromRide int
	ToRide   int
	Rate     decimal.Decimal
}

// =============================================================================
// TARIFF
// =============================================================================

type Tariff struct {
	UrbanFare      Money
	InterurbanFare Money

	Floor Money
	Cap   Money

	TopUpDenominations []Money

	StudentWindow  Window
	TransferWindow Window

	TransferLimit   time.Duration
	HalfFareSpacing time.Duration

	HalfFareDailyLimit int
	FreeFareDailyLimit int

	DiscountTiers []DiscountTier

	// Legacy cooldown behavior: charge full fare instead of rejecting.
	ChargeFullInsideSpacing bool
}

// DefaultTariff returns the reference network values.
func DefaultTariff() *Tariff {
	return &Tariff{
		UrbanFare:      NewMoney(1580),
		InterurbanFare: NewMoney(3000),
		Floor:          NewMoney(-1200),
		Cap:            NewMoney(56000),
		TopUpDenominations: []Money{
			NewMoney(2000), NewMoney(3000), NewMoney(4000), NewMoney(5000),
			NewMoney(8000), NewMoney(10000), NewMoney(15000), NewMoney(20000),
			NewMoney(25000), NewMoney(30000),
		},
		StudentWindow:      Window{FromHour: 6, ToHour: 22},
		TransferWindow:     Window{FromHour: 7, ToHour: 22, Saturday: true},
		TransferLimit:      60 * time.Minute,
		HalfFareSpacing:    5 * time.Minute,
		HalfFareDailyLimit: 2,
		FreeFareDailyLimit: 2,
		DiscountTiers: []DiscountTier{
			{FromRide: 30, ToRide: 59, Rate: decimal.RequireFromString("0.80")},
			{FromRide: 60, ToRide: 80, Rate: decimal.RequireFromString("0.75")},
		},
	}
}

// AllowsTopUp reports whether the amount is an allowed denomination.
func (t *Tariff) AllowsTopUp(amount Money) bool {
	for _, d := range t.TopUpDenominations {
		if d.Equal(amount) {
			return true
		}
	}
	return false
}

// Validate checks internal consistency. Zero tariffs (from partial config
// files) should be filled from DefaultTariff before validation.
func (t *Tariff) Validate() error {
	if !t.UrbanFare.IsPositive() || !t.InterurbanFare.IsPositive() {
		return fmt.Errorf("base fares must be positive")
	}
	if t.Cap.LessThan(Money{}) || t.Floor.GreaterThan(Money{}) {
		return fmt.Errorf("floor must be <= 0 and cap >= 0")
	}
	if len(t.TopUpDenominations) == 0 {
		return fmt.Errorf("at least one top-up denomination is required")
	}
	for _, w := range []Window{t.StudentWindow, t.TransferWindow} {
		if w.FromHour < 0 || w.ToHour > 24 || w.FromHour >= w.ToHour {
			return fmt.Errorf("invalid window %s", w)
		}
	}
	if t.TransferLimit <= 0 || t.HalfFareSpacing < 0 {
		return fmt.Errorf("transfer limit must be positive and spacing non-negative")
	}
	prev := 0
	for _, tier := range t.DiscountTiers {
		if tier.FromRide <= prev || tier.ToRide < tier.FromRide {
			return fmt.Errorf("discount tiers must be ascending and non-overlapping")
		}
		if tier.Rate.IsNegative() || tier.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("discount rate %v out of [0,1]", tier.Rate)
		}
		prev = tier.ToRide
	}
	return nil
}
