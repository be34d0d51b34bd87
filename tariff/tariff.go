/*
Package tariff provides TOML to Go tariff conversion.

PURPOSE:
  Converts TOML tariff definitions into fare.Tariff values. This enables
  network configuration without code changes - operators adjust fares,
  windows and discount tiers in a file, and the loader produces the
  validated Go struct the engine runs on.

TOML SCHEMA:
  urban_fare = 1580
  interurban_fare = 3000
  floor = -1200
  cap = 56000
  top_up_denominations = [2000, 3000, 4000, 5000, 8000, 10000, 15000, 20000, 25000, 30000]
  transfer_limit_minutes = 60
  half_fare_spacing_minutes = 5
  half_fare_daily_limit = 2
  free_fare_daily_limit = 2
  charge_full_inside_spacing = false

  [student_window]
  from_hour = 6
  to_hour = 22
  saturday = false

  [transfer_window]
  from_hour = 7
  to_hour = 22
  saturday = true

  [[discount_tiers]]
  from_ride = 30
  to_ride = 59
  rate = "0.80"

KEY FEATURES:
  - Every field is optional; missing fields keep the reference defaults
  - Discount rates are decimal strings, never floats
  - The merged result is validated before use

USAGE:
  t, err := tariff.Load("network.toml")
  if err != nil { ... }
  card := fare.NewAccountWithTariff(1, fare.Standard, fare.NewMoney(2000), t)

SEE ALSO:
  - fare/tariff.go: The Tariff type and DefaultTariff reference values
*/
package tariff

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/warp/fare-engine/fare"
)

// =============================================================================
// TOML SCHEMA TYPES
// =============================================================================

// File is the TOML representation of a tariff. Pointer fields distinguish
// "absent, keep the default" from an explicit zero.
type File struct {
	UrbanFare               *int64     `toml:"urban_fare"`
	InterurbanFare          *int64     `toml:"interurban_fare"`
	Floor                   *int64     `toml:"floor"`
	Cap                     *int64     `toml:"cap"`
	TopUpDenominations      []int64    `toml:"top_up_denominations"`
	TransferLimitMinutes    *int       `toml:"transfer_limit_minutes"`
	HalfFareSpacingMinutes  *int       `toml:"half_fare_spacing_minutes"`
	HalfFareDailyLimit      *int       `toml:"half_fare_daily_limit"`
	FreeFareDailyLimit      *int       `toml:"free_fare_daily_limit"`
	ChargeFullInsideSpacing *bool      `toml:"charge_full_inside_spacing"`
	StudentWindow           *WindowTOML `toml:"student_window"`
	TransferWindow          *WindowTOML `toml:"transfer_window"`
	DiscountTiers           []TierTOML  `toml:"discount_tiers"`
}

type WindowTOML struct {
	FromHour int  `toml:"from_hour"`
	ToHour   int  `toml:"to_hour"`
	Saturday bool `toml:"saturday"`
}

type TierTOML struct {
	FromRide int    `toml:"from_ride"`
	ToRide   int    `toml:"to_ride"`
	Rate     string `toml:"rate"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and parses a tariff file.
func Load(path string) (*fare.Tariff, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tariff: %w", err)
	}
	return Parse(data)
}

// Parse merges a TOML document onto the reference defaults and validates
// the result.
func Parse(data []byte) (*fare.Tariff, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tariff: %w", err)
	}

	t := fare.DefaultTariff()

	if f.UrbanFare != nil {
		t.UrbanFare = fare.NewMoney(*f.UrbanFare)
	}
	if f.InterurbanFare != nil {
		t.InterurbanFare = fare.NewMoney(*f.InterurbanFare)
	}
	if f.Floor != nil {
		t.Floor = fare.NewMoney(*f.Floor)
	}
	if f.Cap != nil {
		t.Cap = fare.NewMoney(*f.Cap)
	}
	if len(f.TopUpDenominations) > 0 {
		t.TopUpDenominations = make([]fare.Money, len(f.TopUpDenominations))
		for i, d := range f.TopUpDenominations {
			t.TopUpDenominations[i] = fare.NewMoney(d)
		}
	}
	if f.TransferLimitMinutes != nil {
		t.TransferLimit = time.Duration(*f.TransferLimitMinutes) * time.Minute
	}
	if f.HalfFareSpacingMinutes != nil {
		t.HalfFareSpacing = time.Duration(*f.HalfFareSpacingMinutes) * time.Minute
	}
	if f.HalfFareDailyLimit != nil {
		t.HalfFareDailyLimit = *f.HalfFareDailyLimit
	}
	if f.FreeFareDailyLimit != nil {
		t.FreeFareDailyLimit = *f.FreeFareDailyLimit
	}
	if f.ChargeFullInsideSpacing != nil {
		t.ChargeFullInsideSpacing = *f.ChargeFullInsideSpacing
	}
	if f.StudentWindow != nil {
		t.StudentWindow = f.StudentWindow.toWindow()
	}
	if f.TransferWindow != nil {
		t.TransferWindow = f.TransferWindow.toWindow()
	}
	if len(f.DiscountTiers) > 0 {
		tiers := make([]fare.DiscountTier, len(f.DiscountTiers))
		for i, tt := range f.DiscountTiers {
			rate, err := decimal.NewFromString(tt.Rate)
			if err != nil {
				return nil, fmt.Errorf("discount tier %d: bad rate %q: %w", i, tt.Rate, err)
			}
			tiers[i] = fare.DiscountTier{FromRide: tt.FromRide, ToRide: tt.ToRide, Rate: rate}
		}
		t.DiscountTiers = tiers
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tariff: %w", err)
	}
	return t, nil
}

func (w *WindowTOML) toWindow() fare.Window {
	return fare.Window{FromHour: w.FromHour, ToHour: w.ToHour, Saturday: w.Saturday}
}
