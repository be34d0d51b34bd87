/*
Package fare implements the core fare computation and eligibility engine
for a stored-value transit card.

PURPOSE:
  This package contains the types and algorithms that decide, for a given
  (card, route, instant) triple, whether a ride is allowed, how much to
  charge, and how the card's internal counters mutate as a result.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A signed fixed-point currency amount (decimal-backed)
  - FareClass: The closed set of fare policies a card can carry
  - Ticket: An immutable record emitted for every granted ride

DESIGN PRINCIPLES:
  1. Determinism: Time is an explicit parameter; the engine never reads
     the system clock itself (see clock.go).
  2. Precision: Uses decimal.Decimal to avoid floating-point errors.
  3. Purity: Rejections are plain error values; a rejected ride never
     mutates balance or counters.
  4. Closed dispatch: FareClass is a tagged variant, not an open
     interface, so all four charge algorithms stay exhaustively
     enumerable and testable in isolation.

USAGE:
  card := fare.NewAccount(1, fare.Standard, fare.NewMoney(2000))
  route := tariff.Urban("125")
  ticket, err := fare.Ride(card, route, clock)

SEE ALSO:
  - account.go: Balance mechanics and usage counters
  - policy.go:  The four fare policy algorithms
  - engine.go:  Ride orchestration and top-ups
*/
package fare

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Signed fixed-point currency amount
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(units int64) Money {
	return Money{Value: decimal.NewFromInt(units)}
}

// ParseMoney parses a decimal string, as stored by the ticket journal.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{Value: d}, nil
}

func (m Money) Add(o Money) Money              { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money              { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Neg() Money                     { return Money{Value: m.Value.Neg()} }
func (m Money) Abs() Money                     { return Money{Value: m.Value.Abs()} }
func (m Money) Mul(rate decimal.Decimal) Money { return Money{Value: m.Value.Mul(rate)} }
func (m Money) Half() Money                    { return Money{Value: m.Value.Div(decimal.NewFromInt(2))} }
func (m Money) IsNegative() bool               { return m.Value.IsNegative() }
func (m Money) IsPositive() bool               { return m.Value.IsPositive() }
func (m Money) IsZero() bool                   { return m.Value.IsZero() }
func (m Money) Equal(o Money) bool             { return m.Value.Equal(o.Value) }
func (m Money) LessThan(o Money) bool          { return m.Value.LessThan(o.Value) }
func (m Money) GreaterThan(o Money) bool       { return m.Value.GreaterThan(o.Value) }
func (m Money) GreaterOrEqual(o Money) bool    { return !m.Value.LessThan(o.Value) }
func (m Money) String() string                 { return m.Value.String() }

func (m Money) Min(o Money) Money {
	if m.LessThan(o) {
		return m
	}
	return o
}

// =============================================================================
// FARE CLASS - Closed tagged variant, one per card for its lifetime
// =============================================================================

type FareClass int

const (
	Standard FareClass = iota
	HalfFareStudent
	FreeFareStudent
	FullExemption
)

// String returns the label printed on tickets.
func (c FareClass) String() string {
	switch c {
	case HalfFareStudent:
		return "half_fare_student"
	case FreeFareStudent:
		return "free_fare_student"
	case FullExemption:
		return "full_exemption"
	default:
		return "standard"
	}
}

// Restricted reports whether the class is bound to the student/exemption
// service window (Monday-Friday, daytime hours).
func (c FareClass) Restricted() bool {
	return c != Standard
}

// =============================================================================
// TICKET - Immutable record of a granted ride
// =============================================================================

// Ticket is produced only on a successful ride. It is owned by the caller
// and holds no back-reference to the account.
type Ticket struct {
	ID               string
	IssuedAt         time.Time
	FareClass        string
	Line             string
	Charged          Money
	RemainingBalance Money
	CardID           int
	Transfer         bool
}
