/*
scenarios.go - Demo scenario runners for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that exercise the fare engine end to end
	with a fake clock. Each scenario creates cards, runs rides, and logs
	the resulting tickets and rejections. Scenarios are the executable
	documentation of the engine's behavior.

AVAILABLE SCENARIOS:

	standard-ride:   Single paid urban ride on a standard card
	half-fare-day:   Half-fare student: two half rides, cooldown rejection,
	                 full-price third ride
	free-fare-day:   Free-fare student: two free rides, paid third ride
	                 driving the balance negative
	frequent-rider:  30 rides in one month reaching the 20% discount tier
	transfer-chain:  Paid ride followed by two free connections
	overflow-topup:  Top-up above the cap banking pending overflow, then a
	                 ride draining it back in

HOW SCENARIOS WORK:
 1. Build a fake clock at a known weekday/hour
 2. Create the cards the scenario needs
 3. Ride/top-up, logging every outcome
 4. Append issued tickets to the journal (if one is configured)

ADDING NEW SCENARIOS:
 1. Add a Scenario entry to the 'scenarios' slice
 2. Write the run function next to the others below

SEE ALSO:
  - cmd/farecard: CLI entry point that runs these
  - fare/engine.go: The Ride orchestration being demonstrated
*/
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/fare-engine/fare"
	"github.com/warp/fare-engine/journal"
)

// =============================================================================
// ENVIRONMENT & SCENARIO DEFINITIONS
// =============================================================================

// Env carries the collaborators a scenario runs against.
type Env struct {
	Tariff  *fare.Tariff
	Journal journal.Journal
	Log     *logrus.Logger
}

type Scenario struct {
	ID          string
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

var scenarios = []Scenario{
	{
		ID:          "standard-ride",
		Name:        "Standard Ride",
		Description: "Single paid urban ride on a standard card",
		Run:         runStandardRide,
	},
	{
		ID:          "half-fare-day",
		Name:        "Half-Fare Day",
		Description: "Two half-price rides, a cooldown rejection, and a full-price third ride",
		Run:         runHalfFareDay,
	},
	{
		ID:          "free-fare-day",
		Name:        "Free-Fare Day",
		Description: "Two free rides, then a paid third ride driving the balance negative",
		Run:         runFreeFareDay,
	},
	{
		ID:          "frequent-rider",
		Name:        "Frequent Rider",
		Description: "30 rides in one month reaching the 20% discount tier",
		Run:         runFrequentRider,
	},
	{
		ID:          "transfer-chain",
		Name:        "Transfer Chain",
		Description: "Paid ride followed by two free connections within the hour",
		Run:         runTransferChain,
	},
	{
		ID:          "overflow-topup",
		Name:        "Overflow Top-Up",
		Description: "Top-up above the cap banks pending overflow; a ride drains it back",
		Run:         runOverflowTopUp,
	},
}

// Scenarios returns the available scenarios.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// Find returns the scenario with the given id.
func Find(id string) (Scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (e *Env) tariff() *fare.Tariff {
	if e.Tariff != nil {
		return e.Tariff
	}
	return fare.DefaultTariff()
}

// ride runs one attempt, logs the outcome, and journals the ticket.
// Rejections are reported as warnings, not errors: they are expected
// business outcomes the scenario may be demonstrating.
func (e *Env) ride(ctx context.Context, a *fare.Account, r fare.Route, clk fare.Clock) (*fare.Ticket, error) {
	t, err := fare.Ride(a, r, clk)
	if err != nil {
		e.Log.WithFields(logrus.Fields{
			"card": a.ID(),
			"line": r.Line,
		}).Warnf("ride rejected: %v", err)
		return nil, err
	}

	e.Log.WithFields(logrus.Fields{
		"card":     t.CardID,
		"class":    t.FareClass,
		"line":     t.Line,
		"charged":  t.Charged.String(),
		"balance":  t.RemainingBalance.String(),
		"transfer": t.Transfer,
	}).Info("ticket issued")

	if e.Journal != nil {
		if err := e.Journal.Append(ctx, *t); err != nil {
			return t, fmt.Errorf("journal ticket: %w", err)
		}
	}
	return t, nil
}

func (e *Env) topUp(a *fare.Account, amount fare.Money) error {
	if err := fare.TopUp(a, amount); err != nil {
		e.Log.WithField("card", a.ID()).Warnf("top-up rejected: %v", err)
		return err
	}
	e.Log.WithFields(logrus.Fields{
		"card":    a.ID(),
		"amount":  amount.String(),
		"balance": a.Balance().String(),
		"pending": a.PendingOverflow().String(),
	}).Info("top-up applied")
	return nil
}

// mondayMorning is a known Monday inside every service window.
func mondayMorning() *fare.FakeClock {
	return fare.NewFakeClock(2024, time.November, 4, 10, 0)
}

// =============================================================================
// SCENARIO RUNNERS
// =============================================================================

func runStandardRide(ctx context.Context, env *Env) error {
	t := env.tariff()
	clock := mondayMorning()
	card := fare.NewAccountWithTariff(1, fare.Standard, fare.NewMoney(2000), t)

	_, err := env.ride(ctx, card, t.Urban("125"), clock)
	return err
}

func runHalfFareDay(ctx context.Context, env *Env) error {
	t := env.tariff()
	clock := mondayMorning()
	card := fare.NewAccountWithTariff(2, fare.HalfFareStudent, fare.NewMoney(5000), t)
	route := t.Urban("125")

	if _, err := env.ride(ctx, card, route, clock); err != nil {
		return err
	}
	clock.AddMinutes(5)
	if _, err := env.ride(ctx, card, route, clock); err != nil {
		return err
	}

	// Inside the cooldown: refused outright, nothing charged.
	clock.AddMinutes(3)
	if _, err := env.ride(ctx, card, route, clock); err == nil {
		return fmt.Errorf("expected cooldown rejection")
	}

	// Third ride of the day pays full price.
	clock.AddMinutes(2)
	_, err := env.ride(ctx, card, route, clock)
	return err
}

func runFreeFareDay(ctx context.Context, env *Env) error {
	t := env.tariff()
	clock := mondayMorning()
	card := fare.NewAccountWithTariff(3, fare.FreeFareStudent, fare.NewMoney(1000), t)
	route := t.Urban("140")

	for i := 0; i < 2; i++ {
		if _, err := env.ride(ctx, card, route, clock); err != nil {
			return err
		}
		clock.AddHours(2)
	}

	// Third ride of the day: full fare, may go negative down to the floor.
	_, err := env.ride(ctx, card, route, clock)
	return err
}

func runFrequentRider(ctx context.Context, env *Env) error {
	t := env.tariff()
	clock := fare.NewFakeClock(2024, time.November, 1, 9, 0)
	card := fare.NewAccountWithTariff(4, fare.Standard, fare.NewMoney(50000), t)
	route := t.Urban("125") // same line throughout, so no ride is a transfer

	for i := 0; i < 30; i++ {
		if _, err := env.ride(ctx, card, route, clock); err != nil {
			return err
		}
		clock.AddMinutes(90)
	}

	env.Log.WithFields(logrus.Fields{
		"card":          card.ID(),
		"rides":         card.MonthlyRideCount(),
		"final_balance": card.Balance().String(),
	}).Info("frequent rider month complete")
	return nil
}

func runTransferChain(ctx context.Context, env *Env) error {
	t := env.tariff()
	clock := mondayMorning()
	card := fare.NewAccountWithTariff(5, fare.Standard, fare.NewMoney(5000), t)

	if _, err := env.ride(ctx, card, t.Urban("125"), clock); err != nil {
		return err
	}
	clock.AddMinutes(20)
	if _, err := env.ride(ctx, card, t.Urban("140"), clock); err != nil {
		return err
	}
	clock.AddMinutes(20)
	_, err := env.ride(ctx, card, t.Urban("K"), clock)
	return err
}

func runOverflowTopUp(ctx context.Context, env *Env) error {
	t := env.tariff()
	clock := mondayMorning()
	card := fare.NewAccountWithTariff(6, fare.Standard, fare.NewMoney(50000), t)

	if err := env.topUp(card, fare.NewMoney(10000)); err != nil {
		return err
	}
	if _, err := env.ride(ctx, card, t.Urban("125"), clock); err != nil {
		return err
	}

	env.Log.WithFields(logrus.Fields{
		"card":    card.ID(),
		"balance": card.Balance().String(),
		"pending": card.PendingOverflow().String(),
	}).Info("overflow drained back into balance")
	return nil
}
