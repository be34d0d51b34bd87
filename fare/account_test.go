package fare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/fare-engine/fare"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(units int64) fare.Money {
	return fare.NewMoney(units)
}

func assertMoney(t *testing.T, expected int64, actual fare.Money, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, money(expected).Equal(actual),
		"expected %d, got %v: %v", expected, actual, msgAndArgs)
}

// =============================================================================
// CHARGE MECHANICS
// =============================================================================

func TestCharge_WithinFloor_Succeeds(t *testing.T) {
	// GIVEN: Standard card with balance 2000
	// WHEN: Charging 1580
	// THEN: Balance becomes 420

	card := fare.NewAccount(1, fare.Standard, money(2000))

	require.True(t, card.CanCharge(money(1580)))

	ticket, err := fare.Ride(card, fare.DefaultTariff().Urban("125"), mon(10, 0))
	require.NoError(t, err)
	assertMoney(t, 1580, ticket.Charged)
	assertMoney(t, 420, card.Balance())
}

func TestCharge_CanReachFloorExactly(t *testing.T) {
	// GIVEN: Balance 380 (380 - 1580 = -1200, exactly the floor)
	// WHEN: Charging the urban fare
	// THEN: The charge is allowed and balance lands on the floor

	card := fare.NewAccount(1, fare.Standard, money(380))

	ticket, err := fare.Ride(card, fare.DefaultTariff().Urban("125"), mon(10, 0))
	require.NoError(t, err)
	assertMoney(t, 1580, ticket.Charged)
	assertMoney(t, -1200, card.Balance())
}

func TestCharge_BreachingFloor_RejectedWithoutMutation(t *testing.T) {
	// GIVEN: Balance 379 (379 - 1580 = -1201, one unit below the floor)
	// WHEN: Charging the urban fare
	// THEN: InsufficientBalance, nothing changes

	card := fare.NewAccount(1, fare.Standard, money(379))

	ticket, err := fare.Ride(card, fare.DefaultTariff().Urban("125"), mon(10, 0))
	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, fare.ErrInsufficientBalance)
	assertMoney(t, 379, card.Balance())
	assert.Equal(t, 0, card.MonthlyRideCount(), "rejection must not advance counters")
}

// =============================================================================
// TOP-UPS
// =============================================================================

func TestCredit_AllowedDenominations(t *testing.T) {
	for _, amount := range []int64{2000, 3000, 4000, 5000, 8000, 10000, 15000, 20000, 25000, 30000} {
		card := fare.NewAccount(1, fare.Standard, money(0))
		assert.NoError(t, card.Credit(money(amount)))
		assertMoney(t, amount, card.Balance())
	}
}

func TestCredit_DisallowedAmount_NoOp(t *testing.T) {
	card := fare.NewAccount(1, fare.Standard, money(1000))

	for _, amount := range []int64{0, 100, 1500, 2500, 50000, -2000} {
		err := card.Credit(money(amount))
		assert.ErrorIs(t, err, fare.ErrInvalidTopUp, "amount %d", amount)
		assertMoney(t, 1000, card.Balance(), "balance untouched by rejected top-up")
	}
}

func TestCredit_NegativeBalance_PaidDownFirst(t *testing.T) {
	// GIVEN: Balance -500
	// WHEN: Topping up 2000
	// THEN: Balance becomes 1500 (the debt is covered first)

	card := fare.NewAccount(1, fare.Standard, money(-500))

	require.NoError(t, card.Credit(money(2000)))
	assertMoney(t, 1500, card.Balance())
	assertMoney(t, 0, card.PendingOverflow())
}

func TestCredit_AboveCap_BanksPendingOverflow(t *testing.T) {
	// GIVEN: Balance 50000, cap 56000
	// WHEN: Topping up 10000
	// THEN: Balance caps at 56000 and 4000 goes to pending overflow

	card := fare.NewAccount(1, fare.Standard, money(50000))

	require.NoError(t, card.Credit(money(10000)))
	assertMoney(t, 56000, card.Balance())
	assertMoney(t, 4000, card.PendingOverflow())
}

func TestCredit_AtCap_EverythingPending(t *testing.T) {
	card := fare.NewAccount(1, fare.Standard, money(56000))

	require.NoError(t, card.Credit(money(5000)))
	assertMoney(t, 56000, card.Balance())
	assertMoney(t, 5000, card.PendingOverflow())
}

// =============================================================================
// PENDING OVERFLOW DRAIN
// =============================================================================

func TestPendingOverflow_DrainedByRide(t *testing.T) {
	// GIVEN: Balance 56000 with 4000 pending (scenario from the top-up above)
	// WHEN: A ride charges 1580
	// THEN: The freed headroom is backfilled from pending:
	//       balance returns to 56000 and pending drops to 2420

	card := fare.NewAccount(1, fare.Standard, money(50000))
	require.NoError(t, card.Credit(money(10000)))

	ticket, err := fare.Ride(card, fare.DefaultTariff().Urban("125"), mon(10, 0))
	require.NoError(t, err)

	assertMoney(t, 1580, ticket.Charged)
	assertMoney(t, 56000, card.Balance())
	assertMoney(t, 2420, card.PendingOverflow())
}

func TestPendingOverflow_DrainsToZeroOverMultipleRides(t *testing.T) {
	card := fare.NewAccount(1, fare.Standard, money(54000))
	require.NoError(t, card.Credit(money(4000))) // 2000 banked

	clock := mon(10, 0)
	route := fare.DefaultTariff().Urban("125")

	_, err := fare.Ride(card, route, clock)
	require.NoError(t, err)
	assertMoney(t, 56000, card.Balance(), "1580 freed, 1580 backfilled")
	assertMoney(t, 420, card.PendingOverflow())

	clock.AddMinutes(10)
	_, err = fare.Ride(card, route, clock)
	require.NoError(t, err)
	assertMoney(t, 54840, card.Balance(), "56000 - 1580 + remaining 420")
	assertMoney(t, 0, card.PendingOverflow())
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestInvariant_BalanceStaysBetweenFloorAndCap(t *testing.T) {
	// GIVEN: A card pushed through a mixed sequence of rides and top-ups
	// THEN: floor <= balance <= cap after every call

	tariff := fare.DefaultTariff()
	card := fare.NewAccount(1, fare.Standard, money(500))
	clock := mon(9, 0)

	check := func() {
		t.Helper()
		assert.True(t, card.Balance().GreaterOrEqual(tariff.Floor), "balance %v under floor", card.Balance())
		assert.True(t, tariff.Cap.GreaterOrEqual(card.Balance()), "balance %v over cap", card.Balance())
		assert.False(t, card.PendingOverflow().IsNegative())
	}

	for i := 0; i < 40; i++ {
		fare.Ride(card, tariff.Urban("125"), clock)
		check()
		if i%7 == 0 {
			card.Credit(money(30000))
			check()
		}
		clock.AddMinutes(90)
	}
}
