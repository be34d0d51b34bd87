package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/fare-engine/fare"
	"github.com/warp/fare-engine/journal/sqlite"
)

func openTestJournal(t *testing.T) *sqlite.Journal {
	t.Helper()
	j, err := sqlite.New(filepath.Join(t.TempDir(), "tickets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func ticket(cardID int, line string, charged int64, transfer bool, at time.Time) fare.Ticket {
	return fare.Ticket{
		ID:               uuid.NewString(),
		IssuedAt:         at,
		FareClass:        "standard",
		Line:             line,
		Charged:          fare.NewMoney(charged),
		RemainingBalance: fare.NewMoney(420),
		CardID:           cardID,
		Transfer:         transfer,
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	at := time.Date(2024, time.November, 4, 10, 0, 0, 0, time.UTC)

	want := ticket(1, "125", 1580, false, at)
	require.NoError(t, j.Append(ctx, want))

	all, err := j.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.CardID, got.CardID)
	assert.Equal(t, want.FareClass, got.FareClass)
	assert.Equal(t, want.Line, got.Line)
	assert.True(t, want.Charged.Equal(got.Charged))
	assert.True(t, want.RemainingBalance.Equal(got.RemainingBalance))
	assert.False(t, got.Transfer)
	assert.True(t, want.IssuedAt.Equal(got.IssuedAt))
}

func TestSQLite_TransferFlagSurvives(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	at := time.Date(2024, time.November, 4, 10, 0, 0, 0, time.UTC)

	require.NoError(t, j.Append(ctx, ticket(1, "140", 0, true, at)))

	all, err := j.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Transfer)
	assert.True(t, all[0].Charged.IsZero())
}

func TestSQLite_ListByCard_FiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	at := time.Date(2024, time.November, 4, 10, 0, 0, 0, time.UTC)

	require.NoError(t, j.Append(ctx, ticket(2, "140", 1580, false, at.Add(5*time.Minute))))
	require.NoError(t, j.Append(ctx, ticket(1, "125", 1580, false, at)))
	require.NoError(t, j.Append(ctx, ticket(1, "K", 0, true, at.Add(20*time.Minute))))

	mine, err := j.ListByCard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "125", mine[0].Line, "issue order, not insert order")
	assert.Equal(t, "K", mine[1].Line)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tickets.db")
	at := time.Date(2024, time.November, 4, 10, 0, 0, 0, time.UTC)

	j, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, ticket(1, "125", 1580, false, at)))
	require.NoError(t, j.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
