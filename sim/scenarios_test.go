package sim_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/fare-engine/journal"
	"github.com/warp/fare-engine/sim"
)

func testEnv() (*sim.Env, *journal.Memory) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	j := journal.NewMemory()
	return &sim.Env{Journal: j, Log: log}, j
}

func TestScenarios_AllRunClean(t *testing.T) {
	for _, s := range sim.Scenarios() {
		t.Run(s.ID, func(t *testing.T) {
			env, _ := testEnv()
			assert.NoError(t, s.Run(context.Background(), env))
		})
	}
}

func TestFind(t *testing.T) {
	s, ok := sim.Find("transfer-chain")
	require.True(t, ok)
	assert.Equal(t, "Transfer Chain", s.Name)

	_, ok = sim.Find("nope")
	assert.False(t, ok)
}

func TestStandardRide_JournalsOneTicket(t *testing.T) {
	env, j := testEnv()
	s, _ := sim.Find("standard-ride")
	require.NoError(t, s.Run(context.Background(), env))

	all, err := j.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "125", all[0].Line)
	assert.False(t, all[0].Transfer)
}

func TestTransferChain_TwoFreeConnections(t *testing.T) {
	env, j := testEnv()
	s, _ := sim.Find("transfer-chain")
	require.NoError(t, s.Run(context.Background(), env))

	all, err := j.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.False(t, all[0].Transfer)
	assert.True(t, all[1].Transfer)
	assert.True(t, all[2].Transfer)
	assert.True(t, all[1].Charged.IsZero())
	assert.True(t, all[2].Charged.IsZero())
}

func TestHalfFareDay_RejectionNotJournaled(t *testing.T) {
	env, j := testEnv()
	s, _ := sim.Find("half-fare-day")
	require.NoError(t, s.Run(context.Background(), env))

	// Four attempts, one refused inside the cooldown: three tickets.
	all, err := j.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFrequentRider_ReachesDiscountTier(t *testing.T) {
	env, j := testEnv()
	s, _ := sim.Find("frequent-rider")
	require.NoError(t, s.Run(context.Background(), env))

	all, err := j.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 30)
	assert.Equal(t, "1580", all[28].Charged.String(), "ride 29 still full fare")
	assert.Equal(t, "1264", all[29].Charged.String(), "ride 30 discounted")
}
