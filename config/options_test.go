package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipecore/diskwipe/config"
)

func TestDefault(t *testing.T) {
	o := config.Default()
	assert.Equal(t, "zero", o.Method)
	assert.Equal(t, config.VerifyLast, o.Verify)
	assert.Equal(t, 1, o.Rounds)
	assert.Equal(t, config.Cached, o.IOMode)
}

func TestNewAppliesOptions(t *testing.T) {
	o, err := config.New(
		config.WithMethod("gutmann"),
		config.WithPRNG("isaac64"),
		config.WithVerify(config.VerifyAll),
		config.WithRounds(3),
	)
	require.NoError(t, err)
	assert.Equal(t, "gutmann", o.Method)
	assert.Equal(t, "isaac64", o.PRNG)
	assert.Equal(t, config.VerifyAll, o.Verify)
	assert.Equal(t, 3, o.Rounds)
}

func TestNewRejectsNonPositiveRounds(t *testing.T) {
	_, err := config.New(config.WithMethod("zero"), config.WithRounds(0))
	assert.Error(t, err)
}

func TestNewRejectsNegativeSyncRate(t *testing.T) {
	_, err := config.New(config.WithMethod("zero"), config.WithSyncRate(-1))
	assert.Error(t, err)
}

func TestNewForcesNoBlankForOps2(t *testing.T) {
	o, err := config.New(config.WithMethod("ops2"), config.WithBlankAfter(true))
	require.NoError(t, err)
	assert.False(t, o.BlankAfter, "blank_after must be forced false for ops2")
}

func TestNewForcesNoBlankForVerifyOnly(t *testing.T) {
	for _, m := range []string{"verify_zero", "verify_one"} {
		o, err := config.New(config.WithMethod(m), config.WithBlankAfter(true))
		require.NoError(t, err)
		assert.False(t, o.BlankAfter, "blank_after must be forced false for %s", m)
	}
}

func TestNewForcesNoSyncRateForDirect(t *testing.T) {
	o, err := config.New(config.WithMethod("zero"), config.WithSyncRate(16), config.WithIOMode(config.Direct))
	require.NoError(t, err)
	assert.Equal(t, 0, o.SyncRate)
}

func TestVerifyString(t *testing.T) {
	assert.Equal(t, "none", config.VerifyNone.String())
	assert.Equal(t, "last", config.VerifyLast.String())
	assert.Equal(t, "all", config.VerifyAll.String())
}
