package devctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/internal/memdevice"
)

func newContext(t *testing.T, size int64) (*devctx.Context, *memdevice.Device) {
	t.Helper()
	opts, err := config.New(config.WithMethod("zero"))
	require.NoError(t, err)
	dev := memdevice.New(size)
	dc := devctx.New("/mem/test", dev, 512, 512, size, opts)
	return dc, dev
}

func TestAddPassDoneRaisesBytesErasedMonotonically(t *testing.T) {
	dc, _ := newContext(t, 1000)
	dc.AddPassDone(100)
	assert.Equal(t, int64(100), dc.BytesErased())
	dc.AddPassDone(50)
	assert.Equal(t, int64(150), dc.BytesErased())
}

func TestBytesErasedNeverExceedsSize(t *testing.T) {
	dc, _ := newContext(t, 100)
	dc.AddPassDone(1000)
	assert.Equal(t, int64(100), dc.BytesErased())
}

func TestRoundPercentClampedAndComputed(t *testing.T) {
	dc, _ := newContext(t, 1000)
	dc.SetRoundSize(1000)
	dc.AddPassDone(250)
	assert.InDelta(t, 25.0, dc.RoundPercent(), 0.001)
}

func TestRoundPercentZeroWhenRoundSizeUnset(t *testing.T) {
	dc, _ := newContext(t, 1000)
	assert.Equal(t, float64(0), dc.RoundPercent())
}

func TestResetPassZeroesPassDoneNotRoundDone(t *testing.T) {
	dc, _ := newContext(t, 1000)
	dc.AddPassDone(400)
	dc.ResetPass()
	assert.Equal(t, int64(0), dc.PassDone())
	assert.Equal(t, int64(400), dc.RoundDone())
}

func TestCancelIsObservable(t *testing.T) {
	dc, _ := newContext(t, 1000)
	assert.False(t, dc.Cancelled())
	dc.Cancel()
	assert.True(t, dc.Cancelled())
}

func TestSuccessRequiresCleanResultAndCounters(t *testing.T) {
	dc, _ := newContext(t, 1000)
	dc.SetResult(devctx.ResultSuccess)
	assert.True(t, dc.Success())

	dc.AddVerifyErrors(1)
	assert.False(t, dc.Success())
}
