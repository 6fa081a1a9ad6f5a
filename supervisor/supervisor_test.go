package supervisor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/internal/memdevice"
	"github.com/wipecore/diskwipe/supervisor"
)

func newContexts(t *testing.T, n int, size int64) []*devctx.Context {
	t.Helper()
	opts, err := config.New(config.WithMethod("zero"))
	require.NoError(t, err)

	var contexts []*devctx.Context
	for i := 0; i < n; i++ {
		dev := memdevice.New(size)
		contexts = append(contexts, devctx.New("/mem/dev", dev, 4096, 4096, size, opts))
	}
	return contexts
}

func TestSupervisorRunsDevicesConcurrentlyAndReportsAllDone(t *testing.T) {
	contexts := newContexts(t, 3, 256<<10)
	sup := supervisor.New(contexts, entropy.NewOS())

	sup.Start(context.Background())

	select {
	case <-sup.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not finish in time")
	}

	snap := sup.Poll()
	assert.True(t, snap.AllDone)
	assert.Len(t, snap.Devices, 3)
	for _, d := range snap.Devices {
		assert.Equal(t, devctx.ResultSuccess, d.Result)
	}
}

func TestSupervisorShutdownPropagatesCancellation(t *testing.T) {
	contexts := newContexts(t, 2, 512<<20) // large enough to still be running
	sup := supervisor.New(contexts, entropy.NewOS())
	sup.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := sup.Shutdown(ctx)
	require.NoError(t, err)

	snap := sup.Poll()
	assert.True(t, snap.AllDone)
}

func TestSupervisorSkipsUnselectedContexts(t *testing.T) {
	contexts := newContexts(t, 2, 64<<10)
	contexts[1].Selected = false

	sup := supervisor.New(contexts, entropy.NewOS())
	sup.Start(context.Background())

	select {
	case <-sup.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not finish in time")
	}

	snap := sup.Poll()
	assert.Len(t, snap.Devices, 1)
}
