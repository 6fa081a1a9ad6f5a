package speedring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wipecore/diskwipe/speedring"
)

func TestFirstUpdateIsZeroDeltaInit(t *testing.T) {
	s := speedring.New()
	now := time.Now()
	s.Update(1000, now)
	assert.Equal(t, float64(0), s.Throughput())
}

func TestThroughputAfterGranularity(t *testing.T) {
	s := speedring.New()
	start := time.Now()
	s.Update(0, start)
	s.Update(10_000_000, start.Add(speedring.Granularity))

	got := s.Throughput()
	want := float64(10_000_000) / speedring.Granularity.Seconds()
	assert.InDelta(t, want, got, 0.001)
}

func TestSampleBelowGranularityIgnored(t *testing.T) {
	s := speedring.New()
	start := time.Now()
	s.Update(0, start)
	s.Update(5_000_000, start.Add(time.Second))
	assert.Equal(t, float64(0), s.Throughput(), "samples spaced under Granularity must not be accepted")
}

func TestRingEvictsOldestSample(t *testing.T) {
	s := speedring.New()
	start := time.Now()
	s.Update(0, start)

	t0 := start
	for i := 1; i <= speedring.N+5; i++ {
		t0 = t0.Add(speedring.Granularity)
		s.Update(int64(i)*1_000_000, t0)
	}

	// Only the most recent N samples' deltas should remain in the
	// running sums; throughput should reflect a 1 MB/10s rate, not the
	// average including the evicted early samples (which is identical
	// here since every delta is equal, but exercises the eviction path
	// without panicking or going negative).
	assert.Greater(t, s.Throughput(), float64(0))
}

func TestETABelowThresholdIsUnavailable(t *testing.T) {
	s := speedring.New()
	start := time.Now()
	s.Update(0, start)
	s.Update(1000, start.Add(speedring.Granularity)) // far below 100,000 B/s

	_, ok := s.ETA(1_000_000)
	assert.False(t, ok)
}

func TestETAAboveThreshold(t *testing.T) {
	s := speedring.New()
	start := time.Now()
	s.Update(0, start)
	s.Update(200_000_000, start.Add(speedring.Granularity)) // 20 MB/s

	eta, ok := s.ETA(100_000_000)
	assert.True(t, ok)
	assert.InDelta(t, 5*time.Second, eta, float64(50*time.Millisecond))
}
