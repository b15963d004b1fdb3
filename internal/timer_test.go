package internal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/partyroom-backend/internal/testutil"
)

func newTestTimer() (*PhaseTimer, *testutil.FakeClock, *sync.Mutex) {
	clock := testutil.NewFakeClock()
	mu := &sync.Mutex{}
	return NewPhaseTimer(clock, mu), clock, mu
}

func TestPhaseTimer_Fires(t *testing.T) {
	timer, clock, mu := newTestTimer()
	fired := 0

	mu.Lock()
	timer.Arm(time.Second, func() { fired++ })
	assert.True(t, timer.Armed())
	mu.Unlock()

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, fired)
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.False(t, timer.Armed())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, fired)
}

func TestPhaseTimer_DisarmPreventsAction(t *testing.T) {
	timer, clock, mu := newTestTimer()
	fired := 0

	mu.Lock()
	timer.Arm(time.Second, func() { fired++ })
	assert.True(t, timer.Disarm())
	assert.False(t, timer.Disarm())
	mu.Unlock()

	clock.Advance(time.Minute)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 0, clock.Pending())
}

func TestPhaseTimer_ArmReplaces(t *testing.T) {
	timer, clock, mu := newTestTimer()
	var got []string

	mu.Lock()
	timer.Arm(time.Second, func() { got = append(got, "first") })
	timer.Arm(2*time.Second, func() { got = append(got, "second") })
	mu.Unlock()

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"second"}, got)
}

func TestPhaseTimer_ActionRunsUnderLock(t *testing.T) {
	timer, clock, mu := newTestTimer()
	locked := false

	mu.Lock()
	timer.Arm(time.Second, func() {
		locked = !mu.TryLock()
	})
	mu.Unlock()

	clock.Advance(time.Second)
	assert.True(t, locked)
}

func TestPhaseTimer_ActionCanRearm(t *testing.T) {
	timer, clock, mu := newTestTimer()
	fired := 0

	var tick func()
	tick = func() {
		fired++
		if fired < 3 {
			timer.Arm(time.Second, tick)
		}
	}
	mu.Lock()
	timer.Arm(time.Second, tick)
	mu.Unlock()

	clock.Advance(10 * time.Second)
	assert.Equal(t, 3, fired)
}

func TestPhaseTimer_StaleCallbackIgnored(t *testing.T) {
	// A callback that already left the clock must not run once the slot was disarmed.
	mu := &sync.Mutex{}
	var captured func()
	clock := &captureClock{fn: func(f func()) { captured = f }}
	timer := NewPhaseTimer(clock, mu)
	fired := false

	mu.Lock()
	timer.Arm(time.Second, func() { fired = true })
	timer.Disarm()
	mu.Unlock()

	require.NotNil(t, captured)
	captured()
	assert.False(t, fired)
}

func TestPhaseTimer_Remaining(t *testing.T) {
	timer, clock, mu := newTestTimer()

	mu.Lock()
	assert.Zero(t, timer.Remaining())
	timer.Arm(10*time.Second, func() {})
	mu.Unlock()

	clock.Advance(4 * time.Second)
	assert.Equal(t, 6*time.Second, timer.Remaining())
	assert.Equal(t, clock.Now().Add(6*time.Second), timer.Deadline())
}

// captureClock hands the scheduled callback to the test and never fires it.
type captureClock struct {
	fn func(func())
}

func (c *captureClock) Now() time.Time { return time.Time{} }

func (c *captureClock) AfterFunc(_ time.Duration, f func()) func() bool {
	c.fn(f)
	return func() bool { return false }
}
