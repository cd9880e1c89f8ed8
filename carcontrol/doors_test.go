package carcontrol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doorConfig() Config {
	cfg := torqueConfig()
	cfg.AutoLock = true
	cfg.AutoUnlock = true
	return cfg
}

func TestDoorAutomationSequence(t *testing.T) {
	c := newTestController(t, doorConfig())
	cc := activeControl()

	step := func(gear GearShifter, vEgo float64) (lock, unlock bool) {
		cs := drivingSnapshot()
		cs.Gear = gear
		cs.VEgo = vEgo
		_, msgs := c.Update(cc, cs, time.Now())
		msg, ok := findMsg(msgs, idDoor)
		if !ok {
			return false, false
		}
		require.Len(t, msg.Data, 8)
		return msg.Data[5] == 0x80, msg.Data[5] == 0x40
	}

	// Below the lock threshold: nothing.
	lock, unlock := step(GearDrive, 5)
	assert.False(t, lock)
	assert.False(t, unlock)

	// Crossing the threshold locks once.
	lock, _ = step(GearDrive, 12)
	assert.True(t, lock)

	// Staying in drive at speed: the latch holds, no repeat.
	for i := 0; i < 5; i++ {
		lock, unlock = step(GearDrive, 12)
		assert.False(t, lock, "cycle %d", i)
		assert.False(t, unlock, "cycle %d", i)
	}

	// Into park: unlock, latch rearmed.
	_, unlock = step(GearPark, 0)
	assert.True(t, unlock)

	// Back into drive at speed: a second lock.
	lock, _ = step(GearDrive, 12)
	assert.True(t, lock)
}

func TestDoorActionsGatedOnDoorsClosed(t *testing.T) {
	c := newTestController(t, doorConfig())
	cc := activeControl()

	cs := drivingSnapshot()
	cs.Gear = GearDrive
	cs.VEgo = 12
	cs.DoorOpen = true

	// Door open: no lock even at speed.
	_, msgs := c.Update(cc, cs, time.Now())
	assert.Equal(t, 0, countMsg(msgs, idDoor))

	// Shift to park with the door still open: gear is tracked, but the
	// unlock edge is consumed without an action.
	cs.Gear = GearPark
	cs.VEgo = 0
	_, msgs = c.Update(cc, cs, time.Now())
	assert.Equal(t, 0, countMsg(msgs, idDoor))
	assert.Equal(t, GearPark, c.doors.prevGear)

	// Closing the door afterwards does not replay the missed edge.
	cs.DoorOpen = false
	_, msgs = c.Update(cc, cs, time.Now())
	assert.Equal(t, 0, countMsg(msgs, idDoor))
}

func TestDoorCommandsDisabledByConfig(t *testing.T) {
	c := newTestController(t, torqueConfig()) // both toggles off
	cc := activeControl()

	cs := drivingSnapshot()
	cs.Gear = GearDrive
	cs.VEgo = 12

	_, msgs := c.Update(cc, cs, time.Now())
	assert.Equal(t, 0, countMsg(msgs, idDoor))

	// The latch still advanced: enabling later in the same drive session
	// would not replay the lock.
	assert.True(t, c.doors.lockedOnce)
}
