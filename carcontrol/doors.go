package carcontrol

// lockAtSpeed is the speed at or above which the doors lock in drive.
const lockAtSpeed = 10.0 // m/s

type doorAction int

const (
	doorNone doorAction = iota
	doorUnlock
	doorLock
)

// doorAutomation is the gear-transition latch behind automatic lock and
// unlock. lockedOnce keeps the lock command single-shot per drive session;
// shifting back into park rearms it.
type doorAutomation struct {
	prevGear   GearShifter
	lockedOnce bool
}

func newDoorAutomation() doorAutomation {
	return doorAutomation{prevGear: GearPark}
}

// update tracks the gear every cycle. The lock/unlock actions only fire
// while the doors are closed.
func (d *doorAutomation) update(gear GearShifter, doorOpen bool, vEgo float64) doorAction {
	action := doorNone
	if !doorOpen {
		switch {
		case gear == GearPark && d.prevGear != GearPark:
			action = doorUnlock
			d.lockedOnce = false
		case gear == GearDrive && !d.lockedOnce && vEgo >= lockAtSpeed:
			action = doorLock
			d.lockedOnce = true
		}
	}
	d.prevGear = gear
	return action
}
