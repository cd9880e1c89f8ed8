package carcontrol

import (
	"adas-command-core/limits"
	"adas-command-core/vehicles"
)

const (
	// Below this speed the lead flag is always asserted so the native
	// cruise will re-engage.
	lowSpeedLead = 12.0 // m/s

	// Native cruise status code while it holds the vehicle at standstill.
	activeStandstillStatus = 8

	// Pedal-emulation output cap.
	maxPedalCommand = 0.5
)

// standstillLatch holds the standstill request from the entry edge until the
// native cruise leaves its active-standstill state. The request is a level,
// not an edge: it persists even if the standstill flag clears first.
type standstillLatch struct {
	was       bool
	requested bool
}

// update advances the latch. eligible gates the set edge only; the clear
// rule is unconditional on the cruise status code, covering both the exit
// from standstill and cruise being disabled.
func (l *standstillLatch) update(standstill bool, cruiseStatus uint8, eligible bool) {
	if standstill && !l.was && eligible {
		l.requested = true
	}
	if cruiseStatus != activeStandstillStatus {
		l.requested = false
	}
	l.was = standstill
}

// pedalCommand computes the pedal-emulation value. It is exactly zero
// whenever longitudinal control is inactive or the vehicle has direct
// acceleration actuation; anything else would leave residual actuation
// after disengagement.
func (c *CarController) pedalCommand(cc CarControl, cs VehicleSnapshot) float64 {
	if !c.cfg.GasInterceptor || !cc.LongActive {
		return 0
	}
	scale := limits.Interp(cs.VEgo, c.pedalScale.SpeedBp, c.pedalScale.ScaleV)
	offset := limits.Interp(cs.VEgo, vehicles.PedalOffset.SpeedBp, vehicles.PedalOffset.ScaleV)
	return limits.Clamp(scale*(cc.Actuators.Accel+offset), 0, maxPedalCommand)
}
