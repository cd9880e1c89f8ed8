package carcontrol

import (
	"math"

	"adas-command-core/limits"
)

// EPS faults when assist torque is held while the steering rate stays at or
// above maxSteerRate; the request flag is cut just before the hardware
// would fault.
const (
	maxSteerRate       = 100.0 // deg/s
	maxSteerRateFrames = 18

	// EPS tolerates driver torque above this for a short window before
	// permanently faulting; lateral control is treated as inactive past it.
	maxUserTorque = 500.0

	// EPS ignores angle commands beyond this magnitude.
	maxSteerAngleDeg = 94.9461

	// Driver torque allowance for the full-assist permission field, some
	// resistance while changing lanes is expected.
	maxDriverTorqueAllowance = 150.0
)

type lateralCommand struct {
	applySteer   int
	steerRequest bool
}

// updateLateral computes the applied steering torque (or angle, on the angle
// path) for this cycle and advances the fault-avoidance counter.
func (c *CarController) updateLateral(cc CarControl, cs VehicleSnapshot, latActive bool) lateralCommand {
	newSteer := int(math.Round(cc.Actuators.Steer * float64(c.params.Steer.Max)))
	applySteer := limits.ApplySteerTorqueLimits(newSteer, c.lastSteer, int(math.Round(cs.EPSTorque)), c.params.Steer)

	if latActive && math.Abs(cs.SteeringRateDeg) >= maxSteerRate {
		c.steerRateCounter++
	} else {
		c.steerRateCounter = 0
	}

	steerRequest := true
	if !latActive {
		applySteer = 0
		steerRequest = false
	} else if c.steerRateCounter > maxSteerRateFrames {
		steerRequest = false
		c.steerRateCounter = 0
	}

	if c.cfg.SteerControl == SteerControlAngle {
		// Angle and torque control are never both active; the torque
		// command is forced to zero on this path.
		applySteer = 0
		steerRequest = false
		if c.due(cadenceAngle) {
			// The EPS controls on the torque-sensor angle; compensate
			// with the sensor bias.
			apply := cc.Actuators.SteeringAngleDeg + cs.AngleOffsetDeg
			apply = limits.ApplySteerAngleLimits(apply, c.lastAngle, cs.VEgo, c.params.AngleRateUp, c.params.AngleRateDown)
			if !latActive {
				// Track the measured angle so re-engagement starts
				// without a step.
				apply = cs.SteeringAngleDeg + cs.AngleOffsetDeg
			}
			c.lastAngle = limits.Clamp(apply, -maxSteerAngleDeg, maxSteerAngleDeg)
		}
	}

	c.lastSteer = applySteer
	return lateralCommand{applySteer: applySteer, steerRequest: steerRequest}
}

// fullTorqueWindow reports whether the EPS may be granted full assist
// torque on the angle path.
func fullTorqueWindow(cs VehicleSnapshot, steerMax int) bool {
	return math.Abs(cs.EPSTorque) < float64(steerMax) &&
		math.Abs(cs.SteeringTorque) < maxDriverTorqueAllowance
}
