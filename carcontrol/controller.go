// Package carcontrol synthesizes the per-cycle bus command sequence for the
// assisted-driving actuator interface. Each fixed-period cycle takes the
// desired actuators and the decoded vehicle snapshot and returns the limited
// actuator echo plus the ordered outbound messages.
package carcontrol

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"adas-command-core/limits"
	"adas-command-core/vehiclecan"
	"adas-command-core/vehicles"
)

// ControlPeriod is the external invocation cadence the frame counter is
// defined against.
const ControlPeriod = 10 * time.Millisecond

// Message cadence divisors over the frame counter.
const (
	cadenceAngle uint32 = 2
	cadencePedal uint32 = 2
	cadenceAccel uint32 = 3
	cadenceUI    uint32 = 20
	cadenceFCW   uint32 = 100
)

// CarController owns the cycle state. It is single-threaded by contract: one
// Update call per control period, no reentrancy, no blocking inside.
type CarController struct {
	cfg        Config
	params     vehicles.LimitParams
	pedalScale vehicles.PedalScale
	statics    []vehicles.StaticMessage
	enc        *vehiclecan.Encoder

	frame            uint32 // wraps modulo 2^32; cadences are frame % N
	lastSteer        int
	lastAngle        float64
	steerRateCounter uint32
	accel            float64
	gas              float64

	alert      alertLatch
	standstill standstillLatch
	doors      doorAutomation
}

// New builds a controller for the configured platform. All table lookups and
// frame resolutions happen here; an unknown platform or a missing frame is a
// construction error, never a silent default.
func New(cfg Config, cmap *vehiclecan.CANMap) (*CarController, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cmap == nil {
		cmap = vehiclecan.DefaultMap()
	}

	params, err := vehicles.ParamsFor(cfg.Platform)
	if err != nil {
		return nil, err
	}
	pedalScale, err := vehicles.PedalScaleFor(cfg.Platform)
	if err != nil {
		return nil, err
	}
	enc, err := vehiclecan.NewEncoder(cmap)
	if err != nil {
		return nil, err
	}

	return &CarController{
		cfg:        cfg,
		params:     params,
		pedalScale: pedalScale,
		statics:    vehicles.StaticMessagesFor(cfg.Platform),
		enc:        enc,
		doors:      newDoorAutomation(),
	}, nil
}

// Frame returns the current cycle counter, for diagnostics.
func (c *CarController) Frame() uint32 { return c.frame }

func (c *CarController) due(divisor uint32) bool { return c.frame%divisor == 0 }

// Update runs one control cycle. It returns the actuator echo with the
// steering fields overwritten by the applied, limited values, and the
// ordered message sequence to transmit. now is used for diagnostics only;
// all control decisions are frame-counted.
func (c *CarController) Update(cc CarControl, cs VehicleSnapshot, now time.Time) (DesiredActuators, []vehiclecan.Message) {
	latActive := cc.LatActive && math.Abs(cs.SteeringTorque) < maxUserTorque

	msgs := make([]vehiclecan.Message, 0, 8)

	// Door automation first; its message leads the cycle output.
	switch c.doors.update(cs.Gear, cs.DoorOpen, cs.VEgo) {
	case doorUnlock:
		if c.cfg.AutoUnlock {
			msgs = append(msgs, vehiclecan.UnlockCommand())
		}
	case doorLock:
		if c.cfg.AutoLock {
			msgs = append(msgs, vehiclecan.LockCommand())
		}
	}

	// Steering. The torque message goes out every cycle; holding the full
	// rate keeps the EPS rate limit keyed to consecutive messages.
	lat := c.updateLateral(cc, cs, latActive)
	msgs = append(msgs, c.enc.SteerCommand(c.frame, lat.applySteer, lat.steerRequest))

	if c.due(cadenceAngle) && c.cfg.Platform.AngleCapable() {
		angleActive := latActive && c.cfg.SteerControl == SteerControlAngle
		var window uint8
		if angleActive && fullTorqueWindow(cs, c.params.Steer.Max) {
			window = 100
		}
		angle := 0.0
		if angleActive {
			angle = c.lastAngle
		}
		msgs = append(msgs, c.enc.AngleCommand(c.frame/2, angle, angleActive, window))
	}

	// Longitudinal. A pending cancel never waits for the cadence boundary.
	cancel := cc.CruiseCancel
	if !cc.Enabled && cs.CruiseStatus != 0 {
		// Native cruise reports engaged while the system is disabled;
		// force a cancel to resolve the inconsistency.
		cancel = true
	}

	eligible := (c.cfg.Platform.NoStopTimer() || c.cfg.GasInterceptor) && !c.cfg.NoStandstillRequest
	c.standstill.update(cs.Standstill, cs.CruiseStatus, eligible)

	accelCmd := c.clampAccel(cc.Actuators.Accel)
	if (c.due(cadenceAccel) && c.cfg.LongControl) || cancel {
		lead := cc.HUD.LeadVisible || cs.VEgo < lowSpeedLead
		switch {
		case cancel && c.cfg.Platform.LegacyCancel():
			msgs = append(msgs, c.enc.CancelCommand())
		case c.cfg.LongControl:
			msgs = append(msgs, c.enc.AccelCommand(accelCmd, cs.ACCType, cancel, c.standstill.requested, lead))
			c.accel = accelCmd
		default:
			msgs = append(msgs, c.enc.AccelCommand(0, cs.ACCType, cancel, false, lead))
		}
	}

	if c.due(cadencePedal) && c.cfg.GasInterceptor && c.cfg.LongControl {
		gas := c.pedalCommand(cc, cs)
		msgs = append(msgs, c.enc.PedalCommand(gas, c.frame/2))
		c.gas = gas
	}

	// Cluster alerts. Edges bypass the cadence in both directions; a
	// pending cancel also forces a send with the benign chime.
	if !c.cfg.Platform.NoHUD() {
		edge := c.alert.update(cc.collisionAlert() || cc.steerAlert())
		sendUI := edge || cancel
		if c.due(cadenceUI) || sendUI {
			msgs = append(msgs, c.enc.UICommand(cc.steerAlert(), cancel,
				cc.HUD.LeftLaneVisible, cc.HUD.RightLaneVisible,
				cc.HUD.LeftLaneDepart, cc.HUD.RightLaneDepart, cc.Enabled))
		}
		if (c.due(cadenceFCW) || sendUI) && c.cfg.RadarBypassed {
			msgs = append(msgs, c.enc.CollisionAlert(cc.collisionAlert()))
		}
	}

	// Static keep-alives for the bypassed support unit.
	if c.cfg.RadarBypassed {
		for _, sm := range c.statics {
			if c.frame%sm.Cadence == 0 {
				msgs = append(msgs, vehiclecan.RawMessage(sm.ID, sm.Bus, sm.Payload))
			}
		}
	}

	echo := cc.Actuators
	echo.Steer = float64(c.lastSteer) / float64(c.params.Steer.Max)
	echo.SteerOutput = c.lastSteer
	echo.SteeringAngleDeg = c.lastAngle
	echo.Accel = c.accel
	echo.Gas = c.gas

	if log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		log.WithFields(logrus.Fields{
			"frame": c.frame,
			"msgs":  len(msgs),
			"steer": c.lastSteer,
			"accel": c.accel,
			"t":     now.UnixNano(),
		}).Trace("cycle")
	}

	c.frame++
	return echo, msgs
}

// clampAccel bounds the acceleration command to the platform envelope.
func (c *CarController) clampAccel(accel float64) float64 {
	return limits.Clamp(accel, c.params.AccelMin, c.params.AccelMax)
}
