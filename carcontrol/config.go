package carcontrol

import (
	"fmt"

	"adas-command-core/vehicles"
)

// SteerControlType selects the lateral command path. The two paths are
// mutually exclusive and fixed at construction: when angle control is
// selected, the torque command and its request flag are structurally zero.
type SteerControlType string

const (
	SteerControlTorque SteerControlType = "torque"
	SteerControlAngle  SteerControlType = "angle"
)

// Config is the immutable controller configuration. Feature toggles live
// here, not in ambient global state.
type Config struct {
	Platform     vehicles.Platform `yaml:"platform"`
	SteerControl SteerControlType  `yaml:"steer_control"`

	// GasInterceptor marks vehicles without direct acceleration actuation;
	// longitudinal control goes through the pedal-emulation message.
	GasInterceptor bool `yaml:"gas_interceptor"`

	// LongControl enables the longitudinal command path. With it off, only
	// cancel spam is sent on the accel message.
	LongControl bool `yaml:"long_control"`

	// RadarBypassed gates the forward-collision message and the static
	// keep-alive table that stands in for the bypassed support unit.
	RadarBypassed bool `yaml:"radar_bypassed"`

	// Door automation toggles.
	AutoUnlock bool `yaml:"auto_unlock"` // unlock on shifting into park
	AutoLock   bool `yaml:"auto_lock"`   // lock on drive at speed

	// NoStandstillRequest suppresses the standstill request globally,
	// independent of the per-platform stop-timer exemption.
	NoStandstillRequest bool `yaml:"no_standstill_request"`
}

func (c Config) validate() error {
	if _, err := vehicles.ParamsFor(c.Platform); err != nil {
		return err
	}
	switch c.SteerControl {
	case SteerControlTorque:
	case SteerControlAngle:
		if !c.Platform.AngleCapable() {
			return fmt.Errorf("platform %q does not support angle steer control", c.Platform)
		}
	default:
		return fmt.Errorf("invalid steer_control %q", c.SteerControl)
	}
	if c.GasInterceptor && c.Platform.AngleCapable() {
		return fmt.Errorf("platform %q has direct acceleration actuation, interceptor not applicable", c.Platform)
	}
	return nil
}
