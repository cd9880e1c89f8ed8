// Package vehicles holds the per-platform constant tables: safety limit
// parameters, pedal-emulation scale breakpoints, capability sets and the
// static keep-alive message table. Lookups fail fast on unknown platforms so
// a bad configuration can never reach the control cycle.
package vehicles

import (
	"fmt"

	"github.com/samber/lo"

	"adas-command-core/limits"
)

// Platform identifies the vehicle configuration the controller is built for.
type Platform string

const (
	PlatformSUV        Platform = "suv"
	PlatformSUVHybrid  Platform = "suv_hybrid"
	PlatformCrossover  Platform = "crossover"
	PlatformCompact    Platform = "compact"
	PlatformSedan      Platform = "sedan"
	PlatformSedanSport Platform = "sedan_sport"
	PlatformMinivan    Platform = "minivan"
)

// Speed breakpoints shared by the pedal tables, m/s.
const (
	MinCruiseSpeed  = 8.49  // below this the native cruise cannot engage on its own
	PedalTransition = 2.01  // blend-out width above MinCruiseSpeed
)

// LimitParams is the per-platform safety envelope.
type LimitParams struct {
	Steer         limits.SteerLimitParams
	AngleRateUp   limits.AngleRateLimit
	AngleRateDown limits.AngleRateLimit
	AccelMin      float64 // m/s^2
	AccelMax      float64 // m/s^2
}

var defaultSteer = limits.SteerLimitParams{
	Max:       1500,
	DeltaUp:   10,
	DeltaDown: 25,
	ErrorMax:  350,
}

var defaultAngleUp = limits.AngleRateLimit{
	SpeedBp: []float64{5, 25},
	AngleV:  []float64{0.3, 0.15},
}

var defaultAngleDown = limits.AngleRateLimit{
	SpeedBp: []float64{5, 25},
	AngleV:  []float64{0.36, 0.26},
}

var limitTable = map[Platform]LimitParams{
	PlatformSUV:        {Steer: defaultSteer, AngleRateUp: defaultAngleUp, AngleRateDown: defaultAngleDown, AccelMin: -3.5, AccelMax: 1.5},
	PlatformSUVHybrid:  {Steer: defaultSteer, AngleRateUp: defaultAngleUp, AngleRateDown: defaultAngleDown, AccelMin: -3.5, AccelMax: 1.5},
	PlatformCrossover:  {Steer: defaultSteer, AngleRateUp: defaultAngleUp, AngleRateDown: defaultAngleDown, AccelMin: -3.5, AccelMax: 1.5},
	PlatformCompact:    {Steer: defaultSteer, AngleRateUp: defaultAngleUp, AngleRateDown: defaultAngleDown, AccelMin: -3.5, AccelMax: 1.5},
	PlatformSedan:      {Steer: defaultSteer, AngleRateUp: defaultAngleUp, AngleRateDown: defaultAngleDown, AccelMin: -3.5, AccelMax: 2.0},
	PlatformSedanSport: {Steer: defaultSteer, AngleRateUp: defaultAngleUp, AngleRateDown: defaultAngleDown, AccelMin: -3.5, AccelMax: 1.5},
	PlatformMinivan:    {Steer: defaultSteer, AngleRateUp: defaultAngleUp, AngleRateDown: defaultAngleDown, AccelMin: -3.5, AccelMax: 1.5},
}

// PedalScale holds the three-point pedal-emulation scale table for a platform.
type PedalScale struct {
	SpeedBp []float64
	ScaleV  []float64
}

var pedalSpeedBp = []float64{0, MinCruiseSpeed, MinCruiseSpeed + PedalTransition}

// Platforms with a sensitive accelerator get a smaller scale.
var pedalScaleTable = map[Platform]PedalScale{
	PlatformSUV:       {SpeedBp: pedalSpeedBp, ScaleV: []float64{0.15, 0.3, 0.0}},
	PlatformSUVHybrid: {SpeedBp: pedalSpeedBp, ScaleV: []float64{0.15, 0.3, 0.0}},
	PlatformCrossover: {SpeedBp: pedalSpeedBp, ScaleV: []float64{0.15, 0.3, 0.0}},
	PlatformCompact:   {SpeedBp: pedalSpeedBp, ScaleV: []float64{0.3, 0.4, 0.0}},
}

var pedalScaleDefault = PedalScale{SpeedBp: pedalSpeedBp, ScaleV: []float64{0.4, 0.5, 0.0}}

// PedalOffset compensates creep torque at low speed and wind drag near the
// blend-out speed; added to the desired acceleration before scaling.
var PedalOffset = PedalScale{
	SpeedBp: []float64{0, 2.3, MinCruiseSpeed + PedalTransition},
	ScaleV:  []float64{-0.4, 0.0, 0.2},
}

var (
	// angleCapable platforms accept the angle steering message and have
	// direct acceleration actuation (no pedal interceptor needed).
	angleCapable = []Platform{PlatformSedan, PlatformSUVHybrid}

	// noStopTimer platforms lack the automatic stop/hold timer and need an
	// explicit standstill request to stay stopped.
	noStopTimer = []Platform{PlatformCrossover, PlatformSedanSport}

	// legacyCancel platforms did not receive the dedicated interface
	// hardware and take cancellation on a distinct message.
	legacyCancel = []Platform{PlatformSedanSport}

	// noHUD platforms have no compatible cluster; UI and collision-alert
	// messages are never sent to them.
	noHUD = []Platform{PlatformMinivan}
)

// All lists every known platform tag.
func All() []Platform {
	return lo.Keys(limitTable)
}

// ParamsFor returns the safety envelope for a platform, or an error for an
// unknown tag.
func ParamsFor(p Platform) (LimitParams, error) {
	params, ok := limitTable[p]
	if !ok {
		return LimitParams{}, fmt.Errorf("no limit params for platform %q", p)
	}
	return params, nil
}

// PedalScaleFor returns the pedal-emulation scale table for a platform.
// Platforms without a dedicated entry use the default table; the platform tag
// itself must still be known.
func PedalScaleFor(p Platform) (PedalScale, error) {
	if _, ok := limitTable[p]; !ok {
		return PedalScale{}, fmt.Errorf("no pedal scale for platform %q", p)
	}
	if scale, ok := pedalScaleTable[p]; ok {
		return scale, nil
	}
	return pedalScaleDefault, nil
}

// AngleCapable reports whether the platform accepts the angle steering
// message and has direct acceleration actuation.
func (p Platform) AngleCapable() bool { return lo.Contains(angleCapable, p) }

// NoStopTimer reports whether the platform needs a standstill request to
// hold at a stop.
func (p Platform) NoStopTimer() bool { return lo.Contains(noStopTimer, p) }

// LegacyCancel reports whether cancellation must use the dedicated legacy
// cancel message.
func (p Platform) LegacyCancel() bool { return lo.Contains(legacyCancel, p) }

// NoHUD reports whether the platform has no compatible cluster display.
func (p Platform) NoHUD() bool { return lo.Contains(noHUD, p) }
