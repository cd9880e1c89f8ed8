// Package limits provides the bounded-rate and magnitude limiters applied to
// actuator commands before they are encoded onto the bus. All functions are
// pure: previous output in, limited output out.
package limits

import "math"

// SteerLimitParams bounds the steering torque command.
type SteerLimitParams struct {
	Max       int // absolute torque cap, actuator units
	DeltaUp   int // max increase in magnitude per cycle
	DeltaDown int // max decrease in magnitude per cycle
	ErrorMax  int // allowed deviation from the measured EPS torque
}

// AngleRateLimit is a speed-indexed per-cycle angle rate table.
// Rates tighten as speed grows.
type AngleRateLimit struct {
	SpeedBp []float64 // m/s, ascending
	AngleV  []float64 // deg per command cycle
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Interp evaluates a piecewise-linear function given by breakpoints xs and
// values ys at x, clamping to the end values outside the table. xs must be
// ascending and the same length as ys; tables are fixed per vehicle
// configuration, so this is not re-validated per call.
func Interp(x float64, xs, ys []float64) float64 {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	for i := 1; i < len(xs); i++ {
		if x < xs[i] {
			span := xs[i] - xs[i-1]
			if span <= 0 {
				return ys[i]
			}
			t := (x - xs[i-1]) / span
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[len(ys)-1]
}

// ApplySteerTorqueLimits returns the next applied steering torque, bounded by
// the window around the measured EPS torque, the absolute cap, and the
// per-cycle rate limits. Moving away from zero is limited to DeltaUp per
// cycle; moving toward zero (or through it) is allowed DeltaDown. The
// measured-torque window gives extra allowance while the EPS opposes the
// commanded direction.
func ApplySteerTorqueLimits(next, last, measured int, p SteerLimitParams) int {
	maxLim := min(max(measured+p.ErrorMax, p.ErrorMax), p.Max)
	minLim := max(min(measured-p.ErrorMax, -p.ErrorMax), -p.Max)
	next = ClampInt(next, minLim, maxLim)

	if last > 0 {
		next = ClampInt(next, max(last-p.DeltaDown, -p.DeltaUp), last+p.DeltaUp)
	} else {
		next = ClampInt(next, last-p.DeltaUp, min(last+p.DeltaDown, p.DeltaUp))
	}
	return next
}

// ApplySteerAngleLimits rate-limits the commanded steering angle relative to
// the last command. The wind-up table applies while the command grows in
// magnitude without changing sign; the wind-down table otherwise. The active
// rate is interpolated over speed.
func ApplySteerAngleLimits(desired, last, speed float64, up, down AngleRateLimit) float64 {
	windUp := desired*last >= 0 && math.Abs(desired) > math.Abs(last)
	table := down
	if windUp {
		table = up
	}
	rate := Interp(speed, table.SpeedBp, table.AngleV)
	return Clamp(desired, last-rate, last+rate)
}
