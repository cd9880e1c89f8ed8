package carcontrol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adas-command-core/vehicles"
)

func TestAccelClamped(t *testing.T) {
	c := newTestController(t, torqueConfig())

	cc := activeControl()
	cc.Actuators.Accel = 2.0 // above the 1.5 cap

	echo, msgs := c.Update(cc, drivingSnapshot(), time.Now())
	accel, ok := findMsg(msgs, idAccel)
	require.True(t, ok)
	assert.InDelta(t, 1.5, decode(t, accel)["accel_cmd"], 0.001)
	assert.Equal(t, 1.5, echo.Accel)

	cc.Actuators.Accel = -10
	c.frame = 3 // next due frame
	echo, msgs = c.Update(cc, drivingSnapshot(), time.Now())
	accel, _ = findMsg(msgs, idAccel)
	assert.InDelta(t, -3.5, decode(t, accel)["accel_cmd"], 0.001)
	assert.Equal(t, -3.5, echo.Accel)
}

func TestCancelBypassesCadence(t *testing.T) {
	c := newTestController(t, torqueConfig())
	c.frame = 301 // off the 3-cycle cadence

	cc := activeControl()
	cc.CruiseCancel = true

	_, msgs := c.Update(cc, drivingSnapshot(), time.Now())
	accel, ok := findMsg(msgs, idAccel)
	require.True(t, ok, "cancel never waits for the cadence boundary")
	assert.Equal(t, 1.0, decode(t, accel)["cancel_request"])
}

func TestInconsistencyForcesCancel(t *testing.T) {
	c := newTestController(t, torqueConfig())
	c.frame = 1

	// Cruise reports engaged while the system is disabled.
	cc := activeControl()
	cc.Enabled = false
	cs := drivingSnapshot()
	cs.CruiseStatus = 6

	_, msgs := c.Update(cc, cs, time.Now())
	accel, ok := findMsg(msgs, idAccel)
	require.True(t, ok)
	assert.Equal(t, 1.0, decode(t, accel)["cancel_request"])
}

func TestLegacyCancelRouting(t *testing.T) {
	cfg := Config{Platform: vehicles.PlatformSedanSport, SteerControl: SteerControlTorque}
	c := newTestController(t, cfg)
	c.frame = 1

	cc := activeControl()
	cc.CruiseCancel = true

	_, msgs := c.Update(cc, drivingSnapshot(), time.Now())
	_, ok := findMsg(msgs, idCancel)
	assert.True(t, ok, "legacy platform cancels on the dedicated message")
	_, ok = findMsg(msgs, idAccel)
	assert.False(t, ok)
}

func TestCancelSpamWithoutLongControl(t *testing.T) {
	cfg := torqueConfig()
	cfg.LongControl = false
	c := newTestController(t, cfg)
	c.frame = 2

	cc := activeControl()
	cc.CruiseCancel = true
	cc.Actuators.Accel = 1.0

	_, msgs := c.Update(cc, drivingSnapshot(), time.Now())
	accel, ok := findMsg(msgs, idAccel)
	require.True(t, ok)
	got := decode(t, accel)
	assert.Equal(t, 0.0, got["accel_cmd"], "lat-only control never commands acceleration")
	assert.Equal(t, 1.0, got["cancel_request"])
	assert.Equal(t, 0.0, got["standstill_request"])
}

func TestLowSpeedLeadAssertion(t *testing.T) {
	c := newTestController(t, torqueConfig())

	cc := activeControl()
	cs := drivingSnapshot()
	cs.VEgo = 5 // below the low-speed lead threshold

	_, msgs := c.Update(cc, cs, time.Now())
	accel, ok := findMsg(msgs, idAccel)
	require.True(t, ok)
	assert.Equal(t, 1.0, decode(t, accel)["lead_vehicle"])

	c.frame = 3
	cs.VEgo = 20
	_, msgs = c.Update(cc, cs, time.Now())
	accel, _ = findMsg(msgs, idAccel)
	assert.Equal(t, 0.0, decode(t, accel)["lead_vehicle"])

	c.frame = 6
	cc.HUD.LeadVisible = true
	_, msgs = c.Update(cc, cs, time.Now())
	accel, _ = findMsg(msgs, idAccel)
	assert.Equal(t, 1.0, decode(t, accel)["lead_vehicle"])
}

func interceptorConfig() Config {
	return Config{
		Platform:       vehicles.PlatformSUV,
		SteerControl:   SteerControlTorque,
		GasInterceptor: true,
		LongControl:    true,
	}
}

func TestPedalZeroWhenInactive(t *testing.T) {
	c := newTestController(t, interceptorConfig())

	cc := activeControl()
	cc.LongActive = false
	cc.Actuators.Accel = 1.0

	_, msgs := c.Update(cc, drivingSnapshot(), time.Now())
	pedal, ok := findMsg(msgs, idPedal)
	require.True(t, ok, "pedal message still sent on cadence")
	got := decode(t, pedal)
	assert.Equal(t, 0.0, got["gas_cmd"])
	assert.Equal(t, 0.0, got["enable"])
}

func TestPedalScaling(t *testing.T) {
	c := newTestController(t, interceptorConfig())

	cc := activeControl()
	cc.Actuators.Accel = 1.0
	cs := drivingSnapshot()
	cs.VEgo = 0 // scale 0.15, creep offset -0.4

	echo, msgs := c.Update(cc, cs, time.Now())
	pedal, ok := findMsg(msgs, idPedal)
	require.True(t, ok)
	assert.InDelta(t, 0.15*(1.0-0.4), decode(t, pedal)["gas_cmd"], 0.001)
	assert.InDelta(t, 0.09, echo.Gas, 1e-9)
}

func TestPedalCap(t *testing.T) {
	c := newTestController(t, interceptorConfig())

	cc := activeControl()
	cc.Actuators.Accel = 10
	cs := drivingSnapshot()
	cs.VEgo = 2.3 // offset 0, compact of the scale table

	echo, _ := c.Update(cc, cs, time.Now())
	assert.Equal(t, maxPedalCommand, echo.Gas)
}

func TestNoPedalWithoutInterceptor(t *testing.T) {
	c := newTestController(t, torqueConfig())

	for i := 0; i < 6; i++ {
		_, msgs := c.Update(activeControl(), drivingSnapshot(), time.Now())
		assert.Equal(t, 0, countMsg(msgs, idPedal))
	}
}

func TestStandstillRequestLatch(t *testing.T) {
	cfg := Config{Platform: vehicles.PlatformCrossover, SteerControl: SteerControlTorque, LongControl: true}
	c := newTestController(t, cfg)

	cc := activeControl()
	cs := drivingSnapshot()
	cs.CruiseStatus = activeStandstillStatus

	// Entry edge sets the request.
	cs.Standstill = true
	c.Update(cc, cs, time.Now())
	assert.True(t, c.standstill.requested)

	// The request is a level: it survives the standstill flag clearing
	// while the cruise status still reports active standstill.
	cs.Standstill = false
	c.Update(cc, cs, time.Now())
	assert.True(t, c.standstill.requested)

	// Leaving the active-standstill status clears it.
	cs.CruiseStatus = 1
	c.Update(cc, cs, time.Now())
	assert.False(t, c.standstill.requested)
}

func TestStandstillRequestInMessage(t *testing.T) {
	cfg := Config{Platform: vehicles.PlatformCrossover, SteerControl: SteerControlTorque, LongControl: true}
	c := newTestController(t, cfg)

	cc := activeControl()
	cs := drivingSnapshot()
	cs.Standstill = true
	cs.CruiseStatus = activeStandstillStatus

	_, msgs := c.Update(cc, cs, time.Now())
	accel, ok := findMsg(msgs, idAccel)
	require.True(t, ok)
	assert.Equal(t, 1.0, decode(t, accel)["standstill_request"])
}

func TestStandstillSuppression(t *testing.T) {
	// The global flag wins independently of the platform exemption.
	cfg := Config{
		Platform:            vehicles.PlatformCrossover,
		SteerControl:        SteerControlTorque,
		LongControl:         true,
		NoStandstillRequest: true,
	}
	c := newTestController(t, cfg)

	cc := activeControl()
	cs := drivingSnapshot()
	cs.Standstill = true
	cs.CruiseStatus = activeStandstillStatus

	c.Update(cc, cs, time.Now())
	assert.False(t, c.standstill.requested)
}

func TestStandstillPlatformExemption(t *testing.T) {
	// A platform with the stop-hold timer and no interceptor never
	// requests standstill.
	c := newTestController(t, torqueConfig())

	cc := activeControl()
	cs := drivingSnapshot()
	cs.Standstill = true
	cs.CruiseStatus = activeStandstillStatus

	c.Update(cc, cs, time.Now())
	assert.False(t, c.standstill.requested)

	// The same platform with a pedal interceptor does request.
	c2 := newTestController(t, interceptorConfig())
	c2.Update(cc, cs, time.Now())
	assert.True(t, c2.standstill.requested)
}
