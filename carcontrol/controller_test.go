package carcontrol

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adas-command-core/vehiclecan"
	"adas-command-core/vehicles"
)

const (
	idSteer  uint32 = 0x2E4
	idAngle  uint32 = 0x191
	idAccel  uint32 = 0x343
	idPedal  uint32 = 0x200
	idUI     uint32 = 0x412
	idFCW    uint32 = 0x411
	idCancel uint32 = 0x2FA
	idDoor   uint32 = 0x750
)

func newTestController(t *testing.T, cfg Config) *CarController {
	t.Helper()
	c, err := New(cfg, nil)
	require.NoError(t, err)
	return c
}

func torqueConfig() Config {
	return Config{
		Platform:     vehicles.PlatformSUV,
		SteerControl: SteerControlTorque,
		LongControl:  true,
	}
}

func findMsg(msgs []vehiclecan.Message, id uint32) (vehiclecan.Message, bool) {
	for _, m := range msgs {
		if m.ID == id {
			return m, true
		}
	}
	return vehiclecan.Message{}, false
}

func countMsg(msgs []vehiclecan.Message, id uint32) int {
	n := 0
	for _, m := range msgs {
		if m.ID == id {
			n++
		}
	}
	return n
}

func decode(t *testing.T, msg vehiclecan.Message) map[string]float64 {
	t.Helper()
	got, err := vehiclecan.DefaultMap().DecodeFrame(msg.ID, msg.Data)
	require.NoError(t, err)
	return got
}

func activeControl() CarControl {
	return CarControl{Enabled: true, LatActive: true, LongActive: true}
}

func drivingSnapshot() VehicleSnapshot {
	return VehicleSnapshot{VEgo: 20, Gear: GearDrive, CruiseStatus: 1}
}

func TestConstructionFailsFast(t *testing.T) {
	_, err := New(Config{Platform: "hovercraft", SteerControl: SteerControlTorque}, nil)
	assert.Error(t, err)

	_, err = New(Config{Platform: vehicles.PlatformSUV, SteerControl: SteerControlAngle}, nil)
	assert.Error(t, err, "angle control on a torque-only platform")

	_, err = New(Config{Platform: vehicles.PlatformSedan, SteerControl: SteerControlTorque, GasInterceptor: true}, nil)
	assert.Error(t, err, "interceptor on a direct-actuation platform")

	_, err = New(Config{Platform: vehicles.PlatformSUV, SteerControl: "sideways"}, nil)
	assert.Error(t, err)
}

func TestLongitudinalCadence(t *testing.T) {
	c := newTestController(t, torqueConfig())
	c.frame = 300

	_, msgs := c.Update(activeControl(), drivingSnapshot(), time.Now())
	_, ok := findMsg(msgs, idAccel)
	assert.True(t, ok, "frame 300 is on the 3-cycle cadence")
	assert.Equal(t, uint32(301), c.Frame())

	_, msgs = c.Update(activeControl(), drivingSnapshot(), time.Now())
	_, ok = findMsg(msgs, idAccel)
	assert.False(t, ok, "frame 301 is off-cadence with no cancel pending")
}

func TestSteerCommandEveryCycle(t *testing.T) {
	c := newTestController(t, torqueConfig())
	for i := 0; i < 10; i++ {
		_, msgs := c.Update(activeControl(), drivingSnapshot(), time.Now())
		assert.Equal(t, 1, countMsg(msgs, idSteer), "cycle %d", i)
	}
}

func TestFrameCounterWraparound(t *testing.T) {
	c := newTestController(t, torqueConfig())
	c.frame = math.MaxUint32 - 1

	_, msgs := c.Update(activeControl(), drivingSnapshot(), time.Now())
	assert.Equal(t, 1, countMsg(msgs, idSteer))
	assert.Equal(t, uint32(math.MaxUint32), c.Frame())

	_, msgs = c.Update(activeControl(), drivingSnapshot(), time.Now())
	assert.Equal(t, 1, countMsg(msgs, idSteer))
	assert.Equal(t, uint32(0), c.Frame(), "counter wraps modulo 2^32")

	// Frame 0 after the wrap is on every cadence.
	_, msgs = c.Update(activeControl(), drivingSnapshot(), time.Now())
	_, ok := findMsg(msgs, idAccel)
	assert.True(t, ok)
	_, ok = findMsg(msgs, idUI)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), c.Frame())
}

func TestStageEmissionOrder(t *testing.T) {
	cfg := torqueConfig()
	cfg.AutoLock = true
	cfg.RadarBypassed = true
	c := newTestController(t, cfg)

	cc := activeControl()
	cs := drivingSnapshot()
	cs.VEgo = 15 // lock fires on the first cycle in drive at speed

	_, msgs := c.Update(cc, cs, time.Now())

	idxOf := func(id uint32) int {
		for i, m := range msgs {
			if m.ID == id {
				return i
			}
		}
		t.Fatalf("message 0x%X not emitted", id)
		return -1
	}

	// Frame 0 is on every cadence: door, steer, accel, ui, fcw, statics.
	assert.Less(t, idxOf(idDoor), idxOf(idSteer))
	assert.Less(t, idxOf(idSteer), idxOf(idAccel))
	assert.Less(t, idxOf(idAccel), idxOf(idUI))
	assert.Less(t, idxOf(idUI), idxOf(idFCW))
	assert.Less(t, idxOf(idFCW), idxOf(0x4CB), "statics come last")
}

func TestStaticKeepalives(t *testing.T) {
	cfg := torqueConfig()
	cfg.RadarBypassed = true
	c := newTestController(t, cfg)

	_, msgs := c.Update(activeControl(), drivingSnapshot(), time.Now())
	// Frame 0: every static entry for the platform is due.
	for _, sm := range vehicles.StaticMessagesFor(cfg.Platform) {
		got, ok := findMsg(msgs, sm.ID)
		require.True(t, ok, "static 0x%X", sm.ID)
		assert.Equal(t, sm.Payload, got.Data)
		assert.Equal(t, sm.Bus, got.Bus)
	}

	// Without the bypass flag nothing static is sent.
	cfg.RadarBypassed = false
	c = newTestController(t, cfg)
	_, msgs = c.Update(activeControl(), drivingSnapshot(), time.Now())
	for _, sm := range vehicles.StaticMessagesFor(cfg.Platform) {
		assert.Equal(t, 0, countMsg(msgs, sm.ID))
	}
}

func TestActuatorEcho(t *testing.T) {
	c := newTestController(t, torqueConfig())

	cc := activeControl()
	cc.Actuators.Steer = 1.0
	cc.Actuators.Accel = 1.0

	echo, _ := c.Update(cc, drivingSnapshot(), time.Now())
	// First cycle from rest: the rate limit allows DeltaUp units.
	assert.Equal(t, 10, echo.SteerOutput)
	assert.InDelta(t, 10.0/1500.0, echo.Steer, 1e-9)
	assert.Equal(t, 1.0, echo.Accel)
	assert.Equal(t, 0.0, echo.Gas)
}
