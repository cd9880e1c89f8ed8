package vehiclecan

import "fmt"

// Door lock controller message. Raw payloads, no signal map entry.
const doorCommandID uint32 = 0x750

var (
	unlockPayload = []byte{0x40, 0x05, 0x30, 0x11, 0x00, 0x40, 0x00, 0x00}
	lockPayload   = []byte{0x40, 0x05, 0x30, 0x11, 0x00, 0x80, 0x00, 0x00}
)

// Encoder builds the semantic command messages the controller emits. All
// frame lookups happen at construction, so the per-cycle builders are total:
// any out-of-range value is clamped by the codec, never rejected.
type Encoder struct {
	steer  *FrameDef
	angle  *FrameDef
	accel  *FrameDef
	pedal  *FrameDef
	ui     *FrameDef
	fcw    *FrameDef
	cancel *FrameDef
}

// NewEncoder resolves the command frames in the map, failing fast if any is
// missing.
func NewEncoder(m *CANMap) (*Encoder, error) {
	e := &Encoder{}
	for _, f := range []struct {
		name string
		dst  **FrameDef
	}{
		{FrameSteerCommand, &e.steer},
		{FrameAngleCommand, &e.angle},
		{FrameAccelCommand, &e.accel},
		{FramePedalCommand, &e.pedal},
		{FrameUICommand, &e.ui},
		{FrameFCWCommand, &e.fcw},
		{FrameCancelCommand, &e.cancel},
	} {
		fd, err := m.FrameByName(f.name)
		if err != nil {
			return nil, fmt.Errorf("encoder: %w", err)
		}
		*f.dst = fd
	}
	return e, nil
}

// SteerCommand builds the torque steering message. Sent every cycle; the
// counter wraps with the signal width.
func (e *Encoder) SteerCommand(counter uint32, torque int, request bool) Message {
	return encodeDef(e.steer, map[string]float64{
		"counter":          float64(counter % 64),
		"steer_request":    boolToFloat(request),
		"steer_torque_cmd": float64(torque),
	})
}

// AngleCommand builds the angle steering message for angle-capable
// platforms. torqueWindow is the EPS torque permission field: 100 while full
// assist torque is allowed, 0 otherwise.
func (e *Encoder) AngleCommand(counter uint32, angleDeg float64, active bool, torqueWindow uint8) Message {
	return encodeDef(e.angle, map[string]float64{
		"counter":         float64(counter % 256),
		"steer_request":   boolToFloat(active),
		"torque_window":   float64(torqueWindow),
		"steer_angle_cmd": angleDeg,
	})
}

// AccelCommand builds the longitudinal command with its cancel, standstill
// and lead flags.
func (e *Encoder) AccelCommand(accel float64, accType uint8, cancel, standstill, lead bool) Message {
	return encodeDef(e.accel, map[string]float64{
		"accel_cmd":          accel,
		"acc_type":           float64(accType),
		"standstill_request": boolToFloat(standstill),
		"cancel_request":     boolToFloat(cancel),
		"lead_vehicle":       boolToFloat(lead),
		"permit_braking":     1,
	})
}

// PedalCommand builds the pedal-emulation message. A zero command encodes an
// exact zero with the enable bit clear, so the interceptor never holds a
// residual value.
func (e *Encoder) PedalCommand(gas float64, counter uint32) Message {
	return encodeDef(e.pedal, map[string]float64{
		"gas_cmd": gas,
		"counter": float64(counter % 16),
		"enable":  boolToFloat(gas > 0),
	})
}

// UICommand builds the cluster alert message. benignChime substitutes the
// soft tone while a forced disengagement is pending.
func (e *Encoder) UICommand(steerAlert, benignChime, laneLeft, laneRight, departLeft, departRight, engaged bool) Message {
	chime := 0.0
	if benignChime {
		chime = 1
	}
	return encodeDef(e.ui, map[string]float64{
		"steer_alert":  boolToFloat(steerAlert),
		"chime":        chime,
		"lane_left":    boolToFloat(laneLeft),
		"lane_right":   boolToFloat(laneRight),
		"depart_left":  boolToFloat(departLeft),
		"depart_right": boolToFloat(departRight),
		"engaged":      boolToFloat(engaged),
	})
}

// CollisionAlert builds the forward-collision warning message.
func (e *Encoder) CollisionAlert(active bool) Message {
	return encodeDef(e.fcw, map[string]float64{
		"collision_warning": boolToFloat(active),
	})
}

// CancelCommand builds the dedicated cancel message used by legacy
// platforms without the normal interface hardware.
func (e *Encoder) CancelCommand() Message {
	return encodeDef(e.cancel, map[string]float64{"cancel_request": 1})
}

// LockCommand builds the door lock message.
func LockCommand() Message {
	return Message{ID: doorCommandID, Bus: 0, Data: append([]byte(nil), lockPayload...)}
}

// UnlockCommand builds the door unlock message.
func UnlockCommand() Message {
	return Message{ID: doorCommandID, Bus: 0, Data: append([]byte(nil), unlockPayload...)}
}

// RawMessage wraps a fixed payload, used for the static keep-alive table.
func RawMessage(id uint32, bus uint8, payload []byte) Message {
	return Message{ID: id, Bus: bus, Data: append([]byte(nil), payload...)}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
