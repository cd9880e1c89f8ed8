package vehiclecan

// Frame names used by the command builders and the snapshot decoder.
const (
	FrameSteerCommand  = "STEER_COMMAND"
	FrameAngleCommand  = "ANGLE_COMMAND"
	FrameAccelCommand  = "ACC_COMMAND"
	FramePedalCommand  = "PEDAL_COMMAND"
	FrameUICommand     = "UI_COMMAND"
	FrameFCWCommand    = "FCW_COMMAND"
	FrameCancelCommand = "CANCEL_COMMAND"

	FrameWheelSpeeds  = "WHEEL_SPEEDS"
	FrameSteerSensor  = "STEER_SENSOR"
	FrameSteerTorque  = "STEER_TORQUE"
	FrameCruiseState  = "CRUISE_STATE"
	FrameBodyState    = "BODY_STATE"
)

// Identifiers of the RX frames the snapshot decoder consumes.
const (
	IDWheelSpeeds uint32 = 0x0AA
	IDSteerSensor uint32 = 0x025
	IDSteerTorque uint32 = 0x260
	IDCruiseState uint32 = 0x1D2
	IDBodyState   uint32 = 0x3B4
)

// DefaultMap returns the built-in frame map for the target ECU family. A CSV
// frame map loaded at startup can override it for bench variants.
func DefaultMap() *CANMap {
	m := &CANMap{ByID: map[uint32]*FrameDef{}, ByName: map[string]*FrameDef{}}

	m.add(&FrameDef{ID: 0x2E4, Name: FrameSteerCommand, DLC: 5, Bus: 0, Signals: []SignalDef{
		{Name: "counter", StartBit: 0, BitLength: 6},
		{Name: "steer_request", StartBit: 6, BitLength: 1},
		{Name: "steer_torque_cmd", StartBit: 8, BitLength: 16, Signed: true, Factor: 1, Min: -1500, Max: 1500, Unit: "unit"},
		{Name: "checksum", StartBit: 32, BitLength: 8},
	}})

	m.add(&FrameDef{ID: 0x191, Name: FrameAngleCommand, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "counter", StartBit: 0, BitLength: 8},
		{Name: "steer_request", StartBit: 8, BitLength: 1},
		{Name: "torque_window", StartBit: 16, BitLength: 8, Factor: 1, Min: 0, Max: 100},
		{Name: "steer_angle_cmd", StartBit: 24, BitLength: 16, Signed: true, Factor: 0.005, Min: -94.9461, Max: 94.9461, Unit: "deg"},
		{Name: "checksum", StartBit: 56, BitLength: 8},
	}})

	m.add(&FrameDef{ID: 0x343, Name: FrameAccelCommand, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "accel_cmd", StartBit: 0, BitLength: 16, Signed: true, Factor: 0.001, Min: -20, Max: 20, Unit: "m/s^2"},
		{Name: "acc_type", StartBit: 16, BitLength: 2},
		{Name: "standstill_request", StartBit: 18, BitLength: 1},
		{Name: "cancel_request", StartBit: 19, BitLength: 1},
		{Name: "lead_vehicle", StartBit: 20, BitLength: 1},
		{Name: "permit_braking", StartBit: 21, BitLength: 1, Default: 1},
		{Name: "checksum", StartBit: 56, BitLength: 8},
	}})

	m.add(&FrameDef{ID: 0x200, Name: FramePedalCommand, DLC: 6, Bus: 0, Signals: []SignalDef{
		{Name: "gas_cmd", StartBit: 0, BitLength: 16, Factor: 0.001, Min: 0, Max: 1},
		{Name: "counter", StartBit: 16, BitLength: 4},
		{Name: "enable", StartBit: 20, BitLength: 1},
		{Name: "checksum", StartBit: 40, BitLength: 8},
	}})

	m.add(&FrameDef{ID: 0x412, Name: FrameUICommand, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "steer_alert", StartBit: 0, BitLength: 1},
		{Name: "chime", StartBit: 1, BitLength: 2},
		{Name: "lane_left", StartBit: 3, BitLength: 1},
		{Name: "lane_right", StartBit: 4, BitLength: 1},
		{Name: "depart_left", StartBit: 5, BitLength: 1},
		{Name: "depart_right", StartBit: 6, BitLength: 1},
		{Name: "engaged", StartBit: 7, BitLength: 1},
	}})

	m.add(&FrameDef{ID: 0x411, Name: FrameFCWCommand, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "collision_warning", StartBit: 0, BitLength: 1},
	}})

	m.add(&FrameDef{ID: 0x2FA, Name: FrameCancelCommand, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "cancel_request", StartBit: 0, BitLength: 1},
		{Name: "checksum", StartBit: 56, BitLength: 8},
	}})

	// RX side, consumed by the snapshot decoder.
	m.add(&FrameDef{ID: IDWheelSpeeds, Name: FrameWheelSpeeds, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "vehicle_speed", StartBit: 0, BitLength: 16, Factor: 0.01, Min: 0, Max: 120, Unit: "m/s"},
	}})

	m.add(&FrameDef{ID: IDSteerSensor, Name: FrameSteerSensor, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "steering_angle", StartBit: 0, BitLength: 16, Signed: true, Factor: 0.05, Min: -500, Max: 500, Unit: "deg"},
		{Name: "steering_rate", StartBit: 16, BitLength: 16, Signed: true, Factor: 1, Min: -2000, Max: 2000, Unit: "deg/s"},
		{Name: "angle_offset", StartBit: 32, BitLength: 16, Signed: true, Factor: 0.05, Min: -20, Max: 20, Unit: "deg"},
	}})

	m.add(&FrameDef{ID: IDSteerTorque, Name: FrameSteerTorque, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "driver_torque", StartBit: 0, BitLength: 16, Signed: true, Factor: 1, Min: -3000, Max: 3000},
		{Name: "eps_torque", StartBit: 16, BitLength: 16, Signed: true, Factor: 1, Min: -3000, Max: 3000},
	}})

	m.add(&FrameDef{ID: IDCruiseState, Name: FrameCruiseState, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "cruise_status", StartBit: 0, BitLength: 4},
		{Name: "acc_type", StartBit: 4, BitLength: 2},
		{Name: "standstill", StartBit: 6, BitLength: 1},
	}})

	m.add(&FrameDef{ID: IDBodyState, Name: FrameBodyState, DLC: 8, Bus: 0, Signals: []SignalDef{
		{Name: "gear", StartBit: 0, BitLength: 3},
		{Name: "door_open", StartBit: 3, BitLength: 1},
	}})

	return m
}
