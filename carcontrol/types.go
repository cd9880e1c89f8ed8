package carcontrol

// GearShifter is the decoded transmission selector position.
type GearShifter int

const (
	GearUnknown GearShifter = iota
	GearPark
	GearReverse
	GearNeutral
	GearDrive
	GearLow
)

// VisualAlert selects the cluster alert category requested by the caller.
type VisualAlert int

const (
	AlertNone VisualAlert = iota
	AlertForwardCollision
	AlertSteerRequired
	AlertLaneDeparture
)

// HUDControl carries the caller's display state for the UI message.
type HUDControl struct {
	Visual           VisualAlert
	LeadVisible      bool
	LeftLaneVisible  bool
	RightLaneVisible bool
	LeftLaneDepart   bool
	RightLaneDepart  bool
}

// DesiredActuators is the caller's requested actuation for one cycle. The
// same type is returned as the echo, with the steering fields overwritten by
// the actually-applied, limited values.
type DesiredActuators struct {
	Steer            float64 // torque fraction, [-1, 1]
	SteerOutput      int     // applied torque, actuator units (echo only)
	SteeringAngleDeg float64
	Accel            float64 // m/s^2
	Gas              float64 // pedal-emulation fraction (echo only)
}

// CarControl is the full per-cycle control input.
type CarControl struct {
	Enabled      bool // overall assist system engaged
	LatActive    bool
	LongActive   bool
	CruiseCancel bool // caller requests native cruise cancellation
	Actuators    DesiredActuators
	HUD          HUDControl
}

// VehicleSnapshot is the decoded vehicle state for one cycle. Read-only to
// the controller.
type VehicleSnapshot struct {
	VEgo              float64 // m/s
	Standstill        bool
	Gear              GearShifter
	DoorOpen          bool
	SteeringTorque    float64 // driver torque, sensor units
	EPSTorque         float64 // actuator torque, sensor units
	SteeringRateDeg   float64 // deg/s
	SteeringAngleDeg  float64
	AngleOffsetDeg    float64 // torque-sensor angle bias
	CruiseStatus      uint8   // native cruise status code
	ACCType           uint8
}
