package main

import (
	"go.einride.tech/can"

	"adas-command-core/carcontrol"
	"adas-command-core/vehiclecan"
)

// SnapshotDecoder folds received frames into the latest vehicle snapshot.
// Only the known state frames are decoded; everything else is ignored.
type SnapshotDecoder struct {
	cmap *vehiclecan.CANMap
	snap carcontrol.VehicleSnapshot
}

func NewSnapshotDecoder(cmap *vehiclecan.CANMap) *SnapshotDecoder {
	return &SnapshotDecoder{cmap: cmap}
}

// Snapshot returns the most recent decoded state.
func (d *SnapshotDecoder) Snapshot() carcontrol.VehicleSnapshot {
	return d.snap
}

// Apply decodes one received frame into the snapshot. Unknown identifiers
// and short payloads are skipped silently; state retains its last value.
func (d *SnapshotDecoder) Apply(frame can.Frame) {
	id := frame.ID
	switch id {
	case vehiclecan.IDWheelSpeeds, vehiclecan.IDSteerSensor, vehiclecan.IDSteerTorque,
		vehiclecan.IDCruiseState, vehiclecan.IDBodyState:
	default:
		return
	}

	values, err := d.cmap.DecodeFrame(id, frame.Data[:frame.Length])
	if err != nil {
		log.WithError(err).Debug("snapshot decode failed")
		return
	}

	switch id {
	case vehiclecan.IDWheelSpeeds:
		d.snap.VEgo = values["vehicle_speed"]
	case vehiclecan.IDSteerSensor:
		d.snap.SteeringAngleDeg = values["steering_angle"]
		d.snap.SteeringRateDeg = values["steering_rate"]
		d.snap.AngleOffsetDeg = values["angle_offset"]
	case vehiclecan.IDSteerTorque:
		d.snap.SteeringTorque = values["driver_torque"]
		d.snap.EPSTorque = values["eps_torque"]
	case vehiclecan.IDCruiseState:
		d.snap.CruiseStatus = uint8(values["cruise_status"])
		d.snap.ACCType = uint8(values["acc_type"])
		d.snap.Standstill = values["standstill"] != 0
	case vehiclecan.IDBodyState:
		d.snap.Gear = decodeGear(values["gear"])
		d.snap.DoorOpen = values["door_open"] != 0
	}
}

func decodeGear(v float64) carcontrol.GearShifter {
	switch int(v) {
	case 1:
		return carcontrol.GearPark
	case 2:
		return carcontrol.GearReverse
	case 3:
		return carcontrol.GearNeutral
	case 4:
		return carcontrol.GearDrive
	case 5:
		return carcontrol.GearLow
	default:
		return carcontrol.GearUnknown
	}
}
