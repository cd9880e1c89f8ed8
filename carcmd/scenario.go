package main

import (
	"encoding/json"
	"fmt"
	"os"

	"adas-command-core/carcontrol"
)

// Scenario defines a bench drive: default control inputs plus time segments
// overriding them.
type Scenario struct {
	Meta     ScenarioMeta     `json:"meta"`
	Timing   ScenarioTiming   `json:"timing"`
	Defaults DriveCommand     `json:"defaults"`
	Segments []DriveSegment   `json:"segments"`
}

// ScenarioMeta contains scenario metadata.
type ScenarioMeta struct {
	Name        string `json:"name"`
	Version     int    `json:"version"`
	Description string `json:"description"`
}

// ScenarioTiming defines timing parameters.
type ScenarioTiming struct {
	DurationS float64 `json:"duration_s"`
}

// DriveCommand is the control input applied while a segment is active.
type DriveCommand struct {
	Enabled     bool    `json:"enabled"`
	LatActive   bool    `json:"lat_active"`
	LongActive  bool    `json:"long_active"`
	Steer       float64 `json:"steer"`
	AngleDeg    float64 `json:"angle_deg"`
	Accel       float64 `json:"accel"`
	Cancel      bool    `json:"cancel"`
	LeadVisible bool    `json:"lead_visible"`
}

// DriveSegment overrides the defaults for [T0, T1).
type DriveSegment struct {
	T0      float64 `json:"t0"`
	T1      float64 `json:"t1"`
	DriveCommand
	Comment string `json:"comment,omitempty"`
}

// LoadScenario loads a drive scenario from JSON.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read file: %w", err)
	}

	var scen Scenario
	if err := json.Unmarshal(data, &scen); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal: %w", err)
	}

	if scen.Timing.DurationS <= 0 {
		return Scenario{}, fmt.Errorf("invalid duration_s: %f", scen.Timing.DurationS)
	}
	return scen, nil
}

// EvalDriveCommand evaluates the scenario at time t.
func EvalDriveCommand(scen *Scenario, t float64) DriveCommand {
	cmd := scen.Defaults
	for _, seg := range scen.Segments {
		t1 := seg.T1
		if t1 < 0 {
			t1 = scen.Timing.DurationS
		}
		if t >= seg.T0 && t < t1 {
			cmd = seg.DriveCommand
			break
		}
	}
	return cmd
}

// CarControl converts the drive command into the controller input.
func (cmd DriveCommand) CarControl() carcontrol.CarControl {
	return carcontrol.CarControl{
		Enabled:      cmd.Enabled,
		LatActive:    cmd.LatActive,
		LongActive:   cmd.LongActive,
		CruiseCancel: cmd.Cancel,
		Actuators: carcontrol.DesiredActuators{
			Steer:            cmd.Steer,
			SteeringAngleDeg: cmd.AngleDeg,
			Accel:            cmd.Accel,
		},
		HUD: carcontrol.HUDControl{LeadVisible: cmd.LeadVisible},
	}
}
