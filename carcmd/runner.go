package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"adas-command-core/carcontrol"
	"adas-command-core/vehiclecan"
)

var log = logrus.WithField("module", "carcmd")

// Runner drives the controller at the control period, feeding it scenario
// inputs and the decoded vehicle snapshot, and transmits the returned
// messages.
type Runner struct {
	cfg    RunnerConfig
	scen   Scenario
	ctrl   *carcontrol.CarController
	dec    *SnapshotDecoder
	writer vehiclecan.Writer
	reader vehiclecan.Reader
}

func NewRunner(ctx context.Context, cfg RunnerConfig) (*Runner, error) {
	cmap := vehiclecan.DefaultMap()
	if cfg.FrameMap != "" {
		var err error
		cmap, err = vehiclecan.LoadCANMap(cfg.FrameMap)
		if err != nil {
			return nil, fmt.Errorf("load frame map: %w", err)
		}
	}

	scen, err := LoadScenario(cfg.Scenario)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	ctrl, err := carcontrol.New(cfg.Controller, cmap)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}

	writer, err := vehiclecan.NewSocketCANWriter(ctx, cfg.Interface)
	if err != nil {
		return nil, err
	}
	reader, err := vehiclecan.NewSocketCANReader(ctx, cfg.Interface)
	if err != nil {
		writer.Close()
		return nil, err
	}

	return &Runner{
		cfg:    cfg,
		scen:   scen,
		ctrl:   ctrl,
		dec:    NewSnapshotDecoder(cmap),
		writer: writer,
		reader: reader,
	}, nil
}

func (r *Runner) Close() {
	if r.reader != nil {
		_ = r.reader.Close()
	}
	if r.writer != nil {
		_ = r.writer.Close()
	}
}

func (r *Runner) Run(ctx context.Context) error {
	log.WithFields(logrus.Fields{
		"iface":    r.cfg.Interface,
		"scenario": r.scen.Meta.Name,
		"duration": r.scen.Timing.DurationS,
		"platform": r.cfg.Controller.Platform,
	}).Info("starting command cycle")

	start := time.Now()
	ticker := time.NewTicker(carcontrol.ControlPeriod)
	defer ticker.Stop()

	endAfter := time.Duration(r.scen.Timing.DurationS * float64(time.Second))

	// The rx goroutine owns the decoder; the cycle loop keeps the latest
	// snapshot it was handed. The controller always runs on pre-fetched
	// state, never on a blocking read.
	rxChan := make(chan carcontrol.VehicleSnapshot, 16)
	go r.receiveLoop(ctx, rxChan)

	var snap carcontrol.VehicleSnapshot
	var sent uint64
	for {
		select {
		case <-ctx.Done():
			log.WithField("frames_sent", sent).Info("stopping command cycle")
			return ctx.Err()

		case s := <-rxChan:
			snap = s

		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if elapsed > endAfter {
				log.WithField("frames_sent", sent).Info("scenario complete")
				return nil
			}

			cmd := EvalDriveCommand(&r.scen, elapsed.Seconds())
			echo, msgs := r.ctrl.Update(cmd.CarControl(), snap, now)

			for _, msg := range msgs {
				if err := r.writer.WriteMessage(ctx, msg); err != nil {
					log.WithError(err).Error("transmit failed")
					return err
				}
				sent++
			}

			log.WithFields(logrus.Fields{
				"frame": r.ctrl.Frame(),
				"msgs":  len(msgs),
				"steer": echo.SteerOutput,
				"accel": echo.Accel,
			}).Trace("cycle transmitted")
		}
	}
}

// receiveLoop folds incoming frames into the snapshot decoder and forwards
// the updated snapshot. Drops are fine; only the latest state matters.
func (r *Runner) receiveLoop(ctx context.Context, out chan<- carcontrol.VehicleSnapshot) {
	log.Debug("rx loop started")
	defer log.Debug("rx loop stopped")

	for {
		frame, err := r.reader.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).Error("rx error")
			continue
		}
		r.dec.Apply(frame)
		select {
		case out <- r.dec.Snapshot():
		default:
		}
	}
}
