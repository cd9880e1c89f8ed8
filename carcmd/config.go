package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"adas-command-core/carcontrol"
)

// RunnerConfig is the YAML configuration for the command runner.
type RunnerConfig struct {
	Interface string `yaml:"interface"`
	Scenario  string `yaml:"scenario"`
	FrameMap  string `yaml:"frame_map"` // optional CSV override, built-in map when empty
	LogLevel  string `yaml:"log_level"`

	Controller carcontrol.Config `yaml:"controller"`
}

// LoadRunnerConfig reads and validates the runner configuration. Controller
// configuration errors surface later, at controller construction.
func LoadRunnerConfig(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("read config: %w", err)
	}

	var cfg RunnerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Interface == "" {
		cfg.Interface = "vcan0"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Scenario == "" {
		return RunnerConfig{}, fmt.Errorf("config missing scenario path")
	}
	return cfg, nil
}
