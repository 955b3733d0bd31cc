package app

import (
	"errors"
)

// StdStream is the path value meaning stdin for the profile or stdout for the
// output.
const StdStream = "-"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DefinitionsPath string   // RomRaider logger definitions (.xml) or catalog (.yaml)
	ProfilePath     string   // RomRaider profile; empty or "-" reads stdin
	OutputPath      string   // logcfg.txt; empty or "-" writes stdout
	SettingsPaths   []string // HCL settings files, applied in order

	// Overrides for the settings files. Empty means keep the setting.
	EcuID    string
	Protocol string
	Trigger  string

	// Strict fails the run when any parameter was skipped.
	Strict bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DefinitionsPath == "" {
		return nil, errors.New("DefinitionsPath is a required configuration field and cannot be empty")
	}
	if cfg.ProfilePath == "" {
		cfg.ProfilePath = StdStream
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = StdStream
	}
	return &cfg, nil
}
