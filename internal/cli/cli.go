package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/genlogcfg/internal/app"
	"github.com/vk/genlogcfg/internal/settings"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes returned by the process.
const (
	ExitFailure = 1
	ExitUsage   = 2
	ExitCycle   = 3
)

const longHelp = `Generate a Tactrix OpenPort logcfg.txt from a RomRaider logger profile.

Arguments:
  DEFINITIONS   RomRaider logger definitions (.xml) or a YAML catalog (.yaml)
  PROFILE       RomRaider logger profile, defaults to STDIN
  OUTPUT        Tactrix logcfg, defaults to STDOUT

Selected parameters are written together with every parameter their
conversions depend on, dependencies first. Parameters that cannot be
resolved are skipped with a warning on STDERR.`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		config        *app.Config
		settingsPaths []string
		ecuID         string
		protocol      string
		trigger       string
		strict        bool
		logFormat     string
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:           "genlogcfg [flags] DEFINITIONS [PROFILE] [OUTPUT]",
		Short:         "Generate a Tactrix logcfg from a RomRaider profile",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				slog.Debug("No definitions path provided, printing usage and exiting.")
				return cmd.Usage()
			}

			logFormat = strings.ToLower(logFormat)
			if logFormat != "text" && logFormat != "json" {
				return &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
			}
			logLevel = strings.ToLower(logLevel)
			switch logLevel {
			case "debug", "info", "warn", "error":
				// valid
			default:
				return &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
			}
			slog.Debug("CLI parameter validation complete.")

			cfg := app.Config{
				DefinitionsPath: args[0],
				SettingsPaths:   settingsPaths,
				EcuID:           ecuID,
				Protocol:        strings.ToLower(protocol),
				Trigger:         trigger,
				Strict:          strict,
				LogFormat:       logFormat,
				LogLevel:        logLevel,
			}
			if len(args) > 1 {
				cfg.ProfilePath = args[1]
			}
			if len(args) > 2 {
				cfg.OutputPath = args[2]
			}

			var err error
			config, err = app.NewConfig(cfg)
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVar(&ecuID, "ecu-id", "", "ECU id for extended parameters.")
	flags.StringVar(&trigger, "trigger", "", fmt.Sprintf("Log start/stop trigger: a trigger name or '%s' (default %q).", settings.TriggerNone, settings.DefaultTrigger))
	flags.StringVar(&protocol, "protocol", "", fmt.Sprintf("Logging protocol: '%s' or '%s' (default %q).", settings.ProtocolSSMK, settings.ProtocolSSMCAN, settings.DefaultProtocol))
	flags.StringArrayVarP(&settingsPaths, "config", "c", nil, "HCL settings file; may be repeated.")
	flags.BoolVar(&strict, "strict", false, "Fail if any selected parameter is skipped.")
	flags.StringVar(&logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	if config == nil {
		// Help or usage was printed.
		return nil, true, nil
	}
	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
