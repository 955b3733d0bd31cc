package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/genlogcfg/internal/catalog"
	"github.com/vk/genlogcfg/internal/logcfg"
	"github.com/vk/genlogcfg/internal/param"
	"github.com/vk/genlogcfg/internal/profile"
	"github.com/vk/genlogcfg/internal/resolver"
	"github.com/vk/genlogcfg/internal/settings"
)

var (
	// ErrInvalidSettings wraps every settings validation failure.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrSkippedParameters is returned in strict mode when any diagnostic was
	// reported.
	ErrSkippedParameters = errors.New("parameters were skipped")
)

// Run loads the inputs, resolves the selected parameters and their
// dependencies, and writes the log configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	s, err := a.loadSettings(ctx)
	if err != nil {
		return err
	}
	trigger, err := s.ActiveTrigger()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	cat, err := catalog.LoadFile(ctx, a.config.DefinitionsPath)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}
	a.logger.Debug("Definitions loaded.", "count", cat.Len())

	prof, diags, err := profile.LoadFile(ctx, a.config.ProfilePath, a.inR)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if prof.Protocol != "" && prof.Protocol != s.Protocol {
		a.logger.Debug("Profile protocol differs from output protocol.", "profile", prof.Protocol, "output", s.Protocol)
	}

	r := resolver.New(s.EcuID)
	for _, sel := range prof.Selected {
		r.RegisterSelected(sel.ID, sel.Units)
	}
	if trigger != nil {
		for _, req := range trigger.Requires {
			key, err := param.ParseKey(req)
			if err != nil {
				return fmt.Errorf("%w: trigger %q requires %q: %w", ErrInvalidSettings, trigger.Name, req, err)
			}
			r.Require(key.ID, key.Unit)
		}
	}
	a.logger.Debug("Selection registered.", "selected", len(prof.Selected), "known", r.Len())

	diags = append(diags, r.ResolveAll(ctx, cat)...)
	for _, d := range diags {
		fmt.Fprintf(a.errW, "warning: %v\n", d)
	}
	if a.config.Strict && len(diags) > 0 {
		return fmt.Errorf("%w: %d diagnostic(s) in strict mode", ErrSkippedParameters, len(diags))
	}

	params, err := r.Ordered()
	if err != nil {
		return err
	}

	doc := logcfg.Document{
		Protocol:   s.Protocol,
		Parameters: params,
		Trigger:    trigger,
	}
	if err := a.writeOutput(doc); err != nil {
		return err
	}

	a.logger.Info("Log configuration generated.", "parameters", len(params), "skipped", len(diags), "output", a.config.OutputPath)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// loadSettings reads the settings files and applies the command-line
// overrides.
func (a *App) loadSettings(ctx context.Context) (*settings.Settings, error) {
	s, err := a.loader.Load(ctx, a.config.SettingsPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if a.config.EcuID != "" {
		s.EcuID = a.config.EcuID
	}
	if a.config.Protocol != "" {
		s.Protocol = a.config.Protocol
	}
	if a.config.Trigger != "" {
		s.Trigger = a.config.Trigger
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	a.logger.Debug("Settings resolved.", "protocol", s.Protocol, "trigger", s.Trigger, "ecu_id", s.EcuID)
	return s, nil
}

// writeOutput renders doc in memory first so a failed run leaves no partial
// file behind.
func (a *App) writeOutput(doc logcfg.Document) error {
	if a.config.OutputPath == StdStream {
		return logcfg.Write(a.outW, doc)
	}
	var buf bytes.Buffer
	if err := logcfg.Write(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(a.config.OutputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
