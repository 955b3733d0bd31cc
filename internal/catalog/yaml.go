package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/genlogcfg/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// yamlDocument is the top level of a YAML catalog.
type yamlDocument struct {
	Parameters []*Definition `yaml:"parameters"`
}

// LoadYAML reads a catalog written as YAML:
//
//	parameters:
//	  - id: P8
//	    name: Engine Speed
//	    address: {value: "0x00000E", length: 2}
//	    conversions:
//	      - {units: rpm, expr: "x/4", storagetype: uint16}
func LoadYAML(ctx context.Context, r io.Reader) (*Memory, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML catalog loader started.")

	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode definitions: %w", err)
	}

	mem := NewMemory()
	for i, def := range doc.Parameters {
		if def == nil || def.ID == "" {
			return nil, fmt.Errorf("parameters[%d]: id is required", i)
		}
		if !mem.Add(def) {
			logger.Debug("Duplicate definition ignored.", "id", def.ID)
		}
	}

	logger.Debug("YAML catalog loading complete.", "definitions", mem.Len())
	return mem, nil
}
