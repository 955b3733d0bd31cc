package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile loads a catalog from path, choosing the format by extension:
// `.yaml` and `.yml` are YAML, anything else is RomRaider XML.
func LoadFile(ctx context.Context, path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening definitions %s: %w", path, err)
	}
	defer f.Close()

	var mem *Memory
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		mem, err = LoadYAML(ctx, f)
	default:
		mem, err = LoadXML(ctx, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mem, nil
}
