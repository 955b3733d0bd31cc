// Package profile reads the selection input: a RomRaider logger profile
// listing the parameters the user chose to log, in their chosen units.
package profile

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/genlogcfg/internal/ctxlog"
)

// selectedMarker is the livedata value of an entry the user picked.
const selectedMarker = "selected"

// ErrInvalidEntry marks a profile entry that cannot be used.
var ErrInvalidEntry = errors.New("invalid profile entry")

// Selection is one explicitly requested parameter.
type Selection struct {
	ID    string
	Units string
}

// Profile is the parsed selection input.
type Profile struct {
	Protocol string
	Selected []Selection
}

type xmlEntry struct {
	ID       *string `xml:"id,attr"`
	Units    *string `xml:"units,attr"`
	LiveData string  `xml:"livedata,attr"`
}

type xmlProfile struct {
	XMLName   xml.Name   `xml:"profile"`
	Protocol  string     `xml:"protocol,attr"`
	Params    []xmlEntry `xml:"parameters>parameter"`
	ECUParams []xmlEntry `xml:"ecuparams>ecuparam"`
}

// Load reads a profile document. Selected entries without an id or units are
// skipped and reported in the returned diagnostics; a document that cannot be
// parsed at all is an error.
func Load(ctx context.Context, r io.Reader) (*Profile, []error, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Profile loader started.")

	var raw xmlProfile
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	p := &Profile{Protocol: raw.Protocol}
	var diags []error
	for _, group := range [][]xmlEntry{raw.Params, raw.ECUParams} {
		for _, e := range group {
			if e.LiveData != selectedMarker {
				continue
			}
			if e.ID == nil {
				diags = append(diags, fmt.Errorf("%w: id attribute missing in profile", ErrInvalidEntry))
				continue
			}
			if e.Units == nil {
				diags = append(diags, fmt.Errorf("%w: units attribute missing in parameter %s", ErrInvalidEntry, *e.ID))
				continue
			}
			p.Selected = append(p.Selected, Selection{ID: *e.ID, Units: *e.Units})
		}
	}

	logger.Debug("Profile loading complete.", "protocol", p.Protocol, "selected", len(p.Selected), "skipped", len(diags))
	return p, diags, nil
}

// LoadFile opens path and loads it; "-" or "" reads from stdin.
func LoadFile(ctx context.Context, path string, stdin io.Reader) (*Profile, []error, error) {
	if path == "" || path == "-" {
		return Load(ctx, stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening profile %s: %w", path, err)
	}
	defer f.Close()
	return Load(ctx, f)
}
