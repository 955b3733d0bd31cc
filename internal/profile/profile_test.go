package profile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/genlogcfg/internal/ctxlog"
)

const profileXML = `<?xml version="1.0" encoding="UTF-8"?>
<profile protocol="SSM">
  <parameters>
    <parameter id="P8" units="rpm" livedata="selected" graph="notSelected" dash="notSelected"/>
    <parameter id="P12" units="g/s" livedata="notSelected" graph="selected" dash="notSelected"/>
    <parameter id="P7" units="psi" livedata="selected"/>
    <parameter units="C" livedata="selected"/>
    <parameter id="P2" livedata="selected"/>
  </parameters>
  <switches>
    <switch id="S20" livedata="selected"/>
  </switches>
  <ecuparams>
    <ecuparam id="E1" units="raw ecu value" livedata="selected"/>
  </ecuparams>
</profile>`

func TestLoad(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	p, diags, err := Load(ctx, strings.NewReader(profileXML))
	require.NoError(t, err)

	assert.Equal(t, "SSM", p.Protocol)
	assert.Equal(t, []Selection{
		{ID: "P8", Units: "rpm"},
		{ID: "P7", Units: "psi"},
		{ID: "E1", Units: "raw ecu value"},
	}, p.Selected)

	require.Len(t, diags, 2)
	assert.ErrorIs(t, diags[0], ErrInvalidEntry)
	assert.ErrorContains(t, diags[0], "id attribute missing")
	assert.ErrorContains(t, diags[1], "units attribute missing in parameter P2")
}

func TestLoad_Errors(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())

	_, _, err := Load(ctx, strings.NewReader("<logger/>"))
	assert.ErrorContains(t, err, "failed to decode profile")

	_, _, err = Load(ctx, strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	path := filepath.Join(t.TempDir(), "profile.xml")
	require.NoError(t, os.WriteFile(path, []byte(profileXML), 0644))

	p, _, err := LoadFile(ctx, path, nil)
	require.NoError(t, err)
	assert.Len(t, p.Selected, 3)

	p, _, err = LoadFile(ctx, "-", strings.NewReader(profileXML))
	require.NoError(t, err)
	assert.Len(t, p.Selected, 3)

	_, _, err = LoadFile(ctx, filepath.Join(t.TempDir(), "nope.xml"), nil)
	assert.ErrorContains(t, err, "error opening profile")
}
