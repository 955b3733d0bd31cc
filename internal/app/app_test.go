package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/genlogcfg/internal/dag"
	"github.com/vk/genlogcfg/internal/resolver"
)

const expectedDefogger = `;
; Generated by genlogcfg
;
; --- General ------------------------------------------------
type = ssmk

; --- Parameters ---------------------------------------------
; P12 - Mass Airflow (grams)
paramname = Mass_Airflow_(grams)
paramid = 0x000013
databits = 16
scalingrpn = x,100,/
isvisible = 0

; P8 - Engine Speed (rpm)
paramname = Engine_Speed_(rpm)
paramid = 0x00000E
databits = 16
scalingrpn = x,4,/

; P200 - Engine Load (g/rev)
paramname = Engine_Load_(g/rev)

; E1 - IAM (raw)
paramname = IAM_(raw)
paramid = 0x20A0A8
isfloat = 1
scalingrpn = x

; Defogger Switch Trigger
paramname = defogger_trigger
paramid = 0x64
databits = 1
offsetbits = 5
isvisible = 0

; --- Triggers -----------------------------------------------
; Start log when defogger_trigger == 1
conditionrpn = defogger_trigger,1,==
action = start

; Stop log when defogger_trigger == 0
conditionrpn = defogger_trigger,0,==
action = stop

`

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{DefinitionsPath: "logger.xml"})
	require.NoError(t, err)
	assert.Equal(t, StdStream, cfg.ProfilePath)
	assert.Equal(t, StdStream, cfg.OutputPath)
}

func TestRun(t *testing.T) {
	stdin := profileXML("P200:g/rev", "P8:rpm", "P99:psi", "E1:raw")
	testApp, out, errOut := setupAppTest(t, Config{EcuID: "4B12785206"}, stdin)

	require.NoError(t, testApp.Run(context.Background()))

	if diff := cmp.Diff(expectedDefogger, out.String()); diff != "" {
		t.Errorf("Run() output mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, errOut.String(), "warning: P99:psi: parameter definition not found: P99\n")
}

func TestRun_EngineTriggerRequiresSpeed(t *testing.T) {
	stdin := profileXML("P12:pounds")
	testApp, out, _ := setupAppTest(t, Config{Trigger: "engine", Protocol: "ssmcan"}, stdin)

	require.NoError(t, testApp.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "type = ssmcan\n")
	assert.Contains(t, got, "; P8 - Engine Speed (rpm)\nparamname = Engine_Speed_(rpm)\nparamid = 0x00000E\ndatabits = 16\nscalingrpn = x,4,/\nisvisible = 0\n")
	assert.Contains(t, got, "conditionrpn = Engine_Speed_(rpm),0,>\naction = start\n")
	assert.NotContains(t, got, "defogger_trigger")
}

func TestRun_NoTrigger(t *testing.T) {
	testApp, out, _ := setupAppTest(t, Config{Trigger: "none"}, profileXML("P8:rpm"))
	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, out.String(), "; --- Triggers -----------------------------------------------\n")
	assert.NotContains(t, out.String(), "conditionrpn")
}

func TestRun_Cycle(t *testing.T) {
	testApp, out, _ := setupAppTest(t, Config{}, profileXML("PA:u", "P8:rpm"))

	err := testApp.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrCyclicDependency)
	assert.ErrorIs(t, err, dag.ErrCycle)
	assert.Empty(t, out.String(), "no output is written when the order cannot be computed")
}

func TestRun_Strict(t *testing.T) {
	testApp, out, errOut := setupAppTest(t, Config{Strict: true}, profileXML("P8:rps"))

	err := testApp.Run(context.Background())
	assert.ErrorIs(t, err, ErrSkippedParameters)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "unit not found for parameter P8: rps")
}

func TestRun_ProfileDiagnostics(t *testing.T) {
	stdin := `<profile><parameters><parameter id="P8" livedata="selected"/></parameters></profile>`
	testApp, out, errOut := setupAppTest(t, Config{}, stdin)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, errOut.String(), "units attribute missing in parameter P8")
	assert.NotContains(t, out.String(), "; P8")
}

func TestRun_SettingsAndOutputFile(t *testing.T) {
	settingsPath := writeTemp(t, "settings.hcl", `
settings {
  protocol = "ssmcan"
  ecu_id   = env.ECU_ID
}
`)
	outPath := filepath.Join(t.TempDir(), "logcfg.txt")
	cfg := Config{SettingsPaths: []string{settingsPath}, OutputPath: outPath}
	testApp, out, errOut := setupAppTest(t, cfg, profileXML("E1:raw"))

	require.NoError(t, testApp.Run(context.Background()))
	assert.Empty(t, out.String())
	assert.NotContains(t, errOut.String(), "warning:")

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "type = ssmcan\n")
	assert.Contains(t, string(written), "paramid = 0x20A0A8\nisfloat = 1\n")
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       Config
		stdin     string
		expectErr error
		expectMsg string
	}{
		{
			name:      "unknown protocol",
			cfg:       Config{Protocol: "obd2"},
			stdin:     profileXML("P8:rpm"),
			expectErr: ErrInvalidSettings,
		},
		{
			name:      "unknown trigger",
			cfg:       Config{Trigger: "ignition"},
			stdin:     profileXML("P8:rpm"),
			expectErr: ErrInvalidSettings,
		},
		{
			name:      "missing definitions",
			cfg:       Config{DefinitionsPath: filepath.Join(os.TempDir(), "genlogcfg-missing.xml")},
			stdin:     profileXML("P8:rpm"),
			expectMsg: "failed to load definitions",
		},
		{
			name:      "unreadable profile",
			stdin:     "not xml",
			expectMsg: "failed to load profile",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testApp, out, _ := setupAppTest(t, tc.cfg, tc.stdin)
			err := testApp.Run(context.Background())
			require.Error(t, err)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			}
			if tc.expectMsg != "" {
				assert.Contains(t, err.Error(), tc.expectMsg)
			}
			assert.Empty(t, out.String())
		})
	}
}
