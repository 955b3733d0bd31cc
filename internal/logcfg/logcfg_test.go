package logcfg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/genlogcfg/internal/formula"
	"github.com/vk/genlogcfg/internal/param"
	"github.com/vk/genlogcfg/internal/settings"
)

func testParameters() []*param.Parameter {
	return []*param.Parameter{
		{
			ID: "P8", Units: "rpm", Name: "Engine Speed",
			Address: "0x00000E", DataBits: 16,
			Expression: formula.Compile("x/4"),
		},
		{
			ID: "P12", Units: "grams", Name: "Mass Airflow",
			Address: "0x000013", DataBits: 16, Hidden: true,
			Expression: formula.Compile("x/100"),
		},
		{
			ID: "P200", Units: "g/rev", Name: "Engine Load",
			Expression: formula.Compile("([P12:grams]*60)/P8"),
		},
		{
			ID: "E1", Units: "raw", Name: "IAM",
			Address: "0x20A0A8", IsFloat: true,
			Expression: formula.Compile("x"),
		},
	}
}

func TestWrite(t *testing.T) {
	trigger := &settings.Trigger{
		Name: "defogger",
		Parameters: []*settings.TriggerParam{{
			Name: "defogger_trigger", Comment: "Defogger Switch Trigger",
			ParamID: "0x64", DataBits: 1, OffsetBits: 5,
		}},
		Conditions: []*settings.Condition{
			{Action: "start", Comment: "Start log when defogger_trigger == 1", RPN: []string{"defogger_trigger", "1", "=="}},
			{Action: "stop", RPN: []string{"defogger_trigger", "0", "=="}},
		},
	}

	var buf bytes.Buffer
	err := Write(&buf, Document{Protocol: "ssmcan", Parameters: testParameters(), Trigger: trigger})
	require.NoError(t, err)

	expected := `;
; Generated by genlogcfg
;
; --- General ------------------------------------------------
type = ssmcan

; --- Parameters ---------------------------------------------
; P8 - Engine Speed (rpm)
paramname = Engine_Speed_(rpm)
paramid = 0x00000E
databits = 16
scalingrpn = x,4,/

; P12 - Mass Airflow (grams)
paramname = Mass_Airflow_(grams)
paramid = 0x000013
databits = 16
scalingrpn = x,100,/
isvisible = 0

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

conditionrpn = defogger_trigger,0,==
action = stop

`
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_NoTrigger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Document{Protocol: "ssmk"}))

	expected := ";\n; Generated by genlogcfg\n;\n" +
		generalHeader + "\ntype = ssmk\n\n" +
		parametersHeader + "\n" +
		triggersHeader + "\n"
	assert.Equal(t, expected, buf.String())
	assert.NotContains(t, buf.String(), "\r")
}

func TestWrite_FloatOnlyForExtended(t *testing.T) {
	var buf bytes.Buffer
	params := []*param.Parameter{{ID: "P90", Units: "u", Name: "Odd", Address: "0x1", IsFloat: true}}
	require.NoError(t, Write(&buf, Document{Protocol: "ssmk", Parameters: params}))
	assert.NotContains(t, buf.String(), "isfloat")
}

func TestWrite_MalformedExpression(t *testing.T) {
	var buf bytes.Buffer
	params := []*param.Parameter{{ID: "P1", Units: "u", Address: "0x1", Expression: formula.Compile("(x")}}
	err := Write(&buf, Document{Protocol: "ssmk", Parameters: params})
	require.Error(t, err)
	assert.ErrorIs(t, err, formula.ErrMalformedExpression)
	assert.Contains(t, err.Error(), "P1:u")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_PropagatesWriteError(t *testing.T) {
	err := Write(failingWriter{}, Document{Protocol: "ssmk", Parameters: testParameters()})
	assert.EqualError(t, err, "disk full")
}
