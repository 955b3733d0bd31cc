package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/genlogcfg/internal/settings"
)

const definitionsXML = `<?xml version="1.0" encoding="UTF-8"?>
<logger version="3.0">
  <protocols>
    <protocol id="SSM">
      <parameters>
        <parameter id="P8" name="Engine Speed">
          <address length="2">0x00000E</address>
          <conversions>
            <conversion units="rpm" expr="x/4"/>
          </conversions>
        </parameter>
        <parameter id="P12" name="Mass Airflow">
          <address length="2">0x000013</address>
          <conversions>
            <conversion units="grams" expr="x/100"/>
            <conversion units="pounds" expr="x/755.9"/>
          </conversions>
        </parameter>
        <parameter id="P200" name="Engine Load">
          <depends>
            <ref parameter="P8"/>
            <ref parameter="P12"/>
          </depends>
          <conversions>
            <conversion units="g/rev" expr="([P12:grams]*60)/P8"/>
          </conversions>
        </parameter>
        <parameter id="PA" name="Loop A">
          <conversions><conversion units="u" expr="[PB:u]+1"/></conversions>
        </parameter>
        <parameter id="PB" name="Loop B">
          <conversions><conversion units="u" expr="[PA:u]*2"/></conversions>
        </parameter>
      </parameters>
      <ecuparams>
        <ecuparam id="E1" name="IAM">
          <ecu id="2F12785206,4B12785206">
            <address length="1">0x20A0A8</address>
          </ecu>
          <conversions>
            <conversion units="raw" expr="x" storagetype="float"/>
          </conversions>
        </ecuparam>
      </ecuparams>
    </protocol>
  </protocols>
</logger>`

// profileXML builds a profile selecting the given id:unit keys.
func profileXML(keys ...string) string {
	var b strings.Builder
	b.WriteString(`<profile protocol="SSM"><parameters>`)
	b.WriteString(`<parameter id="P7" units="psi" livedata="notselected"/>`)
	for _, k := range keys {
		id, unit, _ := strings.Cut(k, ":")
		b.WriteString(`<parameter id="` + id + `" units="` + unit + `" livedata="selected"/>`)
	}
	b.WriteString(`</parameters></profile>`)
	return b.String()
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// setupAppTest creates an app reading the profile from stdin and writing to
// buffers. Full debug logs are printed when GENLOGCFG_TEST_LOGS=true.
func setupAppTest(t *testing.T, cfg Config, stdin string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	if cfg.DefinitionsPath == "" {
		cfg.DefinitionsPath = writeTemp(t, "logger.xml", definitionsXML)
	}
	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	loader := &settings.Loader{Env: map[string]string{"ECU_ID": "4B12785206"}}
	testApp := NewApp(out, errOut, strings.NewReader(stdin), config, loader)

	t.Cleanup(func() {
		if os.Getenv("GENLOGCFG_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), errOut.String())
		}
	})
	return testApp, out, errOut
}
