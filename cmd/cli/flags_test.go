package main

import (
	"os"
	"path/filepath"
	"testing"

	"titrate/domain/core"
	"titrate/domain/titration"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) (*cobra.Command, *scenarioFlags) {
	t.Helper()
	var f scenarioFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &f
}

func TestScenarioFlags_OnlyChangedFlagsOverride(t *testing.T) {
	base := titration.DefaultScenario()
	base.CAnalyte = 0.3
	base.Unit = titration.Liters

	cmd, f := parseFlags(t, "--kind", "base", "--k", "1.8e-5", "--ratio", "1:2:1")
	s, err := f.apply(cmd, base)
	require.NoError(t, err)

	assert.Equal(t, titration.Base, s.Kind)
	assert.Equal(t, 1.8e-5, s.K)
	assert.Equal(t, titration.Ratio{1, 2, 1}, s.Ratio)
	assert.Equal(t, 0.3, s.CAnalyte, "unset flag keeps configured value")
	assert.Equal(t, titration.Liters, s.Unit)
}

func TestScenarioFlags_BadValues(t *testing.T) {
	cmd, f := parseFlags(t, "--kind", "salt")
	_, err := f.apply(cmd, titration.DefaultScenario())
	assert.ErrorIs(t, err, core.ErrConfiguration)

	cmd, f = parseFlags(t, "--ratio", "1:x:1")
	_, err = f.apply(cmd, titration.DefaultScenario())
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestScenarioFlags_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"c_titrant": 0.2, "final_vol": 40}`), 0o644))

	cmd, f := parseFlags(t, "--scenario", path, "--final", "60")
	s, err := f.apply(cmd, titration.DefaultScenario())
	require.NoError(t, err)
	assert.Equal(t, 0.2, s.CTitrant)
	assert.Equal(t, 60.0, s.FinalVol)
}
