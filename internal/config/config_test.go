package config

import (
	"os"
	"path/filepath"
	"testing"

	"titrate/domain/core"
	"titrate/domain/titration"
	"titrate/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, titration.DefaultScenario(), cfg.Scenario)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, internal.LogLevelInfo, cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TITRATION_RATIO", "1:2:1")
	t.Setenv("TITRATION_KIND", "base")
	t.Setenv("TITRATION_UNIT", "L")
	t.Setenv("TITRATION_C_ANALYTE", "0.1")
	t.Setenv("TITRATION_V_ANALYTE", "0.05")
	t.Setenv("TITRATION_FINAL_VOL", "0.1")
	t.Setenv("TITRATION_INCREMENT", "0.001")
	t.Setenv("TITRATION_STRONG_ANALYTE", "true")
	t.Setenv("DATABASE_URL", "runs.db")
	t.Setenv("WORKERS", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	s := cfg.Scenario
	assert.Equal(t, titration.Ratio{1, 2, 1}, s.Ratio)
	assert.Equal(t, titration.Base, s.Kind)
	assert.Equal(t, titration.Liters, s.Unit)
	assert.Equal(t, 0.1, s.CAnalyte)
	assert.Equal(t, 0.05, s.VAnalyte)
	assert.True(t, s.StrongAnalyte)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, internal.LogLevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"unit":    {"TITRATION_UNIT", "gal"},
		"ratio":   {"TITRATION_RATIO", "1:1"},
		"kind":    {"TITRATION_KIND", "salt"},
		"workers": {"WORKERS", "0"},
		"driver":  {"DATABASE_DRIVER", "mysql"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.ErrorIs(t, err, core.ErrConfiguration)
		})
	}
}

func TestLoad_ScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"base","k":1.8e-5,"c_titrant":0.1}`), 0o644))
	t.Setenv("TITRATION_SCENARIO_FILE", path)
	t.Setenv("TITRATION_C_ANALYTE", "0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, titration.Base, cfg.Scenario.Kind)
	assert.Equal(t, 1.8e-5, cfg.Scenario.K)
	assert.Equal(t, 0.1, cfg.Scenario.CTitrant)
	assert.Equal(t, 0.1, cfg.Scenario.CAnalyte)
}

func TestOverlayScenario(t *testing.T) {
	base := titration.DefaultScenario()

	s, err := OverlayScenario([]byte(`{"ratio":"1,1,1","strong_titrant":false,"unit":"L","increment":0.5}`), base)
	require.NoError(t, err)
	assert.Equal(t, titration.Ratio{1, 1, 1}, s.Ratio)
	assert.False(t, s.StrongTitrant)
	assert.Equal(t, titration.Liters, s.Unit)
	assert.Equal(t, 0.5, s.Increment)
	assert.Equal(t, base.CAnalyte, s.CAnalyte)

	s, err = OverlayScenario([]byte(`{"ratio":[2,1,1,2]}`), base)
	require.NoError(t, err)
	assert.Equal(t, titration.Ratio{2, 1, 1, 2}, s.Ratio)

	bad := []string{
		`not json`,
		`[1,2]`,
		`{"c_analyte":"5"}`,
		`{"strong_analyte":1}`,
		`{"ratio":[1,"a",1]}`,
		`{"ratio":true}`,
		`{"kind":"neutral"}`,
	}
	for _, body := range bad {
		_, err := OverlayScenario([]byte(body), base)
		assert.ErrorIs(t, err, core.ErrConfiguration, body)
	}
}

func TestLoadScenarioFile_Missing(t *testing.T) {
	_, err := LoadScenarioFile(filepath.Join(t.TempDir(), "missing.json"), titration.DefaultScenario())
	assert.Error(t, err)
}
