package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacoelho/sif/pkg/sifversion"
)

func TestParse(t *testing.T) {
	cfg, err := Parse(`
version = "1.5r1"
strict_type_parsing = true
indent = "  "

[log]
level = "debug"
no_color = true

[metrics]
enabled = true
`)
	require.NoError(t, err)
	require.Equal(t, sifversion.SIF15r1, cfg.Version)
	require.True(t, cfg.StrictTypeParsing)
	require.False(t, cfg.StrictVersioning)
	require.Equal(t, "  ", cfg.Indent)
	require.Equal(t, LogConfig{Level: "debug", NoColor: true}, cfg.Log)
	require.True(t, cfg.Metrics.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, sifversion.Default, cfg.Version)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", `version = `},
		{"unknown version", `version = "9.9"`},
		{"unknown key", `verison = "2.1"`},
		{"wrong type", `strict_versioning = "yes"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Indent = "--"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Level = "loud"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Version = sifversion.New(3, 0, 0)
	require.Error(t, cfg.Validate())
}

func TestLoadAppliesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sif.toml")
	require.NoError(t, os.WriteFile(path, []byte(`version = "2.1"`+"\n"), 0o600))

	t.Setenv(EnvVersion, "1.1")
	t.Setenv(EnvStrictVersioning, "true")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvIndent, "\t")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, sifversion.SIF11, cfg.Version)
	require.True(t, cfg.StrictVersioning)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "\t", cfg.Indent)
	require.NoError(t, cfg.Options().Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	t.Setenv(EnvStrictTypes, "maybe")
	_, err = Load("")
	require.Error(t, err)
}

func TestApplyEnvIgnoresBlank(t *testing.T) {
	cfg := Default()
	env := map[string]string{EnvVersion: " ", EnvMetrics: ""}
	require.NoError(t, applyEnv(&cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	require.Equal(t, Default(), cfg)
}
