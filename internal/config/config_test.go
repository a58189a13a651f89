package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"STUDYKIT_DB", "STUDYKIT_PROFILE", "STUDYKIT_LOG_LEVEL", "STUDYKIT_LOG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultProfile, cfg.Profile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "txt", cfg.Export.DefaultFormat)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Empty(t, cfg.DB)
}

func TestLoad_FileEnvFlagPriority(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db: /from/file.db
profile: file-profile
log:
  level: debug
export:
  default_format: xlsx
`), 0o644))

	t.Setenv("STUDYKIT_PROFILE", "env-profile")

	v := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	require.NoError(t, v.BindPFlag(KeyDB, flags.Lookup("db")))
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag.db"}))

	cfg, err := Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag.db", cfg.DB, "flag beats file")
	assert.Equal(t, "env-profile", cfg.Profile, "env beats file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "xlsx", cfg.Export.DefaultFormat)
}

func TestLoad_DefaultFileIsOptional(t *testing.T) {
	isolate(t)
	_, err := Load(New(), "")
	assert.NoError(t, err)
}

func TestLoad_DefaultFileIsRead(t *testing.T) {
	isolate(t)
	p, err := DefaultPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("profile: xdg\n"), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "xdg", cfg.Profile)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	isolate(t)
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Profile: "  "}
	assert.Error(t, cfg.Validate())

	cfg = Config{Profile: "p", Log: LogConfig{MaxBackups: -1}}
	assert.Error(t, cfg.Validate())

	cfg = Config{Profile: "p"}
	assert.NoError(t, cfg.Validate())
}
