package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultStatsInterval, cfg.StatsInterval)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

// TestLoadDefaultsAndOverrides writes a config file and checks that defined
// keys override the defaults.
func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.toml")
	doc := "poll_interval = \"5ms\"\ndebug = true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, DefaultStatsInterval, cfg.StatsInterval)
	assert.True(t, cfg.Debug)
}

func TestParseDisablesStats(t *testing.T) {
	cfg, err := Parse(`stats_interval = "0s"`)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.StatsInterval)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want string
	}{
		{"bad duration", `poll_interval = "soon"`, "parse poll_interval"},
		{"zero poll interval", `poll_interval = "0s"`, "poll_interval must be positive"},
		{"negative stats interval", `stats_interval = "-1s"`, "stats_interval must not be negative"},
		{"unknown key", `poll = "1s"`, `unknown key "poll"`},
		{"malformed toml", `poll_interval = `, "config: parse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
