package conf

import (
	"testing"
	"time"

	"github.com/programme-lv/cfwatch/cfapi"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestSettingsDefaults(t *testing.T) {
	s, err := settingsFromEnv(envOf(map[string]string{
		"CFWATCH_CONFIG_DIR": "/tmp/cfwatch",
	}))
	require.NoError(t, err)
	require.Equal(t, DefaultPollInterval, s.PollInterval)
	require.Equal(t, cfapi.DefaultBaseURL, s.ApiBaseURL)
	require.Equal(t, cfapi.DefaultTimeout, s.HttpTimeout)
	require.Equal(t, "/tmp/cfwatch", s.ConfigDir)
	require.Empty(t, s.StatusAddr)
	require.Empty(t, s.HandleOverride)
}

func TestSettingsOverrides(t *testing.T) {
	s, err := settingsFromEnv(envOf(map[string]string{
		"CFWATCH_HANDLE":        "  tourist ",
		"CFWATCH_POLL_INTERVAL": "2s",
		"CFWATCH_HTTP_TIMEOUT":  "3s",
		"CFWATCH_API_BASE_URL":  "http://127.0.0.1:9000/api",
		"CFWATCH_STATUS_ADDR":   "127.0.0.1:8085",
		"CFWATCH_CONFIG_DIR":    "/tmp/x",
		"CFWATCH_LOG_LEVEL":     "debug",
	}))
	require.NoError(t, err)
	require.Equal(t, "tourist", s.HandleOverride)
	require.Equal(t, 2*time.Second, s.PollInterval)
	require.Equal(t, 3*time.Second, s.HttpTimeout)
	require.Equal(t, "http://127.0.0.1:9000/api", s.ApiBaseURL)
	require.Equal(t, "127.0.0.1:8085", s.StatusAddr)
	require.Equal(t, "debug", s.LogLevel)
}

func TestSettingsRejectsBadDurations(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0s"} {
		_, err := settingsFromEnv(envOf(map[string]string{
			"CFWATCH_POLL_INTERVAL": v,
			"CFWATCH_CONFIG_DIR":    "/tmp/x",
		}))
		require.Error(t, err, v)
	}
}
