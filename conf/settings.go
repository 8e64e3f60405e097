package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/programme-lv/cfwatch/cfapi"
)

const (
	DefaultPollInterval = 500 * time.Millisecond
	appDirName          = "cfwatch"
)

// Settings are the per-process knobs. Unlike the Store, nothing here is
// ever written back.
type Settings struct {
	HandleOverride string
	PollInterval   time.Duration
	ApiBaseURL     string
	HttpTimeout    time.Duration
	StatusAddr     string
	ConfigDir      string
	LogLevel       string
}

// LoadSettings reads .env files (missing ones are fine) and then the
// process environment.
func LoadSettings(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return settingsFromEnv(os.Getenv)
}

func settingsFromEnv(getenv func(string) string) (Settings, error) {
	s := Settings{
		HandleOverride: strings.TrimSpace(getenv("CFWATCH_HANDLE")),
		PollInterval:   DefaultPollInterval,
		ApiBaseURL:     cfapi.DefaultBaseURL,
		HttpTimeout:    cfapi.DefaultTimeout,
		StatusAddr:     getenv("CFWATCH_STATUS_ADDR"),
		ConfigDir:      getenv("CFWATCH_CONFIG_DIR"),
		LogLevel:       getenv("CFWATCH_LOG_LEVEL"),
	}

	var err error
	if s.PollInterval, err = durationFromEnv(getenv, "CFWATCH_POLL_INTERVAL", DefaultPollInterval); err != nil {
		return Settings{}, err
	}
	if s.HttpTimeout, err = durationFromEnv(getenv, "CFWATCH_HTTP_TIMEOUT", cfapi.DefaultTimeout); err != nil {
		return Settings{}, err
	}
	if v := getenv("CFWATCH_API_BASE_URL"); v != "" {
		s.ApiBaseURL = v
	}

	if s.ConfigDir == "" {
		s.ConfigDir, err = defaultConfigDir()
		if err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

func durationFromEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}
