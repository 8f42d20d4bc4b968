package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/railstart-labs/railstart/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Supported configuration keys.
const (
	KeyWebPort    = "web_port"
	KeyPlatform   = "platform"
	KeyUserModel  = "user_model"
	KeyGitHubUser = "github_user"
	KeyPushBranch = "push_branch"
)

var knownKeys = map[string]string{
	KeyWebPort:    "default port written to .env",
	KeyPlatform:   "default hosting platform",
	KeyUserModel:  "default devise model name",
	KeyGitHubUser: "default GitHub username for new repositories",
	KeyPushBranch: "branch pushed to a newly created origin",
}

var v = viper.New()

// Dir returns the path to the config directory (~/.railstart/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.railstart/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Environment variables take the form RAILSTART_<KEY>.
func Load() {
	v = viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = v.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// GetOr returns the value for key, or fallback when it is unset or blank.
func GetOr(key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

// IsKnownKey reports whether key is one of the supported settings.
func IsKnownKey(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

// Keys returns the supported keys with their descriptions, sorted by key.
func Keys() [][2]string {
	out := make([][2]string, 0, len(knownKeys))
	for k, d := range knownKeys {
		out = append(out, [2]string{k, d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	v.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
