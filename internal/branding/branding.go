// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults cover a missing or empty file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GitHubSSHHost string `yaml:"github_ssh_host"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:       "railstart",
			DisplayName:   "Railstart",
			Description:   "One-shot bootstrapper for new Rails applications",
			HomeDir:       ".railstart",
			EnvPrefix:     "RAILSTART",
			GitHubSSHHost: "git@github.com",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "railstart").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".railstart").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "RAILSTART").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubSSHHost returns the user@host prefix used for new origin remotes.
func GitHubSSHHost() string { load(); return defaults.GitHubSSHHost }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("web_port") → "RAILSTART_WEB_PORT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
