package recipe

import "strconv"

// Recipe is the parsed form of a recipe YAML file.
type Recipe struct {
	Name         string           `yaml:"name" json:"name"`
	Version      string           `yaml:"version" json:"version"`
	Description  string           `yaml:"description,omitempty" json:"description,omitempty"`
	Rails        string           `yaml:"rails,omitempty" json:"rails,omitempty"`
	Defaults     Defaults         `yaml:"defaults" json:"defaults"`
	Gems         []Gem            `yaml:"gems" json:"gems"`
	Groups       []Group          `yaml:"groups,omitempty" json:"groups,omitempty"`
	PlatformGems map[string][]Gem `yaml:"platform_gems,omitempty" json:"platform_gems,omitempty"`
	Gitignore    []string         `yaml:"gitignore,omitempty" json:"gitignore,omitempty"`
}

// Defaults are substituted whenever the operator leaves an answer blank.
type Defaults struct {
	WebPort   int    `yaml:"web_port" json:"web_port"`
	Platform  string `yaml:"platform" json:"platform"`
	UserModel string `yaml:"user_model" json:"user_model"`
}

// Gem is a single Gemfile declaration.
type Gem struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// Group is a set of gems scoped to one or more Bundler environments.
type Group struct {
	Envs []string `yaml:"envs" json:"envs"`
	Gems []Gem    `yaml:"gems" json:"gems"`
}

// WebPortString returns the default port as text, ready for interpolation.
func (d Defaults) WebPortString() string {
	return strconv.Itoa(d.WebPort)
}

// GemsForPlatform returns the extra gems declared for platform, if any.
func (r *Recipe) GemsForPlatform(platform string) []Gem {
	if r.PlatformGems == nil {
		return nil
	}
	return r.PlatformGems[platform]
}
