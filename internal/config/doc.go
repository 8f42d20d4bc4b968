// Package config manages user-level settings stored at ~/.railstart/config.yaml.
// The keys hold the operator's preferred defaults (web port, hosting platform,
// devise model name, GitHub user, push branch) that replace the recipe's
// defaults whenever a prompt is answered with a blank line.
package config
