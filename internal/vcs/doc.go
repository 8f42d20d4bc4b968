// Package vcs bootstraps version control for a new application: git
// repository setup through the runner package, and creation of a remote
// repository through the GitHub REST API.
package vcs
