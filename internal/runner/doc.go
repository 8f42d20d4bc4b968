// Package runner invokes external commands (Bundler, Rails generators, Rake,
// git) behind a narrow interface: command name, arguments, working directory.
// The process exit status is the only contract; output is streamed to the
// operator and captured for error messages.
package runner
