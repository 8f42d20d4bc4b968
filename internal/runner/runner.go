package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ErrCommandFailed wraps every non-zero exit reported by Check.
var ErrCommandFailed = errors.New("command failed")

// Result holds the outcome of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Opts holds optional parameters for command execution.
type Opts struct {
	Dir    string            // working directory (optional)
	Env    map[string]string // extra environment variables (overlay)
	Stdin  io.Reader         // optional
	Stdout io.Writer         // mirror of stdout (optional)
	Stderr io.Writer         // mirror of stderr (optional)
}

// Runner runs external commands.
type Runner interface {
	// Run executes a command. A process that runs and exits non-zero is
	// reported through Result.ExitCode, not an error; errors are reserved for
	// failures to execute at all (binary not found, ctx canceled).
	Run(ctx context.Context, name string, args []string, opts Opts) (Result, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	logger *zap.Logger
}

// NewExec returns an Exec runner. A nil logger disables logging.
func NewExec(logger *zap.Logger) *Exec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exec{logger: logger}
}

// Run executes the command, mirroring output to opts writers while capturing it.
func (e *Exec) Run(ctx context.Context, name string, args []string, opts Opts) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, opts.Stdout)
	}
	if opts.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, opts.Stderr)
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	e.logger.Debug("running command",
		zap.String("cmd", name),
		zap.Strings("args", args),
		zap.String("dir", opts.Dir))

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			e.logger.Debug("command exited non-zero",
				zap.String("cmd", name),
				zap.Int("exit_code", result.ExitCode))
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Check turns a Run outcome into a single error: execution failures are
// wrapped as-is, non-zero exits become ErrCommandFailed with stderr attached.
func Check(res Result, err error, name string, args []string) error {
	line := CommandLine(name, args)
	if err != nil {
		return fmt.Errorf("running %s: %w", line, err)
	}
	if res.ExitCode != 0 {
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(res.Stdout)
		}
		if detail != "" {
			return fmt.Errorf("%s exited with status %d: %w: %s", line, res.ExitCode, ErrCommandFailed, lastLines(detail, 5))
		}
		return fmt.Errorf("%s exited with status %d: %w", line, res.ExitCode, ErrCommandFailed)
	}
	return nil
}

// CommandLine renders name and args for logs and messages.
func CommandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
