package runner

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// DryRun prints commands instead of running them and reports success.
type DryRun struct {
	w      io.Writer
	logger *zap.Logger
}

// NewDryRun returns a DryRun runner printing to w.
func NewDryRun(w io.Writer, logger *zap.Logger) *DryRun {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRun{w: w, logger: logger}
}

// Run prints the command line and returns an empty successful result.
func (d *DryRun) Run(_ context.Context, name string, args []string, opts Opts) (Result, error) {
	fmt.Fprintf(d.w, "[dry-run] %s\n", CommandLine(name, args))
	d.logger.Debug("skipped command", zap.String("cmd", name), zap.Strings("args", args), zap.String("dir", opts.Dir))
	return Result{}, nil
}
