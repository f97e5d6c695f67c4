// Package exec runs the external ImageMagick-family binaries behind an
// injectable interface so tests can substitute canned process output.
package exec

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandExecutor spawns one subprocess per call. The caller hands the
// complete rendered command line to a shell (sh -c), so implementations
// never interpret quoting themselves. Stdout and stderr are captured
// separately; the caller decides how to combine them.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// RealCommandExecutor is the production implementation on os/exec.
type RealCommandExecutor struct{}

// Execute spawns the subprocess and waits for it to finish, buffering
// both output streams. The returned error reports spawn or wait
// failures; a nonzero exit status is not treated specially here.
func (r *RealCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// DefaultExecutor returns the executor used when none is injected.
func DefaultExecutor() CommandExecutor {
	return &RealCommandExecutor{}
}
