package shell

import (
	"context"
	"os/exec"
	"time"

	"github.com/Fedja/cloud-tools/pkg/logger"
)

// WaitDelay bounds how long Run waits for output pipes after the process
// has been killed on cancellation.
const WaitDelay = 10 * time.Second

// Runner executes a command and reports how it went.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) *Output
}

// ExecRunner runs commands as child processes. Arguments are handed to the
// process as a vector; no shell is involved.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func NewExecRunner() ExecRunner {
	return ExecRunner{}
}

// Run will execute the named command with given arguments and wait for it.
// Cancelling ctx kills the process.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) *Output {
	output := NewOutput(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = output.stdout
	cmd.Stderr = output.stderr
	cmd.WaitDelay = WaitDelay

	output.Error = cmd.Run()
	output.ExitCode = cmd.ProcessState.ExitCode()
	if output.Error == nil {
		output.ExitCode = 0
	}
	output.LogDebug(logger.FromContext(ctx))
	return output
}
