package shell

import (
	"bytes"
	"strings"

	"github.com/Fedja/cloud-tools/pkg/logger"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
)

// Output is a wrapper around the output of a command.
type Output struct {
	Command        string
	Args           []string
	ExitCode       int
	Error          error
	stdout, stderr *bytes.Buffer
}

// NewOutput returns a new output struct.
func NewOutput(command string, args []string) *Output {
	return &Output{
		ExitCode: -1,
		Command:  command,
		Args:     args,

		stdout: bytes.NewBuffer([]byte{}),
		stderr: bytes.NewBuffer([]byte{}),
	}
}

// NewCompletedOutput builds the Output of a command that already finished.
// Runners that do not spawn processes use it.
func NewCompletedOutput(
	command string,
	args []string,
	exitCode int,
	stdout, stderr string,
	err error,
) *Output {
	o := NewOutput(command, args)
	o.ExitCode = exitCode
	o.Error = err
	o.stdout.WriteString(stdout)
	o.stderr.WriteString(stderr)
	return o
}

// Succeeded checks if the command exited with status 0.
func (o *Output) Succeeded() bool {
	return o.Error == nil && o.ExitCode == 0
}

func (o *Output) StdoutString() string {
	return o.stdout.String()
}

func (o *Output) StderrString() string {
	return o.stderr.String()
}

// CombinedString returns stdout followed by stderr, trimmed.
func (o *Output) CombinedString() string {
	parts := make([]string, 0, 2)
	for _, s := range []string{o.stdout.String(), o.stderr.String()} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// CommandLine renders the command quoted the way a POSIX shell would need it.
func (o *Output) CommandLine() string {
	return shellquote.Join(append([]string{o.Command}, o.Args...)...)
}

// LogDebug records the whole invocation at debug level.
func (o *Output) LogDebug(l *logger.Logger) {
	l.DebugWithFields("Ran command",
		zap.String("command", o.CommandLine()),
		zap.Int("exit_code", o.ExitCode),
		zap.String("stdout", o.stdout.String()),
		zap.String("stderr", o.stderr.String()),
	)
}
