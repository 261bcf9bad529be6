package audio

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunResult captures one external command invocation.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts process execution so conversions are testable without
// ffmpeg installed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (RunResult, error)
}

// ExecRunner executes commands via os/exec. Context cancellation kills the
// process, which is how attempt timeouts terminate a stuck tool.
type ExecRunner struct{}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}
	return result, nil
}
