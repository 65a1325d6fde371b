package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Result holds the outcome of a single ffmpeg invocation.
type Result struct {
	Code   int
	Stderr string
	Err    error
}

// Executor runs a prepared argument slice. The pipeline depends on this
// interface so stage logic can be tested without an ffmpeg binary.
type Executor interface {
	Execute(ctx context.Context, args []string, verbose bool) Result
}

// Exec is the real Executor.
type Exec struct{}

// Execute runs args[0] with the remaining arguments. When verbose, stderr
// is tee'd to os.Stderr in real time; otherwise it is captured silently and
// surfaced only on failure.
func (Exec) Execute(ctx context.Context, args []string, verbose bool) Result {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	res := Result{Stderr: stderrBuf.String(), Err: err}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			res.Code = ee.ExitCode()
		} else {
			res.Code = 1
		}
	}
	return res
}
