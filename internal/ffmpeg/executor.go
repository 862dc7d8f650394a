package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs args (binary first) to completion. Stderr is captured for
// error classification; when tee is set it is additionally mirrored to the
// process stderr in real time for verbose runs.
func Execute(ctx context.Context, args []string, tee bool) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if tee {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	if err != nil {
		err = &Error{Args: args, Stderr: stderrBuf.String(), Err: err}
	}
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
