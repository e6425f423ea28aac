package tools

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// run invokes name with args in workDir, returning entities.ExternalToolStartupError
// if the binary cannot be started and entities.ExternalToolFailureError on a
// non-zero exit.
func run(ctx context.Context, workDir string, name string, args ...string) error {
	_, _, err := capture(ctx, workDir, name, args...)
	return err
}

// capture runs name with args in workDir and returns its separated
// stdout/stderr.
func capture(ctx context.Context, workDir string, name string, args ...string) (stdout []byte, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); ok {
			return outBuf.Bytes(), errBuf.Bytes(), &entities.ExternalToolFailureError{
				Tool:     name,
				Op:       args[0],
				ExitCode: cmd.ProcessState.ExitCode(),
				Stderr:   errBuf.String(),
			}
		}
		return nil, nil, &entities.ExternalToolStartupError{Tool: name, Err: runErr}
	}
	return outBuf.Bytes(), errBuf.Bytes(), nil
}
