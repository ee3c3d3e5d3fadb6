package cli

import (
	"bytes"
	"io"
	"testing"
)

func runCommand(t *testing.T, stdin io.Reader, args ...string) (stdout string, err error) {
	t.Helper()

	cmd := NewRootCmd()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"--quiet", "--mock-llm", "--mock-transcribe"}, args...))

	err = cmd.Execute()
	return outBuf.String(), err
}
