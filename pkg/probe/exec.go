package probe

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// ExecRunner runs programs found on PATH
type ExecRunner struct{}

// Run executes name with args. A program missing from PATH yields ErrToolMissing.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(ErrToolMissing, "%s", name)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), msg)
		}
		return "", errors.Wrapf(err, "%s %s", name, strings.Join(args, " "))
	}

	return stdout.String(), nil
}
