package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ApplyOptions configures patch application.
type ApplyOptions struct {
	// Check only checks whether the patch applies.
	Check bool

	// Cached applies to the index only.
	Cached bool

	// Reverse reverses the patch.
	Reverse bool

	// ThreeWay attempts a three-way merge, leaving conflict markers.
	ThreeWay bool

	// WhitespaceNowarn suppresses whitespace warnings.
	WhitespaceNowarn bool
}

// Apply feeds the patch to git apply on stdin. An empty conflicts string
// means the patch applied cleanly. When git rejects or partially applies
// the patch its diagnostic text is returned verbatim for the host to show;
// the viewer never interprets it. A non-nil error means git could not be
// run at all.
func (r *Repository) Apply(patch []byte, opts ApplyOptions) (conflicts string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	args := []string{"apply"}
	if opts.Check {
		args = append(args, "--check")
	}
	if opts.Cached {
		args = append(args, "--cached")
	}
	if opts.Reverse {
		args = append(args, "-R")
	}
	if opts.ThreeWay {
		args = append(args, "-3")
	}
	if opts.WhitespaceNowarn {
		args = append(args, "--whitespace=nowarn")
	}
	args = append(args, "-")

	cmd := newGitCommand(r.path, args...).toExecCmd()
	cmd.Stdin = bytes.NewReader(patch)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	r.invalidateStatusCacheLocked()

	if runErr == nil {
		return "", nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		text := strings.TrimSpace(stderr.String())
		if text == "" {
			text = fmt.Sprintf("git apply failed with status %d", exitErr.ExitCode())
		}
		return text, nil
	}
	return "", fmt.Errorf("apply patch: %w", runErr)
}
