// Package gitutil shells out to the native git binary for the handful of
// read-only operations the governance pipeline needs (current HEAD,
// repository root). Adapted from the teacher's gitutil package, which
// documents why it prefers the native git CLI over go-git for operations
// where go-git's plumbing and git's own behavior can diverge — the same
// rationale applies to HEAD resolution across detached heads, symbolic
// refs, and fresh repositories with no commits yet.
package gitutil

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// ErrUnknownRevision is returned by Head when the working directory is not
// inside a git repository with any commits.
var ErrUnknownRevision = errors.New("git revision unknown")

// Head resolves the current HEAD commit SHA in dir via
// `git rev-parse HEAD`. Trace Ledger Writer callers should treat any
// error here as "UNKNOWN" per spec §4.5, not propagate it.
func Head(ctx context.Context, dir string) (string, error) {
	out, err := runGit(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", ErrUnknownRevision
	}
	return strings.TrimSpace(out), nil
}

// WorktreePath returns the absolute path to the repository's worktree
// root for dir, via `git rev-parse --show-toplevel`.
func WorktreePath(ctx context.Context, dir string) (string, error) {
	out, err := runGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
