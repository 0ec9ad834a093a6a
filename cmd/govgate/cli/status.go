package cli

import (
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// worktreeSummary renders a short "what changed" line for workdir using
// go-git's worktree status — a read-only complement to the Trace Ledger
// Writer's own git-CLI-based HEAD resolution (internal/gitutil), wired
// here since no other command in this CLI otherwise exercises go-git.
func worktreeSummary(workdir string) string {
	repo, err := git.PlainOpenWithOptions(workdir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	wt, err := repo.Worktree()
	if err != nil {
		return ""
	}
	status, err := wt.Status()
	if err != nil || status.IsClean() {
		return ""
	}

	var changed []string
	for path, s := range status {
		if s.Worktree != git.Unmodified || s.Staging != git.Unmodified {
			changed = append(changed, path)
		}
	}
	if len(changed) == 0 {
		return ""
	}
	return fmt.Sprintf("worktree changes: %s", strings.Join(changed, ", "))
}
