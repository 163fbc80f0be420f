package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Repository represents a git repository.
type Repository struct {
	path string

	mu sync.RWMutex

	// Status cache
	statusCache     *Status
	statusCacheTime time.Time
	statusCacheTTL  time.Duration
}

// openRepository opens an existing git repository.
func openRepository(path string, cacheTTL time.Duration) (*Repository, error) {
	gitDir := filepath.Join(path, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("stat .git: %w", err)
	}

	// .git can be a directory or a file (for worktrees)
	if !info.IsDir() {
		content, err := os.ReadFile(gitDir)
		if err != nil {
			return nil, fmt.Errorf("read .git file: %w", err)
		}
		if !bytes.HasPrefix(content, []byte("gitdir:")) {
			return nil, ErrNotRepository
		}
	}

	return &Repository{
		path:           path,
		statusCacheTTL: cacheTTL,
	}, nil
}

// discoverRepository finds the repository root from any path within it.
func discoverRepository(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if _, err := os.Stat(gitDir); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrRepositoryNotFound
		}
		current = parent
	}
}

// Path returns the repository root path.
func (r *Repository) Path() string {
	return r.path
}

// git executes a git command in the repository.
func (r *Repository) git(args ...string) (string, error) {
	cmd := newGitCommand(r.path, args...)
	return cmd.run()
}

// gitCommand represents a git command to execute.
type gitCommand struct {
	dir  string
	args []string
}

// newGitCommand creates a new git command.
func newGitCommand(dir string, args ...string) *gitCommand {
	return &gitCommand{dir: dir, args: args}
}

// run executes the git command.
func (c *gitCommand) run() (string, error) {
	cmd := exec.Command("git", c.args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s", strings.Join(c.args, " "), strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// toExecCmd converts gitCommand to an exec.Cmd for custom stdin/stdout handling.
func (c *gitCommand) toExecCmd() *exec.Cmd {
	cmd := exec.Command("git", c.args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}
	return cmd
}

// Status returns a summary of the working tree.
// Results are cached for performance.
func (r *Repository) Status() (*Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.statusCache != nil && time.Since(r.statusCacheTime) < r.statusCacheTTL {
		return r.statusCache, nil
	}

	status, err := r.statusLocked()
	if err != nil {
		return nil, err
	}

	r.statusCache = status
	r.statusCacheTime = time.Now()
	return status, nil
}

// statusLocked fetches fresh status (caller must hold lock).
func (r *Repository) statusLocked() (*Status, error) {
	status := &Status{}

	branchOutput, err := r.git("branch", "--show-current")
	if err == nil {
		status.Branch = strings.TrimSpace(branchOutput)
	}
	status.IsDetached = status.Branch == ""

	output, err := r.git("status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 4 {
			continue
		}

		x, y := line[0], line[1]
		path := line[3:]
		// Renames carry "old -> new"; keep the new path.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}

		switch {
		case x == '?' && y == '?':
			status.Untracked = append(status.Untracked, path)
		case x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D'):
			status.Conflicts = append(status.Conflicts, path)
		default:
			if x != ' ' {
				status.Staged = append(status.Staged, path)
			}
			if y != ' ' {
				status.Unstaged = append(status.Unstaged, path)
			}
		}
	}

	return status, scanner.Err()
}

// Status summarizes the working tree for file pickers.
type Status struct {
	// Branch is the current branch name, empty when detached.
	Branch string

	// IsDetached indicates detached HEAD state.
	IsDetached bool

	// Staged contains paths with staged changes.
	Staged []string

	// Unstaged contains paths with unstaged changes.
	Unstaged []string

	// Untracked contains untracked file paths.
	Untracked []string

	// Conflicts contains paths with merge conflicts.
	Conflicts []string
}

// HasChanges returns true if there are any changes.
func (s *Status) HasChanges() bool {
	return len(s.Staged) > 0 || len(s.Unstaged) > 0 || len(s.Untracked) > 0 || len(s.Conflicts) > 0
}

// invalidateStatusCache invalidates the status cache (caller must hold lock).
func (r *Repository) invalidateStatusCacheLocked() {
	r.statusCache = nil
}

// close closes the repository.
func (r *Repository) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCache = nil
}
