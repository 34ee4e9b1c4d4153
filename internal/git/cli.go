package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Akashdeep-Patra/git-twig/internal/log"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// gitContext is the context git commands run under. Commands carry no
// deadline and run to completion.
func gitContext() context.Context { return context.Background() }

// CLIService implements Service by shelling out to the git CLI.
//   - GIT_OPTIONAL_LOCKS=0 on all read commands (no lock contention)
//   - Stdout/Stderr separated so stderr noise doesn't corrupt output
type CLIService struct {
	mu     sync.RWMutex
	root   string // Absolute path to the repo root.
	gitDir string // Path to the .git directory.
}

// Compile-time check that CLIService implements Service.
var _ Service = (*CLIService)(nil)

// NewCLIService opens a Git repository at the given path.
func NewCLIService(path string) (*CLIService, error) {
	s := &CLIService{}
	if err := s.open(path); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CLIService) open(path string) error {
	root, gitDir, err := resolveRepo(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.root, s.gitDir = root, gitDir
	s.mu.Unlock()
	return nil
}

func resolveRepo(path string) (root, gitDir string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolving path: %w", err)
	}
	topLevel, err := runGit(abs, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", "", ErrNotARepo
	}
	gd, err := runGit(abs, nil, "rev-parse", "--git-dir")
	if err != nil {
		return "", "", fmt.Errorf("finding .git directory: %w", err)
	}
	root = strings.TrimSpace(topLevel)
	gitDir = strings.TrimSpace(gd)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(abs, gitDir)
	}
	return root, gitDir, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is the environment set on all read-only git commands.
// GIT_OPTIONAL_LOCKS=0 prevents git from acquiring optional locks,
// which is critical in large repos where lock contention stalls readers.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// run executes a git command at the repo root with read-optimised env.
func (s *CLIService) run(args ...string) (string, error) {
	return runGit(s.RepoRoot(), readEnv, args...)
}

// runWrite executes a write git command (no optional-locks override).
func (s *CLIService) runWrite(args ...string) (string, error) {
	return runGit(s.RepoRoot(), nil, args...)
}

// runGit executes a git command and wraps failures
// with the captured stderr.
func runGit(dir string, extraEnv []string, args ...string) (string, error) {
	out, errMsg, err := execGit(dir, extraEnv, nil, args...)
	if err != nil {
		return "", gitError(args, errMsg, out, err)
	}
	return out, nil
}

// execGit is the raw invocation: it returns stdout and stderr separately
// along with the unwrapped process error.
func execGit(dir string, extraEnv []string, stdin io.Reader, args ...string) (string, string, error) {
	cmd := exec.CommandContext(gitContext(), "git", args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		log.Printf("git %s (%s): %v", strings.Join(args, " "), time.Since(start), err)
	} else {
		log.Printf("git %s (%s)", strings.Join(args, " "), time.Since(start))
	}
	return stdout.String(), stderr.String(), err
}

func gitError(args []string, stderr, stdout string, err error) error {
	errMsg := strings.TrimSpace(stderr)
	if errMsg == "" {
		errMsg = strings.TrimSpace(stdout)
	}
	return fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
}

// exitCode extracts the process exit status from an execGit error, or -1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot returns the repository root path.
func (s *CLIService) RepoRoot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// GitDir returns the path to the .git directory.
func (s *CLIService) GitDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gitDir
}

// ── Status & staging ────────────────────────────────────────────────────────

// Status runs `git status --porcelain -b -u` and splits off the branch header.
func (s *CLIService) Status() (StatusSnapshot, error) {
	out, err := s.run("status", "--porcelain", "-b", "-u")
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("getting status: %w", err)
	}
	return ParseStatusOutput(out), nil
}

// DiffStats merges unstaged and staged numstat output into one table.
func (s *CLIService) DiffStats() (StatTable, error) {
	table := make(StatTable)
	for _, args := range [][]string{
		{"diff", "--numstat", "--no-ext-diff"},
		{"diff", "--cached", "--numstat", "--no-ext-diff"},
	} {
		out, err := s.run(args...)
		if err != nil {
			return nil, fmt.Errorf("collecting diff stats: %w", err)
		}
		ParseNumstat(out, table)
	}
	return table, nil
}

// Stage adds path to the index.
func (s *CLIService) Stage(path string) error {
	_, err := s.runWrite("add", "--", path)
	return err
}

// Unstage removes path from the index, keeping the working tree copy.
func (s *CLIService) Unstage(path string) error {
	_, err := s.runWrite("restore", "--staged", "--", path)
	return err
}

// ── Commits ─────────────────────────────────────────────────────────────────

// Commit creates a new commit with the given message.
func (s *CLIService) Commit(message string) error {
	_, err := s.runWrite("commit", "-m", message)
	return err
}

// ── Diff & patches ──────────────────────────────────────────────────────────

// Diff returns the coloured diff for one path. Staged diffs compare against
// HEAD; untracked files are compared with /dev/null. Exit status 1 only means
// "differences found".
func (s *CLIService) Diff(path string, staged, untracked bool) (string, error) {
	args := []string{"diff", "--color=always", "--no-ext-diff"}
	if staged {
		args = append(args, "--cached")
	}
	if untracked {
		args = append(args, "--no-index", "--", "/dev/null", path)
	} else {
		args = append(args, "--", path)
	}
	out, errMsg, err := execGit(s.RepoRoot(), readEnv, nil, args...)
	if err != nil && exitCode(err) != 1 {
		return "", gitError(args, errMsg, "", err)
	}
	return out, nil
}

// ApplyPatch pipes patch into `git apply`, optionally against the index and
// optionally reversed.
func (s *CLIService) ApplyPatch(patch string, opts ApplyOptions) error {
	args := []string{"apply"}
	if opts.Cached {
		args = append(args, "--cached")
	}
	if opts.Reverse {
		args = append(args, "--reverse")
	}
	args = append(args, "-")
	out, errMsg, err := execGit(s.RepoRoot(), nil, strings.NewReader(patch), args...)
	if err != nil {
		return gitError(args, errMsg, out, err)
	}
	return nil
}

// ── Worktrees ───────────────────────────────────────────────────────────────

// WorktreeList returns all worktrees.
func (s *CLIService) WorktreeList() ([]Worktree, error) {
	out, err := s.run("worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParseWorktreeList(out), nil
}

// SwitchWorktree moves the process into path and re-targets the service at
// the repository found there.
func (s *CLIService) SwitchWorktree(path string) error {
	root, gitDir, err := resolveRepo(path)
	if err != nil {
		return err
	}
	if err := os.Chdir(path); err != nil {
		return fmt.Errorf("switching worktree: %w", err)
	}
	s.mu.Lock()
	s.root, s.gitDir = root, gitDir
	s.mu.Unlock()
	return nil
}

// ── Config ──────────────────────────────────────────────────────────────────

// ConfigGet looks up one key. Missing or empty values report false.
func (s *CLIService) ConfigGet(key string) (string, bool) {
	out, err := s.run("config", "--get", key)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(out)
	return v, v != ""
}

// ConfigGetRegexp returns every key matching pattern. Git exits 1 when
// nothing matches, which yields an empty map.
func (s *CLIService) ConfigGetRegexp(pattern string) map[string]string {
	out, err := s.run("config", "--get-regexp", pattern)
	if err != nil {
		return map[string]string{}
	}
	return parseConfigLines(out)
}
