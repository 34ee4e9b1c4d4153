package git

// Service defines the contract for all Git operations.
// The session and the CLI depend on this interface, never on exec.Command
// directly, so both can be exercised against fakes.
type Service interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	GitDir() string

	// ── Status & staging ─────────────────────────────────────────────
	Status() (StatusSnapshot, error)
	DiffStats() (StatTable, error)
	Stage(path string) error
	Unstage(path string) error

	// ── Commits ──────────────────────────────────────────────────────
	Commit(message string) error

	// ── Diff & patches ───────────────────────────────────────────────
	Diff(path string, staged, untracked bool) (string, error)
	ApplyPatch(patch string, opts ApplyOptions) error

	// ── Worktrees ────────────────────────────────────────────────────
	WorktreeList() ([]Worktree, error)
	SwitchWorktree(path string) error

	// ── Config ───────────────────────────────────────────────────────
	ConfigGet(key string) (string, bool)
	ConfigGetRegexp(pattern string) map[string]string
}
