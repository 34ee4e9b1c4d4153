package git

import (
	"sync"
	"time"
)

// CachedService wraps a Service implementation with a TTL-based cache for
// the reads a refresh performs. Write operations (Stage, Commit, ApplyPatch,
// SwitchWorktree) invalidate the cache so the next read is fresh.
//
// A refresh in split layout builds two trees from the same status output and
// the watcher can fire while the user is still typing; the cache keeps those
// bursts down to one git invocation per query.
type CachedService struct {
	inner Service
	ttl   time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// maxCacheEntries caps the number of entries in the cache. When exceeded,
// expired entries are evicted, and the cache is flushed if that is not enough.
const maxCacheEntries = 64

type cacheEntry struct {
	val    any
	err    error
	expiry time.Time
}

// Compile-time check.
var _ Service = (*CachedService)(nil)

// NewCachedService wraps an existing Service with a TTL cache.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		cache: make(map[string]cacheEntry, 16),
	}
}

// Invalidate clears all cached entries.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 16)
	c.mu.Unlock()
}

func (c *CachedService) get(key string) (val any, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || time.Now().After(e.expiry) {
		return nil, false, nil
	}
	return e.val, true, e.err
}

func (c *CachedService) set(key string, val any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cache) >= maxCacheEntries {
		now := time.Now()
		for k, e := range c.cache {
			if now.After(e.expiry) {
				delete(c.cache, k)
			}
		}
		if len(c.cache) >= maxCacheEntries {
			c.cache = make(map[string]cacheEntry, 16)
		}
	}
	c.cache[key] = cacheEntry{val: val, err: err, expiry: time.Now().Add(c.ttl)}
}

// invalidateAndReturn is a helper for write methods.
func (c *CachedService) invalidateAndReturn(err error) error {
	if err == nil {
		c.Invalidate()
	}
	return err
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot delegates to the inner service.
func (c *CachedService) RepoRoot() string { return c.inner.RepoRoot() }

// GitDir delegates to the inner service.
func (c *CachedService) GitDir() string { return c.inner.GitDir() }

// ── Status & staging ────────────────────────────────────────────────────────

// Status returns the status snapshot (cached).
func (c *CachedService) Status() (StatusSnapshot, error) {
	if v, ok, err := c.get("status"); ok {
		return v.(StatusSnapshot), err
	}
	v, err := c.inner.Status()
	c.set("status", v, err)
	return v, err
}

// DiffStats returns the merged numstat table (cached). Callers must not
// mutate the returned table.
func (c *CachedService) DiffStats() (StatTable, error) {
	if v, ok, err := c.get("diffstats"); ok {
		return v.(StatTable), err
	}
	v, err := c.inner.DiffStats()
	c.set("diffstats", v, err)
	return v, err
}

// Stage stages path and invalidates the cache.
func (c *CachedService) Stage(path string) error {
	return c.invalidateAndReturn(c.inner.Stage(path))
}

// Unstage unstages path and invalidates the cache.
func (c *CachedService) Unstage(path string) error {
	return c.invalidateAndReturn(c.inner.Unstage(path))
}

// ── Commits ─────────────────────────────────────────────────────────────────

// Commit commits and invalidates the cache.
func (c *CachedService) Commit(message string) error {
	return c.invalidateAndReturn(c.inner.Commit(message))
}

// ── Diff & patches ──────────────────────────────────────────────────────────

// Diff returns the diff for one path (cached per path and mode).
func (c *CachedService) Diff(path string, staged, untracked bool) (string, error) {
	key := "diff:" + path
	if staged {
		key += ":cached"
	}
	if untracked {
		key += ":untracked"
	}
	if v, ok, err := c.get(key); ok {
		return v.(string), err
	}
	v, err := c.inner.Diff(path, staged, untracked)
	c.set(key, v, err)
	return v, err
}

// ApplyPatch applies a patch and invalidates the cache.
func (c *CachedService) ApplyPatch(patch string, opts ApplyOptions) error {
	return c.invalidateAndReturn(c.inner.ApplyPatch(patch, opts))
}

// ── Worktrees ───────────────────────────────────────────────────────────────

// WorktreeList returns all worktrees (cached).
func (c *CachedService) WorktreeList() ([]Worktree, error) {
	if v, ok, err := c.get("worktrees"); ok {
		return v.([]Worktree), err
	}
	v, err := c.inner.WorktreeList()
	c.set("worktrees", v, err)
	return v, err
}

// SwitchWorktree switches and invalidates the cache.
func (c *CachedService) SwitchWorktree(path string) error {
	return c.invalidateAndReturn(c.inner.SwitchWorktree(path))
}

// ── Config ──────────────────────────────────────────────────────────────────

// ConfigGet delegates to the inner service; config is read once at startup.
func (c *CachedService) ConfigGet(key string) (string, bool) { return c.inner.ConfigGet(key) }

// ConfigGetRegexp delegates to the inner service.
func (c *CachedService) ConfigGetRegexp(pattern string) map[string]string {
	return c.inner.ConfigGetRegexp(pattern)
}
