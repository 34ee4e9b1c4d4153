// Package watcher monitors Git-internal state files for changes and notifies
// the TUI to refresh. Only a handful of paths inside the git directory are
// watched, never the working tree, so huge repositories do not exhaust
// inotify/kqueue watches.
//
// Watched paths:
//   - <gitdir>            → index, HEAD, MERGE_HEAD, packed-refs
//   - <gitdir>/refs/heads → local branch updates
//   - <gitdir>/refs/tags  → tag creation/deletion
//   - <gitdir>/refs/remotes/* → fetch/pull updates
//
// Linked worktrees keep their refs in the common directory named by the
// "commondir" file; those are watched too.
//
// Working-tree edits are picked up by the user pressing 'r' or by the index
// change that the next git add triggers.
package watcher

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Akashdeep-Patra/git-twig/internal/log"
	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watcher detects relevant Git state changes.
type Event struct{}

// Watcher coalesces filesystem events under a git directory into Events.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	events   chan Event
	done     chan struct{}

	mu   sync.Mutex
	once sync.Once
}

// New starts watching gitDir. Rapid bursts are coalesced via the debounce
// window plus up to 50% random jitter, so several instances on the same
// repository do not all run git at the same moment.
func New(gitDir string, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fs,
		debounce: debounce,
		events:   make(chan Event, 1),
		done:     make(chan struct{}),
	}
	w.add(gitDir)
	go w.loop()
	return w, nil
}

// Events delivers one value per settled burst. It is closed by Close.
func (w *Watcher) Events() <-chan Event { return w.events }

// Retarget drops every current watch and starts watching gitDir instead.
func (w *Watcher) Retarget(gitDir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.fs.WatchList() {
		if err := w.fs.Remove(p); err != nil {
			log.Printf("watcher: remove %s: %v", p, err)
		}
	}
	if _, err := os.Stat(gitDir); err != nil {
		return err
	}
	w.addLocked(gitDir)
	return nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) add(gitDir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.addLocked(gitDir)
}

func (w *Watcher) addLocked(gitDir string) {
	for _, t := range targets(gitDir) {
		if err := w.fs.Add(t); err != nil {
			// Non-fatal: some dirs may not exist yet.
			log.Printf("watcher: add %s: %v", t, err)
		}
	}
}

func (w *Watcher) loop() {
	defer close(w.events)
	var timer *time.Timer
	jitterRange := int64(w.debounce / 2)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if shouldIgnore(ev.Name) {
				continue
			}
			d := w.debounce
			if jitterRange > 0 {
				d += time.Duration(rand.Int64N(jitterRange))
			}
			if timer == nil {
				timer = time.NewTimer(d)
			} else {
				timer.Reset(d)
			}
		case <-timerChan(timer):
			timer = nil
			select {
			case w.events <- Event{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

// targets lists the existing directories worth watching for gitDir.
func targets(gitDir string) []string {
	roots := []string{gitDir}
	if common := commonDir(gitDir); common != "" && common != gitDir {
		roots = append(roots, common)
	}

	var out []string
	for _, root := range roots {
		candidates := []string{
			root,
			filepath.Join(root, "refs"),
			filepath.Join(root, "refs", "heads"),
			filepath.Join(root, "refs", "tags"),
		}
		remotes := filepath.Join(root, "refs", "remotes")
		if entries, err := os.ReadDir(remotes); err == nil {
			candidates = append(candidates, remotes)
			for _, e := range entries {
				if e.IsDir() {
					candidates = append(candidates, filepath.Join(remotes, e.Name()))
				}
			}
		}
		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && info.IsDir() {
				out = append(out, c)
			}
		}
	}
	return out
}

// commonDir resolves the shared git directory of a linked worktree.
func commonDir(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return ""
	}
	dir := strings.TrimSpace(string(data))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(gitDir, dir)
	}
	return filepath.Clean(dir)
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore returns true for events that should not trigger a refresh.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// git holds these while it works; refreshing then would race the lock.
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}

	switch {
	case base == "COMMIT_EDITMSG", base == "gc.log", strings.HasPrefix(base, "fsmonitor"):
		return true
	}
	return false
}
