package git

import (
	"path"
	"strconv"
	"strings"
)

// ── Status parsing ──────────────────────────────────────────────────────────

// renameSep separates the old and new path of a rename record.
const renameSep = " -> "

// ParseStatusLine normalises one `git status --porcelain` line into its path
// text and Status. Lines shorter than four bytes are rejected.
//
// Both letters "?" give "??"; a blank worktree letter promotes the index
// letter to a staged code ("M+"); otherwise the worktree letter is used bare.
func ParseStatusLine(line string) (string, Status, bool) {
	if len(line) < 4 {
		return "", "", false
	}
	x, y := line[0], line[1]
	rest := line[3:]

	var st Status
	switch {
	case x == '?' && y == '?':
		st = StatusUntracked
	case y == ' ':
		st = Status(string(x) + "+")
	default:
		st = Status(string(y))
	}
	return rest, st, true
}

// ParseStatusRecord parses a status line into a tree Entry, splitting rename
// records into their tree location (old path) and stats key (new path).
func ParseStatusRecord(line string) (Entry, bool) {
	raw, st, ok := ParseStatusLine(line)
	if !ok {
		return Entry{}, false
	}

	if (line[0] == 'R' || strings.Contains(string(st), "R")) && strings.Contains(raw, renameSep) {
		oldPath, newPath, _ := strings.Cut(raw, renameSep)
		oldPath, newPath = unquotePath(oldPath), unquotePath(newPath)
		name := path.Base(oldPath) + renameSep
		if path.Dir(oldPath) == path.Dir(newPath) {
			name += path.Base(newPath)
		} else {
			name += newPath
		}
		return Entry{Path: oldPath, StatsKey: newPath, Name: name, Status: st}, true
	}

	p := strings.TrimSuffix(unquotePath(raw), "/")
	if p == "" {
		return Entry{}, false
	}
	return Entry{Path: p, StatsKey: p, Name: path.Base(p), Status: st}, true
}

// unquotePath undoes git's C-style quoting of unusual file names.
func unquotePath(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}

// ParseStatusOutput splits `git status --porcelain -b` output into the
// branch header and the record lines. Blank lines are dropped.
func ParseStatusOutput(out string) StatusSnapshot {
	var snap StatusSnapshot
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(line, "##") {
			snap.Header = line
			continue
		}
		snap.Lines = append(snap.Lines, line)
	}
	return snap
}

// ── Branch header parsing ───────────────────────────────────────────────────

// ParseBranchHeader parses the "## branch...upstream [ahead N, behind M]"
// line that `git status -b` prints first.
func ParseBranchHeader(line string) BranchInfo {
	var info BranchInfo
	content := strings.TrimSpace(strings.TrimPrefix(line, "##"))
	if content == "" {
		return info
	}

	for _, prefix := range []string{"No commits yet on ", "Initial commit on "} {
		if b, ok := strings.CutPrefix(content, prefix); ok {
			info.Branch = b
			info.NoCommits = true
			return info
		}
	}

	local, rest, hasUpstream := strings.Cut(content, "...")
	if !hasUpstream {
		// "## main [gone]" never happens without an upstream, but
		// "## HEAD (no branch)" does.
		info.Branch = local
		return info
	}
	info.Branch = local

	upstream, counts, _ := strings.Cut(rest, " [")
	info.Upstream = upstream
	counts = strings.TrimSuffix(counts, "]")
	for _, part := range strings.Split(counts, ", ") {
		switch {
		case strings.HasPrefix(part, "ahead "):
			info.Ahead, _ = strconv.Atoi(strings.TrimPrefix(part, "ahead "))
		case strings.HasPrefix(part, "behind "):
			info.Behind, _ = strconv.Atoi(strings.TrimPrefix(part, "behind "))
		case part == "gone":
			info.Gone = true
		}
	}
	return info
}

// ── Numstat parsing ─────────────────────────────────────────────────────────

// ParseNumstat adds every "added\tdeleted\tpath" line of `git diff --numstat`
// into table, summing with what is already there. Binary files ("-") count
// as zero.
func ParseNumstat(out string, table StatTable) {
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		added, _ := strconv.Atoi(parts[0])
		deleted, _ := strconv.Atoi(parts[1])
		key := numstatPath(parts[2])
		s := table[key]
		s.Added += added
		s.Deleted += deleted
		table[key] = s
	}
}

// numstatPath resolves numstat's rename notation ("a => b" or
// "dir/{a => b}/f") to the post-rename path.
func numstatPath(p string) string {
	p = unquotePath(p)
	const arrow = " => "
	if !strings.Contains(p, arrow) {
		return p
	}
	open := strings.Index(p, "{")
	closing := strings.LastIndex(p, "}")
	if open >= 0 && closing > open {
		inner := p[open+1 : closing]
		_, newPart, _ := strings.Cut(inner, arrow)
		joined := p[:open] + newPart + p[closing+1:]
		return strings.ReplaceAll(joined, "//", "/")
	}
	_, newPath, _ := strings.Cut(p, arrow)
	return newPath
}

// ── Worktree parsing ────────────────────────────────────────────────────────

// ParseWorktreeList parses `git worktree list --porcelain`.
func ParseWorktreeList(out string) []Worktree {
	if len(out) == 0 {
		return nil
	}
	var wts []Worktree
	var cur Worktree
	flush := func() {
		if cur.Path != "" {
			wts = append(wts, cur)
		}
		cur = Worktree{}
	}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			cur.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			cur.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			cur.Branch = strings.TrimPrefix(line, "branch ")
		case line == "bare":
			cur.Bare = true
		}
	}
	flush()
	return wts
}

// ── Config parsing ──────────────────────────────────────────────────────────

// parseConfigLines parses `git config --get-regexp` output ("key value" per
// line). Keys without a value map to "".
func parseConfigLines(out string) map[string]string {
	m := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		k, v, _ := strings.Cut(line, " ")
		m[k] = v
	}
	return m
}
