package session

import "github.com/Akashdeep-Patra/git-twig/internal/git"

// LoadWorktrees fetches the linked worktrees for the picker.
func (s *Session) LoadWorktrees() ([]git.Worktree, error) {
	wts, err := s.repo.WorktreeList()
	if err != nil {
		return nil, err
	}
	s.worktrees = wts
	return wts, nil
}

// Worktrees returns the list fetched by LoadWorktrees.
func (s *Session) Worktrees() []git.Worktree { return s.worktrees }

// SwitchWorktree moves the process into the i-th loaded worktree and
// refreshes. Staging history belongs to the old index and is dropped.
func (s *Session) SwitchWorktree(i int) error {
	if i < 0 || i >= len(s.worktrees) {
		return nil
	}
	if err := s.repo.SwitchWorktree(s.worktrees[i].Path); err != nil {
		return err
	}
	s.history.Clear()
	s.exitVisual()
	s.CloseDiff()
	return s.Refresh()
}
