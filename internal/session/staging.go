package session

import (
	"fmt"

	"github.com/Akashdeep-Patra/git-twig/internal/tree"
)

// ── Staging ─────────────────────────────────────────────────────────────────

// ToggleStage stages or unstages the selected row, or every row of the
// visual range. The direction comes from the first row in scope: staged rows
// are unstaged, everything else is staged. One history entry covers the
// whole action.
func (s *Session) ToggleStage() error {
	rows := stageable(s.scope())
	wasVisual := s.visual
	if len(rows) == 0 {
		if wasVisual {
			s.exitVisual()
		}
		return nil
	}

	action := ActionStage
	if rows[0].Status.Staged() {
		action = ActionUnstage
	}

	done := make([]string, 0, len(rows))
	var applyErr error
	for _, r := range rows {
		if err := s.apply(action, r.Path); err != nil {
			applyErr = err
			break
		}
		done = append(done, r.Path)
	}
	if len(done) > 0 {
		s.history.Push(HistoryEntry{Paths: done, Action: action})
	}
	if wasVisual {
		s.exitVisual()
	}
	if applyErr != nil {
		logErr("refresh after failed staging", s.Refresh())
		return applyErr
	}
	return s.Refresh()
}

// stageable drops directory rows with no changes beneath them.
func stageable(rows []tree.FlatNode) []tree.FlatNode {
	out := rows[:0:0]
	for _, r := range rows {
		if r.IsDir && r.Status == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Undo reverts the most recent staging step.
func (s *Session) Undo() error {
	e, ok := s.history.PeekUndo()
	if !ok {
		return nil
	}
	if err := s.applyAll(e.Action.Inverse(), e.Paths); err != nil {
		return err
	}
	s.history.Undo()
	return s.Refresh()
}

// Redo reapplies the most recently undone staging step.
func (s *Session) Redo() error {
	e, ok := s.history.PeekRedo()
	if !ok {
		return nil
	}
	if err := s.applyAll(e.Action, e.Paths); err != nil {
		return err
	}
	s.history.Redo()
	return s.Refresh()
}

func (s *Session) applyAll(a Action, paths []string) error {
	for _, p := range paths {
		if err := s.apply(a, p); err != nil {
			logErr("refresh after failed "+a.String(), s.Refresh())
			return err
		}
	}
	return nil
}

func (s *Session) apply(a Action, path string) error {
	var err error
	if a == ActionUnstage {
		err = s.repo.Unstage(path)
	} else {
		err = s.repo.Stage(path)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", a, path, err)
	}
	return nil
}

// ── Folding ─────────────────────────────────────────────────────────────────

// Collapse folds the selected directory, or every directory in the visual
// range.
func (s *Session) Collapse() error {
	return s.fold(func(r tree.FlatNode) bool {
		if s.collapsed.Has(r.Path) {
			return false
		}
		s.collapsed[r.Path] = struct{}{}
		return true
	})
}

// Expand unfolds the selected directory, or every directory in the visual
// range.
func (s *Session) Expand() error {
	return s.fold(func(r tree.FlatNode) bool {
		if !s.collapsed.Has(r.Path) {
			return false
		}
		delete(s.collapsed, r.Path)
		return true
	})
}

// ToggleFold flips the fold state of the selected directory, or of every
// directory in the visual range.
func (s *Session) ToggleFold() error {
	return s.fold(func(r tree.FlatNode) bool {
		if s.collapsed.Has(r.Path) {
			delete(s.collapsed, r.Path)
		} else {
			s.collapsed[r.Path] = struct{}{}
		}
		return true
	})
}

func (s *Session) fold(change func(tree.FlatNode) bool) error {
	rows := s.scope()
	if s.visual {
		s.exitVisual()
	}
	changed := false
	for _, r := range rows {
		if r.IsDir && change(r) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.Refresh()
}

// CollapseAll folds every directory of the unfiltered tree.
func (s *Session) CollapseAll() error {
	if s.all == nil {
		return nil
	}
	for _, p := range s.all.DirPaths() {
		s.collapsed[p] = struct{}{}
	}
	return s.Refresh()
}

// ExpandAll clears every fold.
func (s *Session) ExpandAll() error {
	clear(s.collapsed)
	return s.Refresh()
}
