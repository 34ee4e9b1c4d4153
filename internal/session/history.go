package session

// Action is the direction of a staging change.
type Action int

// Staging directions.
const (
	ActionStage Action = iota
	ActionUnstage
)

// Inverse returns the action that undoes a.
func (a Action) Inverse() Action {
	if a == ActionStage {
		return ActionUnstage
	}
	return ActionStage
}

func (a Action) String() string {
	if a == ActionUnstage {
		return "unstage"
	}
	return "stage"
}

// HistoryEntry is one staging step: the paths touched and the direction.
type HistoryEntry struct {
	Paths  []string
	Action Action
}

// History is a linear undo/redo log of staging steps.
type History struct {
	undo []HistoryEntry
	redo []HistoryEntry
}

// Push records a fresh step and discards anything that could be redone.
func (h *History) Push(e HistoryEntry) {
	h.undo = append(h.undo, e)
	h.redo = nil
}

// PeekUndo returns the step Undo would revert.
func (h *History) PeekUndo() (HistoryEntry, bool) {
	if len(h.undo) == 0 {
		return HistoryEntry{}, false
	}
	return h.undo[len(h.undo)-1], true
}

// PeekRedo returns the step Redo would reapply.
func (h *History) PeekRedo() (HistoryEntry, bool) {
	if len(h.redo) == 0 {
		return HistoryEntry{}, false
	}
	return h.redo[len(h.redo)-1], true
}

// Undo moves the latest step onto the redo stack and returns it.
func (h *History) Undo() (HistoryEntry, bool) {
	e, ok := h.PeekUndo()
	if !ok {
		return e, false
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)
	return e, true
}

// Redo moves the latest undone step back onto the undo stack and returns it.
func (h *History) Redo() (HistoryEntry, bool) {
	e, ok := h.PeekRedo()
	if !ok {
		return e, false
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)
	return e, true
}

// CanUndo reports whether there is a step to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is a step to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear forgets every step.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
