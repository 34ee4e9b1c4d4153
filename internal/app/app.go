// Package app is the bubbletea program: it routes keys to the session,
// owns the views and draws the screen.
package app

import (
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/git-twig/internal/common"
	"github.com/Akashdeep-Patra/git-twig/internal/config"
	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/log"
	"github.com/Akashdeep-Patra/git-twig/internal/session"
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/Akashdeep-Patra/git-twig/internal/ui/components"
	"github.com/Akashdeep-Patra/git-twig/internal/ui/views"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeDiffSearch
	modeHelp
	modeWorktrees
)

const (
	commitTag = "commit"
	errorTTL  = 5 * time.Second
	infoTTL   = 3 * time.Second
)

// Retargeter follows a different .git directory after a worktree switch.
type Retargeter interface {
	Retarget(gitDir string) error
}

type invalidator interface {
	Invalidate()
}

// Option customises a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.writeClipboard = write }
}

// WithWatcher registers the repository watcher so it can be retargeted.
func WithWatcher(w Retargeter) Option {
	return func(m *Model) { m.watcher = w }
}

// Model is the top-level Bubbletea model.
type Model struct {
	repo   git.Service
	sess   *session.Session
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	width  int
	height int

	panes  [3]*views.TreePane // indexed by session.Pane
	diff   *views.DiffPane
	picker *views.WorktreePicker
	help   viewport.Model

	mode    inputMode
	input   textinput.Model
	dialog  *components.Dialog
	pending string

	statusMsg string
	statusErr bool
	statusExp time.Time

	writeClipboard func(string) error
	watcher        Retargeter
}

// New creates the application model around an existing session.
func New(repo git.Service, sess *session.Session, cfg *config.Config, opts ...Option) Model {
	styles := ui.DefaultStyles()
	keys := DefaultKeyMap()
	keys.Apply(cfg.Keys)

	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 200

	m := Model{
		repo:           repo,
		sess:           sess,
		cfg:            cfg,
		styles:         styles,
		keys:           keys,
		diff:           views.NewDiffPane(styles),
		picker:         views.NewWorktreePicker(styles),
		help:           viewport.New(0, 0),
		input:          ti,
		writeClipboard: clipboard.WriteAll,
	}
	for i := range m.panes {
		m.panes[i] = views.NewTreePane(styles, session.Pane(i))
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Init implements tea.Model. The session is already loaded.
func (m Model) Init() tea.Cmd { return nil }

// Session exposes the driven session.
func (m Model) Session() *session.Session { return m.sess }

// Status returns the transient status bar message and whether it is an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusErr }

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.resize()
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Dialog has exclusive input when visible.
	if m.dialog != nil && m.dialog.Visible() {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case components.DialogResult:
		m.dialog = nil
		if msg.Tag == commitTag && msg.Confirmed {
			m.commit(msg.Value)
		}

	case common.RefreshMsg:
		m.refresh()

	case common.ErrMsg:
		m.setError(msg.Err)

	case common.InfoMsg:
		m.setInfo(msg.Text)
	}
	return m, nil
}

// ── Key routing ─────────────────────────────────────────────────────────────

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch, modeDiffSearch:
		return m.updateSearch(msg)
	case modeHelp:
		return m.updateHelp(msg)
	case modeWorktrees:
		return m.updateWorktrees(msg)
	}

	if p := m.pending; p != "" {
		m.pending = ""
		if msg.String() == p {
			switch {
			case key.Matches(msg, m.keys.Top):
				m.jumpTop()
			case key.Matches(msg, m.keys.Center):
				m.centre()
			}
			return m, nil
		}
	}

	if m.sess.View() == session.ViewDiff {
		return m.handleDiffKey(msg)
	}
	return m.handleTreeKey(msg)
}

// sequence arms a repeated-key action for single characters and reports
// whether it did; other keys (home, end) fire at once.
func (m *Model) sequence(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || msg.Alt {
		return false
	}
	m.pending = msg.String()
	return true
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.sess
	var err error

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
	case key.Matches(msg, m.keys.Search):
		return m, m.openSearch(modeSearch, s.Search())
	case key.Matches(msg, m.keys.Back):
		switch {
		case s.Visual():
			s.ToggleVisual()
		case s.Search() != "":
			s.SetSearch("")
		}

	case key.Matches(msg, m.keys.Down):
		s.Next()
	case key.Matches(msg, m.keys.Up):
		s.Previous()
	case key.Matches(msg, m.keys.NextFile):
		s.NextFile()
	case key.Matches(msg, m.keys.PrevFile):
		s.PreviousFile()
	case key.Matches(msg, m.keys.Top):
		if !m.sequence(msg) {
			m.jumpTop()
		}
	case key.Matches(msg, m.keys.Bottom):
		s.JumpBottom()
	case key.Matches(msg, m.keys.Center):
		if !m.sequence(msg) {
			m.centre()
		}
	case key.Matches(msg, m.keys.PageUp):
		s.Page(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		s.Page(m.pageSize())

	case key.Matches(msg, m.keys.Collapse):
		err = s.Collapse()
	case key.Matches(msg, m.keys.Expand):
		err = s.Expand()
	case key.Matches(msg, m.keys.CollapseAll):
		err = s.CollapseAll()
	case key.Matches(msg, m.keys.ExpandAll):
		err = s.ExpandAll()

	case key.Matches(msg, m.keys.Stage):
		err = s.ToggleStage()
	case key.Matches(msg, m.keys.Undo):
		err = s.Undo()
	case key.Matches(msg, m.keys.Redo):
		err = s.Redo()
	case key.Matches(msg, m.keys.Commit):
		d := components.NewInputDialog(m.styles, "Commit message", "describe the change", commitTag)
		m.dialog = &d
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		err = s.CycleFilter()
	case key.Matches(msg, m.keys.Layout):
		err = s.CycleLayout()
		m.resize()
	case key.Matches(msg, m.keys.EasterEgg):
		err = s.ToggleEasterEgg()
		m.resize()
	case key.Matches(msg, m.keys.Theme):
		if err = s.CycleTheme(); err == nil {
			m.setInfo("Theme: " + s.Theme().Name)
		}
	case key.Matches(msg, m.keys.SwitchPane):
		s.ToggleFocus()
	case key.Matches(msg, m.keys.Visual):
		s.ToggleVisual()
	case key.Matches(msg, m.keys.Yank):
		m.yank()

	case key.Matches(msg, m.keys.Diff):
		err = s.Activate()
		m.syncDiff()
	case key.Matches(msg, m.keys.Worktrees):
		m.openWorktrees()
	case key.Matches(msg, m.keys.Refresh):
		return m, common.CmdRefresh
	case key.Matches(msg, m.keys.Editor):
		if r, ok := s.SelectedRow(); ok && !r.IsDir {
			return m, m.openEditor(r.Path)
		}
	}

	if err != nil {
		m.setError(err)
	}
	return m, nil
}

func (m Model) handleDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.sess
	var err error

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		switch {
		case s.PatchMode():
			s.TogglePatchMode()
		case s.DiffQuery() != "":
			s.SearchDiff("")
		default:
			s.CloseDiff()
		}
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
	case key.Matches(msg, m.keys.Search):
		return m, m.openSearch(modeDiffSearch, s.DiffQuery())

	case key.Matches(msg, m.keys.Down):
		s.ScrollDiff(1)
	case key.Matches(msg, m.keys.Up):
		s.ScrollDiff(-1)
	case key.Matches(msg, m.keys.PageDown):
		s.ScrollDiff(m.diff.PageSize())
	case key.Matches(msg, m.keys.PageUp):
		s.ScrollDiff(-m.diff.PageSize())
	case key.Matches(msg, m.keys.Top):
		if !m.sequence(msg) {
			m.jumpTop()
		}
	case key.Matches(msg, m.keys.Bottom):
		s.SetDiffScroll(math.MaxInt32)

	case key.Matches(msg, m.keys.Patch):
		s.TogglePatchMode()
	case key.Matches(msg, m.keys.NextHunk):
		s.NextHunk()
	case key.Matches(msg, m.keys.PrevHunk):
		s.PrevHunk()
	case key.Matches(msg, m.keys.Stage):
		if !s.PatchMode() {
			return m, common.CmdInfo("Press p to pick hunks")
		}
		if err = s.StageHunk(); err == nil {
			m.setInfo("Hunk applied")
		}
	case key.Matches(msg, m.keys.NextMatch):
		s.NextMatch()
	case key.Matches(msg, m.keys.PrevMatch):
		s.PrevMatch()
	case key.Matches(msg, m.keys.SideBySide):
		m.diff.ToggleSideBySide()
	case key.Matches(msg, m.keys.Editor):
		if p := s.DiffPath(); p != "" {
			return m, m.openEditor(p)
		}
	}

	if err != nil {
		m.setError(err)
	}
	m.syncDiff()
	return m, nil
}

// ── Modes ───────────────────────────────────────────────────────────────────

func (m *Model) openSearch(mode inputMode, initial string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = "/"
	if mode == modeDiffSearch {
		m.input.Prompt = "diff /"
	}
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.resize()
	return m.input.Focus()
}

func (m *Model) closeSearch() {
	m.mode = modeNormal
	m.input.Blur()
	m.resize()
}

// updateSearch edits the query live. Enter keeps it, Esc clears it.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.SetValue("")
		m.applySearch()
		m.closeSearch()
		return m, nil
	case tea.KeyEnter:
		m.closeSearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	q := m.input.Value()
	if m.mode == modeDiffSearch {
		if q != m.sess.DiffQuery() {
			m.sess.SearchDiff(q)
			m.syncDiff()
		}
		return
	}
	if q != m.sess.Search() {
		m.sess.SetSearch(q)
	}
}

func (m *Model) openHelp() {
	m.mode = modeHelp
	w := max(20, min(70, m.width-4)-6)
	m.help.Width = w
	m.help.Height = max(3, m.height-4)
	m.help.SetContent(components.RenderHelp(m.styles, "Keyboard Shortcuts", m.keys.HelpSections(), w))
	m.help.GotoTop()
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.mode = modeNormal
	case key.Matches(msg, m.keys.Down):
		m.help.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.help.ScrollUp(1)
	case key.Matches(msg, m.keys.PageDown):
		m.help.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.help.PageUp()
	}
	return m, nil
}

func (m *Model) openWorktrees() {
	if _, err := m.sess.LoadWorktrees(); err != nil {
		m.setError(err)
		return
	}
	m.picker.Reset()
	m.mode = modeWorktrees
}

func (m Model) updateWorktrees(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wts := m.sess.Worktrees()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Worktrees):
		m.mode = modeNormal
	case key.Matches(msg, m.keys.Down):
		m.picker.Move(1, len(wts))
	case key.Matches(msg, m.keys.Up):
		m.picker.Move(-1, len(wts))
	case key.Matches(msg, m.keys.Diff):
		m.mode = modeNormal
		i := m.picker.Cursor()
		if i >= len(wts) {
			break
		}
		if err := m.sess.SwitchWorktree(i); err != nil {
			m.setError(err)
			break
		}
		if m.watcher != nil {
			if err := m.watcher.Retarget(m.repo.GitDir()); err != nil {
				log.Printf("watcher: retarget: %v", err)
			}
		}
		m.setInfo("Switched to " + wts[i].Path)
	}
	return m, nil
}

// ── Actions ─────────────────────────────────────────────────────────────────

func (m *Model) refresh() {
	if inv, ok := m.repo.(invalidator); ok {
		inv.Invalidate()
	}
	if err := m.sess.Refresh(); err != nil {
		m.setError(err)
		return
	}
	m.syncDiff()
}

func (m *Model) commit(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if err := m.sess.Commit(message); err != nil {
		m.setError(err)
		return
	}
	m.setInfo("Committed")
}

func (m *Model) yank() {
	paths := m.sess.SelectedPaths()
	if len(paths) == 0 {
		return
	}
	if err := m.writeClipboard(strings.Join(paths, "\n")); err != nil {
		m.setError(fmt.Errorf("clipboard: %w", err))
		return
	}
	if len(paths) == 1 {
		m.setInfo("Copied " + paths[0])
	} else {
		m.setInfo(fmt.Sprintf("Copied %d paths", len(paths)))
	}
}

func (m Model) openEditor(path string) tea.Cmd {
	args := strings.Fields(m.cfg.EditorCommand())
	if len(args) == 0 {
		return common.CmdErr(errors.New("no editor configured"))
	}
	args = append(args, filepath.Join(m.repo.RepoRoot(), path))
	c := exec.Command(args[0], args[1:]...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("editor: %w", err)}
		}
		return common.RefreshMsg{}
	})
}

func (m *Model) jumpTop() {
	if m.sess.View() == session.ViewDiff {
		m.sess.SetDiffScroll(0)
		m.syncDiff()
		return
	}
	m.sess.JumpTop()
}

func (m *Model) centre() {
	if m.sess.View() == session.ViewTree {
		m.panes[m.sess.ActivePane()].Centre(m.sess)
	}
}

func (m Model) pageSize() int { return m.panes[m.sess.ActivePane()].ListHeight() }

func (m *Model) syncDiff() {
	if m.sess.View() == session.ViewDiff {
		m.diff.Sync(m.sess)
	}
}

func (m *Model) setError(err error) {
	log.Printf("error: %v", err)
	m.statusMsg = err.Error()
	m.statusErr = true
	m.statusExp = time.Now().Add(errorTTL)
}

func (m *Model) setInfo(text string) {
	m.statusMsg = text
	m.statusErr = false
	m.statusExp = time.Now().Add(infoTTL)
}

// ── Rendering ───────────────────────────────────────────────────────────────

func (m Model) contentHeight() int {
	h := m.height - 1 // status bar
	if m.mode == modeSearch || m.mode == modeDiffSearch {
		h-- // prompt
	}
	return max(3, h)
}

func (m *Model) resize() {
	h := m.contentHeight()
	if m.sess.Layout() == session.LayoutSplit {
		left := m.width / 2
		m.panes[session.PaneStaged].SetSize(left, h)
		m.panes[session.PaneUnstaged].SetSize(m.width-left, h)
	} else {
		m.panes[session.PaneUnified].SetSize(m.width, h)
	}
	m.diff.SetSize(m.width, h)
	m.picker.SetSize(m.width, m.height)
	m.syncDiff()
}

func (m Model) barData() components.StatusBarData {
	d := components.StatusBarData{
		Branch:    m.sess.Branch(),
		FileCount: m.sess.FileCount(),
		Totals:    m.sess.Totals(),
		Theme:     m.sess.Theme(),
		Search:    m.sess.Search(),
	}
	switch {
	case m.sess.PatchMode():
		d.Mode = "PATCH"
	case m.sess.Visual():
		d.Mode = "VISUAL"
	}
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		d.Message = m.statusMsg
		d.IsError = m.statusErr
	}
	return d
}

// View renders the entire UI. It performs no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.mode {
	case modeHelp:
		return components.HelpFrame(m.styles, m.help.View(), m.width, m.height)
	case modeWorktrees:
		return m.picker.View(m.sess.Worktrees(), m.repo.RepoRoot())
	}

	var content string
	switch {
	case m.sess.View() == session.ViewDiff:
		content = m.diff.View(m.sess)
	case m.sess.Layout() == session.LayoutSplit:
		active := m.sess.ActivePane()
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			m.panes[session.PaneStaged].View(m.sess, active == session.PaneStaged),
			m.panes[session.PaneUnstaged].View(m.sess, active == session.PaneUnstaged),
		)
	default:
		content = m.panes[session.PaneUnified].View(m.sess, true)
	}

	parts := []string{content}
	if m.mode == modeSearch || m.mode == modeDiffSearch {
		parts = append(parts, m.input.View())
	}
	parts = append(parts, components.RenderStatusBar(m.styles, m.barData(), m.width))
	screen := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.dialog != nil && m.dialog.Visible() {
		screen = ui.PlaceCentre(m.width, m.height, m.dialog.View())
	}
	return screen
}
