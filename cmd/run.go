package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/git-twig/internal/app"
	"github.com/Akashdeep-Patra/git-twig/internal/common"
	"github.com/Akashdeep-Patra/git-twig/internal/config"
	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/log"
	"github.com/Akashdeep-Patra/git-twig/internal/session"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/Akashdeep-Patra/git-twig/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	cacheTTL      = 2 * time.Second
	watchDebounce = 500 * time.Millisecond
)

var errInteractiveOpen = errors.New("Cannot use both --interactive and --open")

type runOptions struct {
	indent        int
	collapse      bool
	interactive   bool
	stagedOnly    bool
	modifiedOnly  bool
	untrackedOnly bool
	open          bool
	theme         string
	simpleIcons   bool
	path          string
	debugLog      string
}

func (o runOptions) filter() tree.Filter {
	return tree.Filter{
		StagedOnly:    o.stagedOnly,
		ModifiedOnly:  o.modifiedOnly,
		UntrackedOnly: o.untrackedOnly,
	}
}

func run(cmd *cobra.Command, opts runOptions) error {
	if opts.interactive && opts.open {
		return errInteractiveOpen
	}

	cliSvc, err := git.NewCLIService(opts.path)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyGit(cliSvc)
	applyFlags(cmd, opts, cfg)

	if cfg.DebugLog != "" {
		if err := log.SetFile(cfg.DebugLog); err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
	}
	defer func() { _ = log.Close() }()

	switch {
	case opts.interactive:
		return runInteractive(cliSvc, cfg)
	case opts.open:
		return openFiles(cmd.OutOrStdout(), cliSvc, cfg, opts.filter(), execAttached)
	default:
		return printTree(cmd.OutOrStdout(), cliSvc, cfg, opts.filter())
	}
}

// applyFlags lays explicitly set flags over the file and git-config layers.
func applyFlags(cmd *cobra.Command, opts runOptions, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("indent") {
		cfg.Indent = opts.indent
	}
	if f.Changed("collapse") {
		cfg.Collapse = opts.collapse
	}
	if f.Changed("theme") {
		cfg.Theme = opts.theme
	}
	if f.Changed("simple-icons") {
		cfg.SimpleIcons = opts.simpleIcons
	}
	if f.Changed("debug-log") {
		cfg.DebugLog = opts.debugLog
	}
	cfg.Normalize()
}

func treeOptions(cfg *config.Config) tree.Options {
	return tree.Options{
		Indent:         cfg.Indent,
		Theme:          cfg.TreeTheme(),
		CollapseChains: cfg.Collapse,
	}
}

// buildTree reads status and stats. Missing stats only cost the bars.
func buildTree(svc git.Service, filter tree.Filter) (git.StatusSnapshot, *tree.Node, error) {
	snap, err := svc.Status()
	if err != nil {
		return git.StatusSnapshot{}, nil, fmt.Errorf("reading status: %w", err)
	}
	stats, err := svc.DiffStats()
	if err != nil {
		log.Printf("diff stats: %v", err)
		stats = git.StatTable{}
	}
	return snap, tree.Build(snap.Lines, stats, filter), nil
}

func printTree(w io.Writer, svc git.Service, cfg *config.Config, filter tree.Filter) error {
	snap, root, err := buildTree(svc, filter)
	if err != nil {
		return err
	}
	if header := tree.FormatBranch(snap.Branch()); header != "" {
		fmt.Fprintln(w, header)
	}
	if len(snap.Lines) == 0 {
		fmt.Fprintln(w, "(working directory clean)")
		return nil
	}
	fmt.Fprint(w, tree.Render(root, treeOptions(cfg)))
	return nil
}

// openFiles starts the editor with every file of the filtered tree, relative
// to the repository root.
func openFiles(w io.Writer, svc git.Service, cfg *config.Config, filter tree.Filter, start func(*exec.Cmd) error) error {
	_, root, err := buildTree(svc, filter)
	if err != nil {
		return err
	}
	files := root.Files()
	if len(files) == 0 {
		fmt.Fprintln(w, "No modified files to open.")
		return nil
	}

	args := strings.Fields(cfg.EditorCommand())
	if len(args) == 0 {
		return errors.New("no editor configured")
	}
	for _, f := range files {
		args = append(args, f.Path)
	}
	c := exec.Command(args[0], args[1:]...)
	c.Dir = svc.RepoRoot()
	if err := start(c); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

func execAttached(c *exec.Cmd) error {
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c.Run()
}

func runInteractive(cliSvc *git.CLIService, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode needs a terminal")
	}

	// Deduplicates the status/stat calls of one refresh cycle.
	gitSvc := git.NewCachedService(cliSvc, cacheTTL)

	sess, err := session.New(gitSvc, session.Options{
		Indent:         cfg.Indent,
		CollapseChains: cfg.Collapse,
		Theme:          cfg.TreeTheme(),
		Style:          ui.DefaultStyles().RowStyle(),
	})
	if err != nil {
		return err
	}

	var opts []app.Option
	var w *watcher.Watcher
	if cfg.Watch {
		w, err = watcher.New(gitSvc.GitDir(), watchDebounce)
		if err != nil {
			log.Printf("watcher disabled: %v", err)
		} else {
			defer func() { _ = w.Close() }()
			opts = append(opts, app.WithWatcher(w))
		}
	}

	p := tea.NewProgram(app.New(gitSvc, sess, cfg, opts...), tea.WithAltScreen())
	if w != nil {
		go func() {
			for range w.Events() {
				p.Send(common.RefreshMsg{})
			}
		}()
	}

	_, err = p.Run()
	return err
}
