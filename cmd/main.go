package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// The program waits on git and the terminal almost all the time; two OS
	// threads are plenty and keep several open instances from contending.
	// An explicit GOMAXPROCS wins.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}

	// Keep resident memory low: GC earlier than the default heuristics.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:   "git-twig",
		Short: "Show git status as a tree",
		Long: `git-twig prints the working tree and index state of a repository as a
directory tree with per-file status and diff statistics.

With -I it opens an interactive view to stage, unstage, diff and commit
changes, including single hunks, without leaving the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"git-twig %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	f := rootCmd.Flags()
	f.IntVarP(&opts.indent, "indent", "i", tree.DefaultIndent, "Indentation width per tree level (2-10)")
	f.BoolVarP(&opts.collapse, "collapse", "c", false, "Merge single-child directory chains into one row")
	f.BoolVarP(&opts.interactive, "interactive", "I", false, "Open the interactive view")
	f.BoolVarP(&opts.stagedOnly, "staged-only", "s", false, "Only show staged changes")
	f.BoolVarP(&opts.modifiedOnly, "modified-only", "m", false, "Hide untracked files")
	f.BoolVar(&opts.untrackedOnly, "untracked-only", false, "Only show untracked files")
	f.BoolVarP(&opts.open, "open", "o", false, "Open every listed file in the editor")
	f.StringVar(&opts.theme, "theme", tree.ThemeUnicode, "Tree theme: "+strings.Join(tree.ThemeNames(), ", "))
	f.BoolVar(&opts.simpleIcons, "simple-icons", false, "Use a generic folder/file icon pair with the nerd theme")
	f.StringVarP(&opts.path, "path", "p", ".", "Path to the git repository")
	f.StringVar(&opts.debugLog, "debug-log", "", "Append debug output to this file")

	return rootCmd
}

// buildVersionCmd creates the `git-twig version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("git-twig %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `git-twig completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for git-twig.

Examples:
  # Bash (add to ~/.bashrc)
  git-twig completion bash > /etc/bash_completion.d/git-twig

  # Zsh (add to ~/.zshrc before compinit)
  git-twig completion zsh > "${fpath[1]}/_git-twig"

  # Fish
  git-twig completion fish > ~/.config/fish/completions/git-twig.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}
