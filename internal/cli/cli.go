// Package cli wires the ft-patch commands: snapshotting, diff
// generation, patch application, inspection, and workspace health.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/config"
	"github.com/buivietphi/ft-patch-package/internal/logging"
	"github.com/buivietphi/ft-patch-package/internal/render"
	"github.com/buivietphi/ft-patch-package/pkg/diff"
)

// Run executes one ft-patch invocation with the provided CLI arguments.
// It returns a POSIX-style exit code: 0 on success, 1 on failure, 2 on
// usage errors.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.err != nil {
				fmt.Fprintf(stderr, "error: %v\n", exit.err)
			}
			return exit.code
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			return 2
		}
		return 1
	}
	return 0
}

// app carries the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	dirFlag      string
	patchDirFlag string
	verbose      bool
	noColor      bool

	workDir  string
	cfg      config.Config
	logger   logging.Logger
	renderer *render.Renderer
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ft-patch",
		Short: "Generate, inspect, and apply unified diffs for directory trees",
		Long: `ft-patch captures the difference between two directory trees as a
unified diff and replays it later, forward or in reverse. Snapshots of a
pristine tree can be stored and diffed against, so local edits survive a
fresh checkout: snapshot, edit, diff, and re-apply.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.dirFlag, "dir", "C", ".", "project directory the command operates on")
	flags.StringVar(&a.patchDirFlag, "patch-dir", "", "directory for saved patches (default from config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.initCommand(),
		a.snapshotCommand(),
		a.diffCommand(),
		a.applyCommand(),
		a.checkCommand(),
		a.inspectCommand(),
		a.statusCommand(),
		a.watchCommand(),
		a.doctorCommand(),
	)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})
	return root
}

// setup resolves the working directory, layers configuration (flags over
// environment over file over defaults), and builds the logger and
// renderer the commands share.
func (a *app) setup() error {
	workDir, err := filepath.Abs(a.dirFlag)
	if err != nil {
		return fmt.Errorf("resolve --dir: %w", err)
	}
	a.workDir = workDir

	cfg, err := config.Load(workDir)
	if err != nil {
		return err
	}
	if a.patchDirFlag != "" {
		cfg.PatchDir = a.patchDirFlag
	}
	a.cfg = cfg

	level := logging.LevelInfo
	if a.verbose {
		level = logging.LevelDebug
	}
	a.logger = logging.NewStdLogger(level, a.stderr)

	mode := a.cfg.Color
	if a.noColor {
		mode = "never"
	}
	a.renderer = render.NewMode(mode)
	return nil
}

// diffOptions returns the configured generator options with the state
// and VCS directories excluded; neither ever belongs in a patch.
func (a *app) diffOptions() diff.Options {
	opts := a.cfg.DiffOptions()
	opts.Exclude = append(opts.Exclude, ".ft-patch", ".git")
	return opts
}

// patchDir returns the configured patch directory resolved against the
// working directory.
func (a *app) patchDir() string {
	if filepath.IsAbs(a.cfg.PatchDir) {
		return a.cfg.PatchDir
	}
	return filepath.Join(a.workDir, a.cfg.PatchDir)
}

// resolvePath anchors a relative CLI argument at the working directory,
// not the process cwd, so --dir behaves like running from that directory.
func (a *app) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.workDir, path)
}

// readPatchFile loads a patch body; "-" reads it from stdin.
func (a *app) readPatchFile(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(a.resolvePath(path))
	if err != nil {
		return "", fmt.Errorf("read patch %s: %w", path, err)
	}
	return string(data), nil
}

// exitError carries an explicit exit code through cobra. A nil wrapped
// error means the command already reported the outcome.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func silentExit(code int) error {
	return &exitError{code: code}
}

// usageArgs converts argument-count failures into exit code 2.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &exitError{code: 2, err: err}
		}
		return nil
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
