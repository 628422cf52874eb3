package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/snapshot"
	"github.com/buivietphi/ft-patch-package/pkg/diff"
	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

func (a *app) diffCommand() *cobra.Command {
	var snapshotName string
	var output string
	var save bool

	cmd := &cobra.Command{
		Use:   "diff [base] [target]",
		Short: "Generate a unified diff between two trees",
		Long: `Generates a unified diff between two directory trees, or between a
stored snapshot and a live tree with --snapshot <name>. The patch goes
to stdout unless -o names a file or --save drops it under the patch
directory.`,
		Args: usageArgs(cobra.RangeArgs(0, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, target, name, err := a.diffEndpoints(snapshotName, args)
			if err != nil {
				return err
			}
			body, err := diff.Generate(base, target, a.diffOptions())
			if err != nil {
				return err
			}

			dest := output
			if dest == "" && save {
				dest = filepath.Join(a.patchDir(), name+".patch")
			}
			if dest == "" {
				fmt.Fprint(a.stdout, body)
				return nil
			}

			dest = a.resolvePath(dest)
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
			}
			if err := os.WriteFile(dest, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			fmt.Fprintf(a.stdout, "%s %s  %s\n",
				a.renderer.OK("wrote"), dest, a.renderer.Summary(patch.Parse(body).Stats()))
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotName, "snapshot", "", "diff the named snapshot against the target tree")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the patch to this file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "write the patch under the patch directory")
	return cmd
}

// diffEndpoints resolves the base and target trees plus the default
// patch name from either the two-directory form or --snapshot.
func (a *app) diffEndpoints(snapshotName string, args []string) (base, target, name string, err error) {
	if snapshotName != "" {
		if len(args) > 1 {
			return "", "", "", &exitError{code: 2, err: errors.New("with --snapshot pass at most one directory")}
		}
		store, err := snapshot.NewStore(a.workDir)
		if err != nil {
			return "", "", "", err
		}
		if _, err := store.Manifest(snapshotName); err != nil {
			return "", "", "", err
		}
		target = a.workDir
		if len(args) == 1 {
			target = a.resolvePath(args[0])
		}
		return store.Path(snapshotName), target, snapshotName, nil
	}
	if len(args) != 2 {
		return "", "", "", &exitError{code: 2, err: errors.New("diff needs <base> <target>, or --snapshot <name>")}
	}
	base = a.resolvePath(args[0])
	target = a.resolvePath(args[1])
	return base, target, filepath.Base(target), nil
}
