package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/snapshot"
	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <name> [dir]",
		Short: "Show how a tree drifted from a snapshot",
		Long: `Compares the live tree (default: the project directory) against the
named snapshot's digest manifest and lists added, changed, and removed
files without computing full diffs.`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := snapshot.NewStore(a.workDir)
			if err != nil {
				return err
			}
			dir := a.workDir
			if len(args) == 2 {
				dir = a.resolvePath(args[1])
			}
			drift, err := store.Status(args[0], dir)
			if err != nil {
				return err
			}
			if drift.Clean() {
				fmt.Fprintf(a.stdout, "%s matches snapshot %s\n",
					a.renderer.OK("clean"), a.renderer.Bold(args[0]))
				return nil
			}
			for _, rel := range drift.Added {
				fmt.Fprintln(a.stdout, a.renderer.ResultLine(patch.Result{Status: "A", Path: rel}))
			}
			for _, rel := range drift.Changed {
				fmt.Fprintln(a.stdout, a.renderer.ResultLine(patch.Result{Status: "M", Path: rel}))
			}
			for _, rel := range drift.Removed {
				fmt.Fprintln(a.stdout, a.renderer.ResultLine(patch.Result{Status: "D", Path: rel}))
			}
			fmt.Fprintf(a.stdout, "%d added, %d changed, %d removed\n",
				len(drift.Added), len(drift.Changed), len(drift.Removed))
			return nil
		},
	}
}
