package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/snapshot"
)

func (a *app) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <name> [dir]",
		Short: "Take a pristine snapshot of a directory tree",
		Long: `Copies the tree (default: the project directory) into
.ft-patch/snapshots/<name> together with a digest manifest, so diff
--snapshot and status can compare against it later.`,
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
			manifest, err := store.Take(args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s %s  %d files from %s\n",
				a.renderer.OK("snapshot"), a.renderer.Bold(manifest.Name),
				manifest.Files, manifest.Source)
			return nil
		},
	}
	cmd.AddCommand(a.snapshotListCommand(), a.snapshotRemoveCommand())
	return cmd
}

func (a *app) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := snapshot.NewStore(a.workDir)
			if err != nil {
				return err
			}
			manifests, err := store.List()
			if err != nil {
				return err
			}
			if len(manifests) == 0 {
				fmt.Fprintln(a.stdout, a.renderer.Muted("no snapshots"))
				return nil
			}
			for _, m := range manifests {
				fmt.Fprintf(a.stdout, "%s  %d files  %s\n",
					a.renderer.Bold(m.Name), m.Files, m.TakenAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func (a *app) snapshotRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a stored snapshot",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := snapshot.NewStore(a.workDir)
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s %s\n", a.renderer.OK("removed"), args[0])
			return nil
		},
	}
}
