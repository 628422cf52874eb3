package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <patchfile>",
		Short: "Report whether a patch applies to the project directory",
		Long: `Dry-runs the patch forward and in reverse. Prints "applicable" when
it would apply cleanly, "already applied" when the tree already contains
it, and "does not apply" otherwise. The exit code is non-zero only in
the last case.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.readPatchFile(cmd, args[0])
			if err != nil {
				return err
			}
			switch {
			case patch.IsApplicable(a.workDir, body):
				fmt.Fprintln(a.stdout, a.renderer.OK("applicable"))
				return nil
			case patch.IsApplied(a.workDir, body):
				fmt.Fprintln(a.stdout, a.renderer.Muted("already applied"))
				return nil
			default:
				fmt.Fprintln(a.stdout, a.renderer.Fail("does not apply"))
				return silentExit(1)
			}
		},
	}
}
