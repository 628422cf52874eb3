package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/tui"
	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

func (a *app) applyCommand() *cobra.Command {
	var reverse, dryRun, interactive bool

	cmd := &cobra.Command{
		Use:   "apply <patchfile>",
		Short: "Apply a patch to the project directory",
		Long: `Replays a unified diff against the project directory. --reverse
undoes a previously applied patch, --dry-run verifies without writing,
and --interactive opens a picker to apply only some of the files.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.readPatchFile(cmd, args[0])
			if err != nil {
				return err
			}
			doc := patch.Parse(body)

			if interactive {
				if isTerminal(os.Stdout) {
					selected, ok, err := tui.Pick(doc, a.renderer)
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(a.stdout, a.renderer.Muted("cancelled"))
						return nil
					}
					if selected.IsEmpty() {
						fmt.Fprintln(a.stdout, a.renderer.Muted("nothing selected"))
						return nil
					}
					doc = selected
				} else {
					a.logger.Warn(cmd.Context(), "stdout is not a terminal, applying without selection")
				}
			}

			opts := patch.FilesystemOptions{
				Options: patch.Options{Reverse: reverse, DryRun: dryRun},
				Root:    a.workDir,
			}
			results, err := patch.ApplyFilesystem(doc, opts)
			for _, res := range results {
				fmt.Fprintln(a.stdout, a.renderer.ResultLine(res))
			}
			if err != nil {
				return errors.New(patch.FormatError(err))
			}
			if dryRun {
				fmt.Fprintf(a.stdout, "%s %s\n",
					a.renderer.OK("would apply"), a.renderer.Summary(doc.Stats()))
				return nil
			}
			verb := "applied"
			if reverse {
				verb = "reverted"
			}
			fmt.Fprintf(a.stdout, "%s %s\n", a.renderer.OK(verb), a.renderer.Summary(doc.Stats()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "apply the patch in reverse")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "verify the patch without writing")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick files to apply in a terminal UI")
	return cmd
}
