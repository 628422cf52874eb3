package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

func (a *app) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <patchfile>",
		Short: "Show a patch with colored hunks and per-file stats",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.readPatchFile(cmd, args[0])
			if err != nil {
				return err
			}
			doc := patch.Parse(body)
			if doc.IsEmpty() {
				fmt.Fprintln(a.stdout, a.renderer.Warn("no hunks found"))
				return silentExit(1)
			}
			fmt.Fprint(a.stdout, a.renderer.Document(doc, true))
			fmt.Fprintln(a.stdout)
			fmt.Fprintln(a.stdout, a.renderer.Summary(doc.Stats()))
			return nil
		},
	}
}
