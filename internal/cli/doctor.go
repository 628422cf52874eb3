package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/preflight"
)

func (a *app) doctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the workspace before generating or applying patches",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := preflight.Target{
				WorkDir:  a.workDir,
				PatchDir: a.cfg.PatchDir,
				EnvFile:  ".env",
			}
			findings := preflight.RunAll(target)
			for _, finding := range findings {
				var label string
				switch finding.Status {
				case preflight.StatusOK:
					label = a.renderer.OK("[ OK ]")
				case preflight.StatusWarn:
					label = a.renderer.Warn("[WARN]")
				default:
					label = a.renderer.Fail("[FAIL]")
				}
				fmt.Fprintf(a.stdout, "%s %-17s %s\n", label, finding.Probe, finding.Detail)
			}
			if preflight.HasFailure(findings) {
				return silentExit(1)
			}
			return nil
		},
	}
}
