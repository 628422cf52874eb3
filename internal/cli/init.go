package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/config"
)

func (a *app) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold ft-patch.json and the patch directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := filepath.Join(a.workDir, config.FileName)
			if _, err := os.Stat(configPath); err == nil {
				fmt.Fprintln(a.stdout, a.renderer.Muted(config.FileName+" already exists"))
			} else {
				if err := config.Write(a.workDir, a.cfg); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%s %s\n", a.renderer.OK("created"), config.FileName)
			}

			patchDir := a.patchDir()
			if err := os.MkdirAll(patchDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", patchDir, err)
			}
			fmt.Fprintf(a.stdout, "%s %s\n", a.renderer.OK("ready"), patchDir)
			return nil
		},
	}
}
