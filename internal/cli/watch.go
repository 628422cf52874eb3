package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/buivietphi/ft-patch-package/internal/logging"
	"github.com/buivietphi/ft-patch-package/internal/watcher"
	"github.com/buivietphi/ft-patch-package/pkg/diff"
	"github.com/buivietphi/ft-patch-package/pkg/patch"
)

func (a *app) watchCommand() *cobra.Command {
	var output string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <base> <target>",
		Short: "Keep a patch file up to date while the target tree changes",
		Long: `Regenerates the base-to-target patch into -o whenever the target
tree changes, settling bursts of events first. Stop with Ctrl-C.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return &exitError{code: 2, err: errors.New("watch requires -o <file>")}
			}
			base := a.resolvePath(args[0])
			target := a.resolvePath(args[1])
			dest := a.resolvePath(output)
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
			}

			regenerate := func(ctx context.Context) {
				body, err := diff.Generate(base, target, a.diffOptions())
				if err != nil {
					a.logger.Error(ctx, "patch generation failed", err)
					return
				}
				if err := os.WriteFile(dest, []byte(body), 0o644); err != nil {
					a.logger.Error(ctx, "patch write failed", err, logging.Field("path", dest))
					return
				}
				stats := patch.Parse(body).Stats()
				a.logger.Info(ctx, "patch updated",
					logging.Field("path", dest),
					logging.Field("files", stats.Files),
					logging.Field("inserts", stats.Inserts),
					logging.Field("deletes", stats.Deletes))
			}

			ctx := cmd.Context()
			regenerate(ctx)
			opts := watcher.Options{Debounce: debounce, Logger: a.logger}
			return watcher.Watch(ctx, target, opts, regenerate)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "patch file to keep updated")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "settle window before regenerating")
	return cmd
}
