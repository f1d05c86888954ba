package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/meysamhadeli/zendocs/cache"
	"github.com/meysamhadeli/zendocs/constants/lipgloss"
	"github.com/meysamhadeli/zendocs/session"
	"github.com/meysamhadeli/zendocs/session/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// generateCmd: zendocs generate <archive.zip>
var generateCmd = &cobra.Command{
	Use:   "generate <archive.zip>",
	Short: "Upload a zipped project and render the generated documentation.",
	Long: `The 'generate' subcommand validates that the given file is a ZIP archive, uploads it to the
documentation service and waits (up to the configured timeout) for the per-file documentation.
On success the summary, the per-file outcomes and a preview of the combined documentation are
printed, the report is cached, and with --auto_download the artifact is written to --output_dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleGenerateCommand(cmd.Context(), cmd.OutOrStdout(), rootDependencies, args[0])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func handleGenerateCommand(parent context.Context, out io.Writer, rootDependencies *RootDependencies, archivePath string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	archive, err := models.ArchiveFromFile(archivePath)
	if err != nil {
		return err
	}

	uploadSession := session.New(rootDependencies.Transport,
		session.WithLogger(rootDependencies.Logger),
		session.WithObserver(func(snapshot session.Snapshot) {
			rootDependencies.Logger.Debug("session state changed",
				"phase", snapshot.Phase.String(),
				"session_token", snapshot.Token,
			)
		}),
	)

	if err := uploadSession.SelectFile(archive); err != nil {
		return err
	}
	if err := rootDependencies.Presenter.RenderSnapshot(ctx, uploadSession.Snapshot()); err != nil {
		return err
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	ticket, err := uploadSession.Submit(ctx)
	if err != nil {
		return err
	}

	spinnerInstance, _ := spinner.Start(fmt.Sprintf("Generating documentation for %s...", archive.Name))
	waitErr := ticket.Wait(ctx)
	if spinnerInstance != nil {
		_ = spinnerInstance.Stop()
	}
	fmt.Print("\r")

	if waitErr != nil {
		// The transport call shares ctx, so the attempt resolves shortly after.
		fmt.Fprintln(out, lipgloss.Yellow.Render("\n🔄 Upload interrupted..."))
		return waitErr
	}

	snapshot := uploadSession.Snapshot()
	if snapshot.Phase == session.Failed {
		return snapshot.LastError
	}

	if err := rootDependencies.Presenter.RenderSnapshot(ctx, snapshot); err != nil {
		return err
	}

	if rootDependencies.Cache != nil {
		if digest, err := cache.Digest(archive); err != nil {
			rootDependencies.Logger.Warn("failed to hash archive for cache", "error", err)
		} else if err := rootDependencies.Cache.Set(digest, archive.Name, snapshot.Report); err != nil {
			rootDependencies.Logger.Warn("failed to cache report", "error", err)
		}
	}

	if rootDependencies.Config.AutoDownload {
		path, err := writeArtifact(rootDependencies, snapshot.Report, rootDependencies.Config.ExportFormat)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("✔ Documentation saved to %s", path)))
	}

	return nil
}
