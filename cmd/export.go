package cmd

import (
	"errors"
	"fmt"

	"github.com/meysamhadeli/zendocs/cache"
	"github.com/meysamhadeli/zendocs/constants/lipgloss"
	"github.com/meysamhadeli/zendocs/export"
	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/meysamhadeli/zendocs/session/models"
	"github.com/spf13/cobra"
)

// exportCmd: zendocs export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the documentation artifact of a cached report.",
	Long: `The 'export' subcommand writes '<project>_documentation.md' (or '.html' with --export_format html)
for the most recently generated report, or for the report generated from --archive, into --output_dir.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		archivePath, _ := cmd.Flags().GetString("archive")

		entry, err := loadCachedReport(rootDependencies, archivePath)
		if err != nil {
			return err
		}

		path, err := writeArtifact(rootDependencies, entry.Report, rootDependencies.Config.ExportFormat)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), lipgloss.Green.Render(fmt.Sprintf("✔ Documentation saved to %s", path)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("archive", "a", "", "Export the report generated from this archive instead of the latest one")
	rootCmd.AddCommand(exportCmd)
}

func writeArtifact(rootDependencies *RootDependencies, rep *reportmodels.DocumentationReport, formatName string) (string, error) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return "", err
	}
	artifact, err := export.Build(rep, format)
	if err != nil {
		return "", err
	}
	path, err := export.Write(rootDependencies.Config.OutputDir, artifact)
	if err != nil {
		return "", err
	}
	rootDependencies.Logger.Debug("artifact written", "path", path, "mime_type", artifact.MIMEType, "bytes", len(artifact.Content))
	return path, nil
}

// loadCachedReport returns the report cached for archivePath, or the latest
// report when archivePath is empty.
func loadCachedReport(rootDependencies *RootDependencies, archivePath string) (*cache.CacheEntry, error) {
	reportCache, err := requireCache(rootDependencies)
	if err != nil {
		return nil, err
	}

	var entry *cache.CacheEntry
	if archivePath == "" {
		entry, err = reportCache.Latest()
	} else {
		archive, openErr := models.ArchiveFromFile(archivePath)
		if openErr != nil {
			return nil, openErr
		}
		digest, digestErr := cache.Digest(archive)
		if digestErr != nil {
			return nil, digestErr
		}
		entry, err = reportCache.Get(digest)
	}

	if errors.Is(err, cache.ErrNotFound) {
		return nil, fmt.Errorf("%w; run 'zendocs generate <archive.zip>' first", err)
	}
	return entry, err
}
