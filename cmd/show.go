package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// showCmd: zendocs show
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a cached documentation report again.",
	Long: `The 'show' subcommand renders the most recently generated report (or the one generated from
--archive) without uploading anything. Use --file to expand the summary of a single file and
--format json|yaml to dump the report for scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		archivePath, _ := cmd.Flags().GetString("archive")
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")

		entry, err := loadCachedReport(rootDependencies, archivePath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entry.Report)
		case "yaml":
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			defer encoder.Close()
			return encoder.Encode(entry.Report)
		case "", "text":
		default:
			return fmt.Errorf("unsupported output format %q (use 'text', 'json' or 'yaml')", format)
		}

		if file != "" {
			return rootDependencies.Presenter.RenderEntry(cmd.Context(), entry.Report, file)
		}

		fmt.Fprintf(out, "Generated from %s at %s\n", entry.ArchiveName, entry.Timestamp.Format("2006-01-02 15:04:05"))
		return rootDependencies.Presenter.RenderReport(cmd.Context(), entry.Report)
	},
}

func init() {
	showCmd.Flags().StringP("archive", "a", "", "Show the report generated from this archive instead of the latest one")
	showCmd.Flags().StringP("file", "f", "", "Expand the summary of a single file")
	showCmd.Flags().String("format", "text", "Output format: 'text', 'json' or 'yaml'")
	rootCmd.AddCommand(showCmd)
}
