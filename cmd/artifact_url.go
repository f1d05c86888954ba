package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// artifactURLCmd: zendocs artifact-url <id>
var artifactURLCmd = &cobra.Command{
	Use:   "artifact-url <id>",
	Short: "Resolve the download URL of a documentation artifact stored by the service.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		url, err := rootDependencies.Transport.FetchArtifactURL(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(artifactURLCmd)
}
