package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/meysamhadeli/zendocs/cache"
	"github.com/meysamhadeli/zendocs/constants/lipgloss"
	"github.com/meysamhadeli/zendocs/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Remove cached documentation reports",
	Long: `The 'reset-cache' command removes the reports cached by 'generate' from the cache directory.
Use --older-than to only drop reports older than a duration, and --stats to inspect the cache without
changing it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")
		olderThan, _ := cmd.Flags().GetDuration("older-than")

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		reportCache, err := requireCache(rootDependencies)
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render("Cache is disabled. No cache to reset."))
			return nil
		}

		if stats {
			return printCacheStats(reportCache)
		}
		return handleResetCacheCommand(cmd, reportCache, force, olderThan)
	},
}

func init() {
	// Define command-specific flags
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")
	resetCacheCmd.Flags().Duration("older-than", 0, "Only remove reports older than this duration (e.g. 72h)")

	rootCmd.AddCommand(resetCacheCmd)
}

func printCacheStats(reportCache *cache.ReportCache) error {
	cacheStats, err := reportCache.GetCacheStats()
	if err != nil {
		return fmt.Errorf("could not show statistics: %w", err)
	}

	fmt.Println(lipgloss.Info.Render("Cache Statistics:"))
	if dir, ok := cacheStats["cache_dir"].(string); ok {
		fmt.Printf("  Cache Directory: %s\n", dir)
	}
	if files, ok := cacheStats["cache_files"].(int); ok {
		fmt.Printf("  Cached Reports: %d\n", files)
	}
	if size, ok := cacheStats["total_size"].(int64); ok {
		fmt.Printf("  Total Size: %.2f MB\n", float64(size)/(1024*1024))
	}
	return nil
}

func handleResetCacheCommand(cmd *cobra.Command, reportCache *cache.ReportCache, force bool, olderThan time.Duration) error {
	if !force {
		confirmed, err := utils.ConfirmPrompt(cmd.Context(), bufio.NewReader(os.Stdin), os.Stdout, "Are you sure you want to remove the cached reports?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled."))
			return nil
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start("Resetting report cache...")

	var deleted int
	var err error
	if olderThan > 0 {
		deleted, err = reportCache.CleanExpiredCache(olderThan)
	} else {
		deleted, err = reportCache.ClearCache()
	}

	if spinnerInstance != nil {
		_ = spinnerInstance.Stop()
	}
	fmt.Print("\r")

	if err != nil {
		return fmt.Errorf("error resetting cache: %w", err)
	}

	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Removed %d cached report file(s).", deleted)))
	return nil
}
