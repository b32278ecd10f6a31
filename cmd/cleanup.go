package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quoteforge/quoteforge/internal/utils"
)

var (
	cleanupDir    string
	keepLatest    int
	olderThanDays int
	cleanupDryRun bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Clean up old workflow output directories",
	Long:  `Remove old workflow run folders based on age or count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cleanupDir == "" {
			return fmt.Errorf("output directory is required")
		}

		// Check if output directory exists
		if _, err := os.Stat(cleanupDir); os.IsNotExist(err) {
			return fmt.Errorf("output directory %s does not exist", cleanupDir)
		}

		entries, err := os.ReadDir(cleanupDir)
		if err != nil {
			return fmt.Errorf("failed to read output directory: %w", err)
		}

		// Collect run directories carrying a YYYYMMDD-HHMMSS timestamp suffix
		type runDir struct {
			name      string
			timestamp time.Time
		}
		var runDirs []runDir
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			ts, ok := parseRunTimestamp(entry.Name())
			if !ok {
				continue
			}
			runDirs = append(runDirs, runDir{name: entry.Name(), timestamp: ts})
		}

		if len(runDirs) == 0 {
			utils.LogInfo("No workflow run directories found.")
			return nil
		}

		// Sort directories oldest first
		sort.Slice(runDirs, func(i, j int) bool {
			return runDirs[i].timestamp.Before(runDirs[j].timestamp)
		})

		// Determine which directories to delete
		toDelete := make(map[string]bool)

		// If keep-latest is specified
		if keepLatest > 0 && len(runDirs) > keepLatest {
			for _, dir := range runDirs[:len(runDirs)-keepLatest] {
				toDelete[dir.name] = true
			}
		}

		// If older-than is specified
		if olderThanDays > 0 {
			cutoffTime := time.Now().AddDate(0, 0, -olderThanDays)
			for _, dir := range runDirs {
				if dir.timestamp.Before(cutoffTime) {
					toDelete[dir.name] = true
				}
			}
		}

		if len(toDelete) == 0 {
			utils.LogInfo("No directories to delete.")
			return nil
		}

		names := make([]string, 0, len(toDelete))
		for name := range toDelete {
			names = append(names, name)
		}
		sort.Strings(names)

		utils.LogInfo("Found %d directories to delete:", len(names))
		for _, name := range names {
			utils.LogInfo("- %s", name)
		}

		if cleanupDryRun {
			utils.LogInfo("Dry run - no directories were deleted.")
			return nil
		}

		for _, name := range names {
			fullPath := filepath.Join(cleanupDir, name)
			utils.LogInfo("Deleting %s...", fullPath)

			if err := os.RemoveAll(fullPath); err != nil {
				utils.LogError("Error deleting %s: %v", fullPath, err)
			}
		}

		utils.LogSuccess("Cleanup completed.")
		return nil
	},
}

// parseRunTimestamp extracts the trailing YYYYMMDD-HHMMSS timestamp from a
// run directory name
func parseRunTimestamp(name string) (time.Time, bool) {
	parts := strings.Split(name, "-")
	if len(parts) < 2 {
		return time.Time{}, false
	}

	suffix := parts[len(parts)-2] + "-" + parts[len(parts)-1]
	ts, err := time.ParseInLocation("20060102-150405", suffix, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func init() {
	cleanupCmd.Flags().StringVarP(&cleanupDir, "dir", "d", "", "Output directory to clean up (required)")
	cleanupCmd.Flags().IntVarP(&keepLatest, "keep-latest", "k", 0, "Keep this many latest directories")
	cleanupCmd.Flags().IntVarP(&olderThanDays, "older-than", "o", 0, "Delete directories older than this many days")
	cleanupCmd.Flags().BoolVarP(&cleanupDryRun, "dry-run", "n", false, "Show what would be deleted without actually deleting")

	_ = cleanupCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(cleanupCmd)
}
