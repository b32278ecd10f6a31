package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/quoteforge/quoteforge/internal/config"
	"github.com/quoteforge/quoteforge/internal/utils"
	"github.com/quoteforge/quoteforge/internal/validator"
	"github.com/quoteforge/quoteforge/internal/workflow"
)

var (
	scheduleWorkflowPath string
	scheduleOutputRoot   string
	scheduleCronSpec     string
	scheduleRunNow       bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run a workflow on a recurring schedule",
	Long: `Run a quote video workflow on a cron schedule. Each run gets its own
timestamped directory under the output root, so runs never overwrite
each other and the cleanup command can prune them later.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate that external dependencies are installed
		if err := validator.ValidateExternalTools(); err != nil {
			return fmt.Errorf("dependency validation failed: %w", err)
		}

		runOnce := func() {
			runDir := filepath.Join(scheduleOutputRoot, "run-"+time.Now().Format("20060102-150405"))

			inputConfig, err := config.NewInputConfig("", runDir, scheduleWorkflowPath, false, "")
			if err != nil {
				utils.LogError("Scheduled run setup failed: %v", err)
				return
			}

			wf, err := workflow.LoadFromFile(inputConfig)
			if err != nil {
				utils.LogError("Scheduled run failed to load workflow: %v", err)
				return
			}

			utils.LogInfo("Starting scheduled run in %s", runDir)
			if err := wf.Execute(); err != nil {
				utils.LogError("Scheduled run failed: %v", err)
				return
			}
			utils.LogSuccess("Scheduled run completed in %s", runDir)
		}

		if scheduleRunNow {
			runOnce()
		}

		c := cron.New()
		if _, err := c.AddFunc(scheduleCronSpec, runOnce); err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", scheduleCronSpec, err)
		}
		c.Start()
		utils.LogInfo("Scheduler started with cron expression %q", scheduleCronSpec)

		// Block until interrupted
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		utils.LogInfo("Shutting down scheduler...")
		ctx := c.Stop()
		<-ctx.Done()

		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleWorkflowPath, "workflow", "w", "", "Path to workflow YAML file (required)")
	scheduleCmd.Flags().StringVarP(&scheduleOutputRoot, "output-root", "o", "output", "Root directory for per-run output folders")
	scheduleCmd.Flags().StringVarP(&scheduleCronSpec, "cron", "c", "0 8 * * *", "Cron expression for recurring runs")
	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", false, "Run the workflow immediately before starting the scheduler")
	_ = scheduleCmd.MarkFlagRequired("workflow")
	rootCmd.AddCommand(scheduleCmd)
}
