package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quoteforge/quoteforge/internal/config"
	"github.com/quoteforge/quoteforge/internal/utils"
	"github.com/quoteforge/quoteforge/internal/validator"
	"github.com/quoteforge/quoteforge/internal/workflow"
)

var (
	workflowFilePath  string
	inputFileOverride string
	outputFolderPath  string
	retryFlag         bool
	retryStepName     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a quote video workflow",
	Long:  `Execute a quote video workflow defined in a YAML file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate that external dependencies are installed
		if err := validator.ValidateExternalTools(); err != nil {
			return fmt.Errorf("dependency validation failed: %w", err)
		}

		inputConfig, err := config.NewInputConfig(inputFileOverride, outputFolderPath, workflowFilePath, retryFlag, retryStepName)
		if err != nil {
			return fmt.Errorf("invalid input configuration: %w", err)
		}

		// Load the workflow - validation happens inside Execute
		wf, err := workflow.LoadFromFile(inputConfig)
		if err != nil {
			return fmt.Errorf("failed to load workflow: %w", err)
		}

		if inputFileOverride != "" {
			utils.LogInfo("Using input file from CLI: %s", inputFileOverride)
		}

		if retryFlag {
			utils.LogInfo("Retrying workflow from step %s in output folder %s", retryStepName, outputFolderPath)
			if err := wf.ExecuteRetry(outputFolderPath, retryStepName); err != nil {
				return fmt.Errorf("workflow retry execution failed: %w", err)
			}
		} else {
			if err := wf.Execute(); err != nil {
				return fmt.Errorf("workflow execution failed: %w", err)
			}
		}

		utils.LogInfo("Workflow completed successfully")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&workflowFilePath, "workflow", "w", "", "Path to workflow YAML file (required)")
	runCmd.Flags().StringVarP(&inputFileOverride, "input", "i", "", "Quote deck file path (skips the fetch step's output)")
	runCmd.Flags().StringVarP(&outputFolderPath, "output-folder", "o", "", "Output folder path")
	runCmd.Flags().BoolVarP(&retryFlag, "retry", "r", false, "Retry a failed workflow execution")
	runCmd.Flags().StringVarP(&retryStepName, "step-name", "n", "", "Name of the step to resume from (required with --retry)")
	_ = runCmd.MarkFlagRequired("workflow")
	rootCmd.AddCommand(runCmd)
}
