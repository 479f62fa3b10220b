package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BrendBraeckmans/koheesio"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition.yaml>",
	Short: "Check a pipeline definition for consistency",
	Long:  `Parses the definition, builds every step from the registry, loads the configuration context and validates each step's requirements against it — without executing anything.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Pipeline is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, path string) error {
	def, err := koheesio.LoadDefinition(path)
	if err != nil {
		return err
	}

	task, err := def.BuildTask()
	if err != nil {
		return err
	}

	cfg, err := def.BuildContext(cmd.Context())
	if err != nil {
		return err
	}

	return task.Validate(cfg)
}
