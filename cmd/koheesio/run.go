package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BrendBraeckmans/koheesio"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <definition.yaml>",
	Short: "Run a pipeline definition",
	Long:  `Loads a YAML pipeline definition, builds its configuration context and task, runs it, and prints the final output as YAML on stdout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		trace, _ := cmd.Flags().GetBool("trace")
		if err := runPipeline(cmd, args[0], trace); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("trace", false, "Record every step's output in the result")
}

func runPipeline(cmd *cobra.Command, path string, trace bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	def, err := koheesio.LoadDefinition(path)
	if err != nil {
		return err
	}
	if trace {
		def.Trace = true
	}

	cfg, err := def.BuildContext(ctx)
	if err != nil {
		return err
	}

	taskOpts := []pipeline.TaskOption{pipeline.WithTaskLogger(slog.Default())}
	task, err := def.BuildTask(taskOpts...)
	if err != nil {
		return err
	}

	out, err := koheesio.Run(ctx, task, cfg, nil, koheesio.WithLogger(slog.Default()))
	if err != nil {
		var cancelled *pipeline.CancelledError
		if errors.As(err, &cancelled) {
			return fmt.Errorf("pipeline interrupted after %v", cancelled.Completed)
		}
		if origin := pipeline.Origin(err); origin != "" {
			return fmt.Errorf("pipeline failed at %q: %w", origin, err)
		}
		return err
	}

	encoded, err := yaml.Marshal(printableFields(out))
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Print(string(encoded))
	return nil
}

// printableFields flattens trace entries into plain maps so the YAML
// output stays readable.
func printableFields(out *pipeline.Output) map[string]any {
	fields := out.Fields()
	entries, ok := fields["trace"].([]pipeline.TraceEntry)
	if !ok {
		return fields
	}
	printable := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		printable = append(printable, map[string]any{
			"position": entry.Position,
			"step":     entry.Step,
			"duration": entry.Duration.String(),
			"output":   entry.Output.Fields(),
		})
	}
	fields["trace"] = printable
	return fields
}
