package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/spf13/cobra"
)

// stagesCmd lists the pipeline stages
//
//nolint:gochecknoglobals // Cobra commands are typically global
var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the pipeline stages",
	Long: `List the pipeline stages with the stages they depend on. With --plan,
print the stages that run, in order, to reach the target stage.`,
	Args: cobra.NoArgs,
	RunE: runStages,
}

func init() {
	rootCmd.AddCommand(stagesCmd)
	stagesCmd.Flags().String("plan", "", "print the execution plan for this target stage")
	stagesCmd.Flags().StringSlice("skip", nil, "stages left out of the plan (e.g. validate)")
}

func runStages(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	graph, err := stage.NewPipelineGraph()
	if err != nil {
		return err
	}

	target, err := cmd.Flags().GetString("plan")
	if err != nil {
		return err
	}

	if target != "" {
		return printPlan(cmd, graph, target)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tVALUE\tUPSTREAM")
	for _, st := range stage.Subcommands.Values() {
		name, err := stage.Subcommands.Reverse(st)
		if err != nil {
			return err
		}

		upstream, err := graph.Upstream(st)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, st, joinStages(upstream))
	}

	return w.Flush()
}

func printPlan(cmd *cobra.Command, graph *stage.PipelineGraph, target string) error {
	st, err := stage.Parse(target)
	if err != nil {
		return err
	}

	skipNames, err := cmd.Flags().GetStringSlice("skip")
	if err != nil {
		return err
	}

	skipped := make([]stage.Stage, 0, len(skipNames))
	for _, name := range skipNames {
		s, err := stage.Parse(name)
		if err != nil {
			return err
		}
		skipped = append(skipped, s)
	}

	plan, err := graph.Plan(st, skipped...)
	if err != nil {
		return err
	}

	for _, s := range plan {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
	}

	return nil
}

func joinStages(stages []stage.Stage) string {
	if len(stages) == 0 {
		return "-"
	}

	values := make([]string, 0, len(stages))
	for _, st := range stages {
		values = append(values, st.String())
	}
	return strings.Join(values, ",")
}
