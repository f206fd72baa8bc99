package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bcgsc/mavis-config/pkg/derive"
	"github.com/bcgsc/mavis-config/pkg/rendering"
	"github.com/spf13/cobra"
)

// bindingsCmd prints singularity bind mounts
//
//nolint:gochecknoglobals // Cobra commands are typically global
var bindingsCmd = &cobra.Command{
	Use:   "bindings <file>",
	Short: "Print the singularity bind mounts a configuration needs",
	Long: `Print the singularity bind mounts a configuration needs: output_dir
read-write, then every directory holding library inputs, bam files or
reference files read-only.`,
	Args: cobra.ExactArgs(1),
	RunE: runBindings,
}

// batchesCmd estimates cluster batches per library
//
//nolint:gochecknoglobals // Cobra commands are typically global
var batchesCmd = &cobra.Command{
	Use:   "batches <file>",
	Short: "Estimate the number of cluster batches per library",
	Long: `Estimate the number of cluster batches per library from the rows of its
inputs and the cluster.max_files and cluster.min_clusters_per_file settings.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatches,
}

// inputsCmd prints the raw inputs of a library
//
//nolint:gochecknoglobals // Cobra commands are typically global
var inputsCmd = &cobra.Command{
	Use:   "inputs <file>",
	Short: "Print the raw input files of a library",
	Args:  cobra.ExactArgs(1),
	RunE:  runInputs,
}

func init() {
	rootCmd.AddCommand(bindingsCmd)
	rootCmd.AddCommand(batchesCmd)
	rootCmd.AddCommand(inputsCmd)

	addStageFlag(bindingsCmd)
	bindingsCmd.Flags().Bool("env", false, "print job environment variables instead of one binding per line")

	addStageFlag(batchesCmd)
	batchesCmd.Flags().StringP("library", "l", "", "only estimate this library")

	addStageFlag(inputsCmd)
	inputsCmd.Flags().StringP("library", "l", "", "library name")
	_ = inputsCmd.MarkFlagRequired("library")
}

func runBindings(cmd *cobra.Command, args []string) error {
	_, validator, err := setup(cmd)
	if err != nil {
		return err
	}

	validated, st, err := loadValidated(cmd, validator, args[0])
	if err != nil {
		return err
	}

	env, err := cmd.Flags().GetBool("env")
	if err != nil {
		return err
	}

	var lines []string
	if env {
		lines, err = rendering.BuildEnvironmentVariables(validated, st)
	} else {
		lines, err = derive.SingularityBindings(validated)
	}
	if err != nil {
		return err
	}

	for _, line := range lines {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	return nil
}

func runBatches(cmd *cobra.Command, args []string) error {
	_, validator, err := setup(cmd)
	if err != nil {
		return err
	}

	validated, _, err := loadValidated(cmd, validator, args[0])
	if err != nil {
		return err
	}

	library, err := cmd.Flags().GetString("library")
	if err != nil {
		return err
	}

	batches := map[string]int{}
	if library != "" {
		inputs, err := derive.LibraryInputs(validated, library)
		if err != nil {
			return err
		}
		if batches[library], err = derive.GuessTotalBatches(validated, inputs); err != nil {
			return err
		}
	} else if batches, err = derive.LibraryBatches(validated); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LIBRARY\tBATCHES")
	for _, name := range validated.LibraryNames() {
		count, ok := batches[name]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\n", name, count)
	}

	return w.Flush()
}

func runInputs(cmd *cobra.Command, args []string) error {
	_, validator, err := setup(cmd)
	if err != nil {
		return err
	}

	validated, _, err := loadValidated(cmd, validator, args[0])
	if err != nil {
		return err
	}

	library, err := cmd.Flags().GetString("library")
	if err != nil {
		return err
	}

	inputs, err := derive.LibraryInputs(validated, library)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), input)
	}

	return nil
}
