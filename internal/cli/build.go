package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontomat/pkg/hierarchy"
	"github.com/matzehuels/ontomat/pkg/pipeline"
)

// buildOpts holds options for the build command.
type buildOpts struct {
	mode      string
	reflexive bool
	scope     string
	noCache   bool
	refresh   bool
	matrix    bool
	list      bool
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	opts := &buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <source>",
		Short: "Construct the adjacency matrices for a hierarchy snapshot",
		Long: `Build loads a hierarchy snapshot from a JSON or TOML file, constructs the
asserted adjacency matrix and its transitive closure, and prints summary
statistics. Use --matrix to print the resulting matrix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", pipeline.DefaultMode, "transitivity mode (asserted, powers, warshall, reasoning)")
	cmd.Flags().BoolVar(&opts.reflexive, "reflexive", false, "include reflexive self-relations")
	cmd.Flags().StringVar(&opts.scope, "scope", pipeline.DefaultScope, "reflexivity scope (asserted, closure)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&opts.matrix, "matrix", false, "print the resulting matrix")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list the asserted (child, parent) pairs in index order")

	return cmd
}

// runBuild executes the build pipeline and prints the results.
func (c *CLI) runBuild(cmd *cobra.Command, src string, opts *buildOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Source:    src,
		Mode:      opts.mode,
		Reflexive: opts.reflexive,
		Scope:     opts.scope,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	}

	spinner := newSpinnerWithContext(cmd.Context(), "Building hierarchy...")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		spinner.StopWithError("Build failed")
		if spinner.Cancelled() {
			return cmd.Context().Err()
		}
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Built hierarchy from %s", src))

	printStats(result.Stats.ClassCount, result.Stats.EdgeCount, result.CacheInfo.ConstructHit)
	printDetail("mode: %s · reflexive: %t · scope: %s", opts.mode, opts.reflexive, opts.scope)
	c.Logger.Debug("timings",
		"load", result.Stats.LoadTime,
		"construct", result.Stats.ConstructTime)
	c.Logger.Debug("hashes",
		"snapshot", result.SnapshotHash,
		"matrix", result.MatrixHash)

	if opts.matrix {
		m, names := result.Hierarchy.Results()
		printNewline()
		for _, name := range names {
			printDetail("%s", name)
		}
		fmt.Println(m.String())
	}

	if opts.list {
		asserted := result.Hierarchy.Asserted()
		names := result.Hierarchy.Index().Names()
		printNewline()
		for _, cell := range asserted.Cells() {
			sub := hierarchy.ShortName(names[cell[0]])
			super := hierarchy.ShortName(names[cell[1]])
			printDetail("%s %s %s", sub, iconArrow, super)
		}
	}

	printNextStep("Render it", fmt.Sprintf("ontomat render %s -o hierarchy.svg", src))
	return nil
}
