package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontomat/pkg/pipeline"
)

// pathOpts holds options for the path command.
type pathOpts struct {
	sources   []string
	target    string
	budget    int
	mode      string
	reflexive bool
	scope     string
	noCache   bool
}

// pathCommand creates the longest-path command.
func (c *CLI) pathCommand() *cobra.Command {
	opts := &pathOpts{}

	cmd := &cobra.Command{
		Use:   "path <source>",
		Short: "Find the longest subclass path between classes",
		Long: `Path searches the asserted hierarchy for the longest simple path from any
of the given source classes to the target class. Ties are broken by
preferring the lexicographically smallest class sequence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.sources, "from", nil, "source class (repeatable; all classes when omitted)")
	cmd.Flags().StringVarP(&opts.target, "to", "t", "", "target class (required)")
	cmd.Flags().IntVar(&opts.budget, "budget", pipeline.DefaultBudget, "search step budget")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", pipeline.DefaultMode, "transitivity mode (asserted, powers, warshall, reasoning)")
	cmd.Flags().BoolVar(&opts.reflexive, "reflexive", false, "include reflexive self-relations")
	cmd.Flags().StringVar(&opts.scope, "scope", pipeline.DefaultScope, "reflexivity scope (asserted, closure)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// runPath builds the hierarchy and runs the longest-path search.
func (c *CLI) runPath(cmd *cobra.Command, src string, opts *pathOpts) error {
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
		Logger:    c.Logger,
	}

	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	path, err := result.Hierarchy.LongestPath(cmd.Context(), opts.sources, opts.target, opts.budget)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found path of length %d", path.Length))

	printSuccess("Longest path to %s", opts.target)
	printDetail("%s", strings.Join(path.Names, " "+iconArrow+" "))
	printKeyValue("Length", fmt.Sprintf("%d", path.Length))
	return nil
}
