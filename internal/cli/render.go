package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontomat/pkg/pipeline"
)

// renderOpts holds options for the render command.
type renderOpts struct {
	output     string
	formats    string
	mode       string
	reflexive  bool
	scope      string
	shortNames bool
	selfLoops  bool
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Generate DOT or SVG visualizations of a hierarchy",
		Long: `Render builds the hierarchy from a snapshot file and writes the configured
matrix as a Graphviz visualization. The output path defaults to the input
file name with the format extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (base path when multiple formats)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output formats, comma-separated (dot, svg)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", pipeline.DefaultMode, "transitivity mode (asserted, powers, warshall, reasoning)")
	cmd.Flags().BoolVar(&opts.reflexive, "reflexive", false, "include reflexive self-relations")
	cmd.Flags().StringVar(&opts.scope, "scope", pipeline.DefaultScope, "reflexivity scope (asserted, closure)")
	cmd.Flags().BoolVar(&opts.shortNames, "short-names", false, "label nodes with IRI fragments instead of full names")
	cmd.Flags().BoolVar(&opts.selfLoops, "self-loops", false, "draw reflexive self-loops")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts to disk.
func (c *CLI) runRender(cmd *cobra.Command, src string, opts *renderOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Source:     src,
		Mode:       opts.mode,
		Reflexive:  opts.reflexive,
		Scope:      opts.scope,
		Refresh:    opts.refresh,
		Formats:    formats,
		ShortNames: opts.shortNames,
		SelfLoops:  opts.selfLoops,
		Logger:     c.Logger,
	}

	spinner := newSpinnerWithContext(cmd.Context(), "Rendering hierarchy...")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		if spinner.Cancelled() {
			return cmd.Context().Err()
		}
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", src))

	printStats(result.Stats.ClassCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	base := basePath(opts.output, src)
	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	return nil
}

// basePath derives the base output path from the output and input file paths.
// An empty output falls back to the input name without its extension; an
// output with an extension has the extension stripped so the format can be
// appended.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if ext := filepath.Ext(output); ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
