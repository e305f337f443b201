package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/pkg/config"
	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/pipeline"
	"github.com/matzehuels/venn/pkg/render/sink"
)

// visualizeCommand creates the visualize command for rendering a layout
// document.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		sf   styleFlags
		rf   renderFlags
		pick bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a layout document produced by 'layout' (or 'render -f json').

The document carries the geometry and label anchors, so this step only draws.
The style stored in the document is reused unless --config or a style flag
is given. With --pick, a terminal view previews every region and lets you
choose the output formats before rendering.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayouts,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sf.load(cmd)
			if err != nil {
				return err
			}
			opts := pipeline.Options{Style: cfg.Style}
			if err := rf.apply(&opts); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, cfg.Cache, rf, !sf.changed(cmd), pick)
		},
	}

	sf.register(cmd)
	rf.register(cmd)
	cmd.Flags().BoolVar(&pick, "pick", false, "preview the regions and choose formats interactively")

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, cc config.Cache, rf renderFlags, useDocStyle, pick bool) error {
	d, err := readLayout(input, &opts, useDocStyle)
	if err != nil {
		return err
	}
	if pick {
		formats, err := pickFormats(d, opts.Formats)
		if err != nil {
			return err
		}
		if formats == nil {
			printDetail("No selection made")
			return nil
		}
		opts.Formats = formats
	}

	runner, err := c.newRunner(ctx, cc, rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, _, cacheHit, err := runner.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    rf.output,
	})
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Visualization complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(pipeline.Stats{
		Sets:       d.Arity(),
		Regions:    len(d.Regions),
		Iterations: d.Layout.Iterations,
		FitError:   d.FitError(),
	}, cacheHit)
	return nil
}

// readLayout loads a layout document. Its style replaces opts.Style when
// useDocStyle is set and the document carries one.
func readLayout(path string, opts *pipeline.Options, useDocStyle bool) (*diagram.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	d, st, err := sink.ReadJSON(data)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	if useDocStyle && st != nil {
		opts.Style = *st
	}
	return d, nil
}
