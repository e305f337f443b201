package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/pkg/config"
	"github.com/matzehuels/venn/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in      inputFlags
		sf      styleFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a diagram layout",
		Long: `Compute a diagram layout and write it as a JSON document.

The document holds the circles, every region's boundary arcs, and every label
anchor with its resolved text, font size and position. Render it later with
'visualize', or use 'render' to go straight to an image.

Results are cached locally for faster subsequent runs.`,
		Example: `  venn layout --sizes 3,2,1 -o pets.layout.json
  venn layout --subset 110=3 --subset 001=2 --sets 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := in.vector()
			if err != nil {
				return err
			}
			cfg, err := sf.load(cmd)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Sizes:   v,
				Diagram: cfg.Diagram(),
				Style:   cfg.Style,
				Formats: []string{pipeline.FormatJSON},
				Refresh: refresh,
			}
			return c.runLayout(cmd.Context(), opts, cfg.Cache, output, noCache)
		},
	}

	in.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, cc config.Cache, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cc, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	// Status output is skipped when the document goes to stdout.
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	if output != "" {
		spinner.Start()
	}
	res, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		if output != "" {
			printError("Layout failed")
		}
		return err
	}

	if err := writeFile(output, res.Artifacts[pipeline.FormatJSON]); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	if output == "" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(res.Stats, res.CacheInfo.LayoutHit)
	printFallbacks(res.Diagram)
	printNewline()
	printNextStep("Render", appName+" visualize "+output)
	return nil
}
