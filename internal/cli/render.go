package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/pkg/config"
	"github.com/matzehuels/venn/pkg/pipeline"
)

// renderFlags holds the output flags shared by render and visualize.
type renderFlags struct {
	formats     string
	output      string
	title       string
	interactive bool
	pngScale    float64
	noCache     bool
	refresh     bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&f.title, "title", "", "diagram title (SVG and PDF)")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "highlight regions on hover (SVG)")
	cmd.Flags().Float64Var(&f.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	formats, err := pipeline.ParseFormats(f.formats)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Title = f.title
	opts.Interactive = f.interactive
	opts.PNGScale = f.pngScale
	opts.Refresh = f.refresh
	return nil
}

// renderCommand creates the render command: layout and render in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in inputFlags
		sf styleFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out and render a diagram",
		Long: `Lay out and render a diagram to SVG, PNG, PDF or JSON.

PNG output is rasterized natively. PDF output requires rsvg-convert
(librsvg) on PATH.

Results are cached locally for faster subsequent runs.`,
		Example: `  venn render --sizes 3,2,1 --labels Cats,Dogs -o pets.svg
  venn render --sizes 5,4,2,3,1,1,1 -f svg,png --subset-font-size 14
  venn render --from-files a.txt,b.txt,c.txt -f pdf`,
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
			opts := pipeline.Options{Sizes: v, Diagram: cfg.Diagram(), Style: cfg.Style}
			if err := rf.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, cfg.Cache, rf)
		},
	}

	in.register(cmd)
	sf.register(cmd)
	rf.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, cc config.Cache, rf renderFlags) error {
	runner, err := c.newRunner(ctx, cc, rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		output:    rf.output,
	})
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	printFallbacks(res.Diagram)
	return nil
}
