package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/pkg/buildinfo"
	"github.com/matzehuels/venn/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Venn lays out area-proportional Venn diagrams",
		Long: `Venn lays out area-proportional Venn diagrams for two or three sets.

Circle areas follow the set sizes and overlap areas follow the intersection
sizes as closely as circles allow. Every region gets a label anchor inside it,
and the result renders to SVG, PNG, PDF or a JSON layout document.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(observability.NewLogPipelineHooks(c.Logger))
			observability.SetCacheHooks(observability.NewLogCacheHooks(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
