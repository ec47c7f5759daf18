package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/pipeline"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		svg    bool
	)

	cmd := &cobra.Command{
		Use:   "graph <scene>",
		Short: "Print the record graph of a scene as Graphviz DOT",
		Long: `Serialize a scene and print the records of the pass with their named
edges, before they are inlined into the document. Shared objects appear once
with several incoming edges; objects that produced no record are dashed.`,
		Example: `  scenedoc graph pyramid.yaml | dot -Tpng > graph.png
  scenedoc graph --svg -o graph.svg pyramid.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := pipeline.FormatDOT
			if svg {
				format = pipeline.FormatSVG
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), pipeline.Options{
				Scene:   args[0],
				Formats: []string{format},
			})
			if err != nil {
				return err
			}

			data := res.Artifacts[format]
			if output == "" || output == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := writeFile(output, data); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s graph of %s", format, plural(res.Stats.Records, "record"))
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG with Graphviz instead of DOT")

	return cmd
}
