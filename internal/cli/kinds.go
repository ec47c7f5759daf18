package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/serialize"
)

// kindsCommand creates the kinds command.
func (c *CLI) kindsCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the scene classes scenedoc can serialize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := serialize.DefaultTable()

			var rows [][]string
			for _, class := range table.Classes() {
				k, _ := table.KindOf(class)
				if kind != "" && string(k) != kind {
					continue
				}
				rows = append(rows, []string{class, string(k)})
			}
			if len(rows) == 0 {
				printWarning(cmd.OutOrStdout(), "No classes of kind %q", kind)
				printNextStep(cmd.OutOrStdout(), "List all kinds", "scenedoc kinds")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Class", "Kind"}, rows))
			printDetail(cmd.OutOrStdout(), "%s across %s", plural(len(rows), "class"), plural(len(serialize.Kinds()), "kind"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only list classes of this kind")
	return cmd
}
