package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridkit/infinigrid/pkg/snapshotio"
)

// snapshotCommand creates the snapshot inspection command.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect saved grid snapshots",
	}

	cmd.AddCommand(c.snapshotShowCommand())

	return cmd
}

// snapshotShowCommand creates the "snapshot show" subcommand.
func (c *CLI) snapshotShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print a summary of a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshotio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			printKeyValue("items", fmt.Sprintf("%d", len(st.Items)))
			printKeyValue("columns", fmt.Sprintf("%d", len(st.Columns)))
			printKeyValue("capacity", fmt.Sprintf("%d", st.Options.Capacity))
			printKeyValue("column width", fmt.Sprintf("%.0f", st.Options.ColumnWidth))
			printKeyValue("gutter", fmt.Sprintf("%.0f", st.Options.Gutter))
			printKeyValue("scroll offset", fmt.Sprintf("%.0f", st.ScrollOffset))
			printKeyValue("recycling", fmt.Sprintf("%t", st.Recycling))

			groups := make(map[string]int)
			order := []string{}
			for _, it := range st.Items {
				if _, seen := groups[it.GroupKey]; !seen {
					order = append(order, it.GroupKey)
				}
				groups[it.GroupKey]++
			}
			fmt.Println()
			printInfo("groups in window:")
			for _, key := range order {
				printDetail("%s (%d cards)", key, groups[key])
			}
			return nil
		},
	}
}
