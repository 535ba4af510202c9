package main

import (
	"fmt"

	"github.com/effective-security/flownodes/nodes"
	"github.com/spf13/cobra"
)

func newDescribeCmd(c *cli) *cobra.Command {
	var version float64
	cmd := &cobra.Command{
		Use:   "describe [node]",
		Short: "Print the descriptor of a node type",
		Long:  "Print the descriptor of a node type, or the names of the registered node types.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := nodes.NewRegistry()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				for _, name := range reg.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			nt, err := reg.Get(args[0], version)
			if err != nil {
				return err
			}
			return c.print(cmd, nt.Description())
		},
	}
	cmd.Flags().Float64Var(&version, "version", 0, "node type version, any by default")
	return cmd
}
