package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"slava0135/arraysum/harness"
)

func newListCmd(a *app) *cobra.Command {
	var printSrc bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the exercise programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range harness.All() {
				fmt.Fprintf(out, "%-16s %s\n", p.Name, p.Description)
				if printSrc {
					harness.PrintSrc(out, p.Source)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printSrc, "src", false, "print the source of each program")
	return cmd
}
