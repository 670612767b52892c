package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"slava0135/arraysum/graph"
)

func newInspectCmd(a *app) *cobra.Command {
	var naive, blocks bool
	var fn string
	cmd := &cobra.Command{
		Use:   "inspect <file.go>",
		Short: "Print SSA statistics for the functions of a Go file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, ":: building SSA graph for file '%s'\n", args[0])
			pkg, err := graph.BuildPackage(args[0], naive)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "FUNCTION\tBLOCKS\tINSTRS\tINDEXES\tDYNAMIC")
			found := false
			for _, f := range graph.Functions(pkg) {
				if fn != "" && f.Name() != fn {
					continue
				}
				found = true
				s := graph.Stats(f)
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.Name, s.Blocks, s.Instrs, s.Indexes, s.DynamicIndexes)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no function '%s' in '%s'", fn, args[0])
			}
			if blocks {
				for _, f := range graph.Functions(pkg) {
					if fn == "" || f.Name() == fn {
						graph.PrintBlocks(out, f)
					}
				}
			}
			a.log.Debug().Str("file", args[0]).Bool("naive", naive).Msg("inspected")
			return nil
		},
	}
	cmd.Flags().BoolVar(&naive, "naive", false, "keep locals in memory, like an unoptimised build")
	cmd.Flags().BoolVar(&blocks, "blocks", false, "print every block")
	cmd.Flags().StringVar(&fn, "func", "", "only this function")
	return cmd
}
