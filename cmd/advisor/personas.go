package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mlorentedev/advisor/internal/persona"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the selectable experts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := persona.Default()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tLABEL\tDEFAULT")
		for _, p := range dir.List() {
			mark := ""
			if p.Key == dir.DefaultKey() {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Key, p.Label, mark)
		}
		fmt.Fprintf(tw, "(other)\t%s\t\n", "汎用アシスタント")
		return tw.Flush()
	},
}
