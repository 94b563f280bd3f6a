package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantdesk/quantdesk/internal/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available strategies and their parameters",
	Run: func(cmd *cobra.Command, args []string) {
		for _, def := range strategy.NewDefaultCatalog().Definitions() {
			fmt.Printf("%s - %s\n", def.Name, def.Description)
			for _, p := range def.Params {
				fmt.Printf("    %-14s default %-8g %s\n", p.Name, p.Default, p.Description)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
