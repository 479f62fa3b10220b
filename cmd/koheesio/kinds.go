package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrendBraeckmans/koheesio/pkg/steps"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the registered step kinds",
	Run: func(cmd *cobra.Command, args []string) {
		for _, kind := range steps.Kinds() {
			fmt.Println(kind)
		}
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
