package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrendBraeckmans/koheesio"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of koheesio",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("koheesio version %s\n", koheesio.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
