package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ndca/pkg/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range rules.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
