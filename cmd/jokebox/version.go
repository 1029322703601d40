package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the CLI version reported by --version and the version command.
const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("jokebox v" + version)
	},
}
