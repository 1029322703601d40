// Get command retrieves one joke by ID.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <joke-id>",
	Short: "Retrieve a joke by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	joke, err := store.GetByID(args[0])
	if err != nil {
		return fmt.Errorf("get joke %s: %w", args[0], err)
	}
	return printJoke(joke)
}
