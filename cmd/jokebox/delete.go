// Delete command removes a joke and its steps.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <joke-id>",
	Short: "Delete a joke",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		return fmt.Errorf("delete joke %s: %w", args[0], err)
	}

	fmt.Printf("Deleted joke: %s\n", args[0])
	return nil
}
