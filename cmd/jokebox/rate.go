// Rate command sets the rating of a joke. Range validation happens here, at
// the boundary, before the store is touched.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jokebox/jokebox/pkg/types"
)

var rateCmd = &cobra.Command{
	Use:   "rate <joke-id> <rating>",
	Short: "Rate a joke (0 to 5)",
	Args:  cobra.ExactArgs(2),
	RunE:  runRate,
}

func runRate(cmd *cobra.Command, args []string) error {
	rating, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid rating %q: %w", args[1], err)
	}
	if !types.ValidRating(rating) {
		return types.ErrInvalidRating
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpdateRating(args[0], rating); err != nil {
		return fmt.Errorf("rate joke %s: %w", args[0], err)
	}

	fmt.Printf("Rated joke %s: %.1f\n", args[0], rating)
	return nil
}
