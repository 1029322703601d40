// List command fetches jokes, either the full collection or a random sample.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokebox/jokebox/pkg/types"
)

var (
	listCategory string
	listType     string
	listCount    int
	listOffset   int
	listSeed     int64
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List jokes",
	Long: `List fetches jokes from the store.

By default a random sample of --count jokes is drawn; --all returns the whole
collection in creation order instead. --seed makes the sample deterministic,
which gives stable pages when combined with --offset.

Example:
  jokebox list --all
  jokebox list --category programming --count 2
  jokebox list --type tech --count 5 --seed 42 --offset 5`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "restrict to one category")
	listCmd.Flags().StringVar(&listType, "type", "", "restrict to a joke type (general, tech)")
	listCmd.Flags().IntVar(&listCount, "count", 10, "maximum number of jokes")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "window start within the result")
	listCmd.Flags().Int64Var(&listSeed, "seed", 0, "deterministic sampling seed")
	listCmd.Flags().BoolVar(&listAll, "all", false, "return every joke in creation order")
}

func runList(cmd *cobra.Command, args []string) error {
	filter := types.Filter{Count: listCount, Offset: listOffset}

	if listCategory != "" {
		category, err := types.ParseCategory(listCategory)
		if err != nil {
			return fmt.Errorf("invalid category %q: %w", listCategory, err)
		}
		filter.Category = &category
	}
	if listType != "" {
		jokeType, err := types.ParseType(listType)
		if err != nil {
			return fmt.Errorf("invalid type %q: %w", listType, err)
		}
		filter.Type = &jokeType
	}
	if cmd.Flags().Changed("seed") {
		filter.Seed = &listSeed
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var jokes []*types.Joke
	if listAll {
		jokes, err = store.GetAll()
	} else {
		jokes, err = store.GetJokes(filter)
	}
	if err != nil {
		return fmt.Errorf("list jokes: %w", err)
	}
	return printJokes(jokes)
}
