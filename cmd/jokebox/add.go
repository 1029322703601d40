// Add command creates a new joke.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokebox/jokebox/pkg/types"
)

var (
	addCategory string
	addSteps    []string
	addID       string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new joke",
	Long: `Add creates a new joke with the specified category and steps.

Steps are given in presentation order as role:content pairs.

Example:
  jokebox add --category science \
    --step "setup:Why don't scientists trust atoms?" \
    --step "punchline:Because they make up everything!"`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "joke category (required)")
	addCmd.Flags().StringArrayVar(&addSteps, "step", nil, "step as role:content, repeatable (required)")
	addCmd.Flags().StringVar(&addID, "id", "", "explicit joke ID (default: generated)")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("step")
}

func runAdd(cmd *cobra.Command, args []string) error {
	category, err := types.ParseCategory(addCategory)
	if err != nil {
		return fmt.Errorf("invalid category %q: %w", addCategory, err)
	}

	joke := &types.Joke{
		JokeID:   addID,
		Category: category,
	}
	for i, spec := range addSteps {
		step, err := parseStepSpec(spec, i+1)
		if err != nil {
			return err
		}
		joke.Steps = append(joke.Steps, step)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Add(joke); err != nil {
		return fmt.Errorf("create joke: %w", err)
	}

	if flagJSON {
		return printJoke(joke)
	}
	fmt.Printf("Created joke: %s\n", joke.JokeID)
	return nil
}
