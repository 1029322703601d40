// Output and parsing helpers shared by the joke management commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jokebox/jokebox/pkg/types"
)

// printJoke writes one joke as JSON or human-readable text depending on the
// --json flag.
func printJoke(joke *types.Joke) error {
	if flagJSON {
		out, err := json.MarshalIndent(joke, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal joke: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	rating := "unrated"
	if joke.Rating != nil {
		rating = fmt.Sprintf("%.1f", *joke.Rating)
	}
	fmt.Printf("%s  [%s]  rating: %s\n", joke.JokeID, joke.Category, rating)
	for _, step := range joke.Steps {
		fmt.Printf("  %d. (%s) %s\n", step.Position, step.Role, step.Content)
	}
	return nil
}

// printJokes writes a list of jokes.
func printJokes(jokes []*types.Joke) error {
	if flagJSON {
		out, err := json.MarshalIndent(jokes, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal jokes: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for i, joke := range jokes {
		if i > 0 {
			fmt.Println()
		}
		if err := printJoke(joke); err != nil {
			return err
		}
	}
	return nil
}

// parseStepSpec parses a --step flag value of the form "role:content".
func parseStepSpec(spec string, position int) (types.Step, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return types.Step{}, fmt.Errorf("step %q must be of the form role:content", spec)
	}

	role, err := types.ParseRole(parts[0])
	if err != nil {
		return types.Step{}, fmt.Errorf("invalid role %q: %w", parts[0], err)
	}

	return types.Step{
		Role:     role,
		Position: position,
		Content:  parts[1],
	}, nil
}
