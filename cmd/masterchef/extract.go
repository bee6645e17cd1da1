package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/masterchef/backend/internal/api"
	"github.com/pageza/masterchef/backend/internal/render"
	"github.com/pageza/masterchef/backend/internal/service"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "extract <url-or-ingredients>",
		Short: "Extract a recipe from a URL or find one for a list of ingredients",
		Long: "Sends the URL or ingredient list to Gemini with Google Search grounding and prints the recipe.\n" +
			"With --save the recipe is added to the collection unless one with the same name is already there.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer closeApp(a)

			collectionID := opts.collectionID()
			recipe, err := a.Extractor.Extract(ctx, collectionID, strings.Join(args, " "))
			if errors.Is(err, service.ErrEmptyInput) {
				return err
			}
			if err != nil {
				return fmt.Errorf("%s: %w", api.ExtractFailedMessage, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.RecipeCard(recipe))

			if !save {
				fmt.Fprintln(out, "Run again with --save to keep this recipe.")
				return nil
			}

			saved, created, err := a.Recipes.SaveRecipe(ctx, collectionID, recipe)
			if err != nil {
				return fmt.Errorf("failed to save recipe: %w", err)
			}
			if created {
				fmt.Fprintf(out, "Saved %q as %s.\n", saved.Name, saved.ID)
			} else {
				fmt.Fprintf(out, "%q is already in your collection as %s.\n", saved.Name, saved.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the recipe to the collection")
	return cmd
}
