package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/masterchef/backend/internal/render"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer closeApp(a)

			recipe, err := a.Recipes.GetRecipe(ctx, opts.collectionID(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.RecipeCard(recipe))
			return nil
		},
	}
}
