package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/masterchef/backend/internal/model"
	"github.com/pageza/masterchef/backend/internal/render"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [search terms]",
		Short: "List saved recipes, newest first",
		Long:  "Lists the collection. Search terms filter by recipe name and ingredients.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer closeApp(a)

			var recipes []*model.Recipe
			if query := strings.Join(args, " "); query != "" {
				recipes, err = a.Recipes.SearchRecipes(ctx, opts.collectionID(), query)
			} else {
				recipes, err = a.Recipes.ListRecipes(ctx, opts.collectionID())
			}
			if err != nil {
				return fmt.Errorf("failed to list recipes: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.RecipeList(recipes))
			return nil
		},
	}
}
