package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer closeApp(a)

			deleted, err := a.Recipes.DeleteRecipe(ctx, opts.collectionID(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete recipe: %w", err)
			}

			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No recipe %s in this collection.\n", args[0])
			}
			return nil
		},
	}
}
