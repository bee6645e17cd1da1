package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Upload the collection to S3 and print a download link",
		Long:  "Writes the collection as JSON to the configured S3 bucket. The printed link expires after 15 minutes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer closeApp(a)

			if a.Exporter == nil {
				return errors.New("export needs an S3 bucket: set S3_BUCKET_NAME or s3_bucket in the config file")
			}

			result, err := a.Exporter.Export(ctx, opts.collectionID())
			if err != nil {
				return fmt.Errorf("failed to export recipes: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d recipe(s) to %s\n", result.Recipes, result.Key)
			fmt.Fprintln(out, result.URL)
			return nil
		},
	}
}
