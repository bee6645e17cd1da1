package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/masterchef/backend/config"
	"github.com/pageza/masterchef/backend/internal/app"
	"github.com/pageza/masterchef/backend/internal/logger"
)

// defaultCollection is used when neither --collection nor MASTERCHEF_COLLECTION is set
const defaultCollection = "local"

// newApp builds the services; tests replace it to avoid calling Gemini
var newApp = func(ctx context.Context, cfg *config.Config) (*app.App, error) {
	// Drafts only live for one command, so Redis is not needed
	return app.New(ctx, cfg, app.Options{SkipRedis: true})
}

type rootOptions struct {
	cfgPath    string
	collection string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "masterchef",
		Short:        "Extract recipes from any web page",
		Long:         "Masterchef turns a recipe URL or a list of ingredients into a clean recipe and keeps a personal collection.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(opts.debug)
		},
	}

	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "path to a YAML config file (default: CONFIG_FILE env var)")
	root.PersistentFlags().StringVar(&opts.collection, "collection", "", "collection to work on (default: MASTERCHEF_COLLECTION env var or \"local\")")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newExtractCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func setupLogger(debug bool) error {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Set(l)
	return nil
}

// collectionID resolves the collection.
// Priority: --collection flag > MASTERCHEF_COLLECTION env var > "local"
func (o *rootOptions) collectionID() string {
	if o.collection != "" {
		return o.collection
	}
	if env := os.Getenv("MASTERCHEF_COLLECTION"); env != "" {
		return env
	}
	return defaultCollection
}

// openApp loads the configuration and connects the services.
// The caller must Close the returned App.
func (o *rootOptions) openApp(ctx context.Context) (*app.App, error) {
	if o.cfgPath != "" {
		if err := os.Setenv("CONFIG_FILE", o.cfgPath); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(ctx, cfg)
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		logger.Warn("error closing connections", zap.Error(err))
	}
}
