package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/pageza/masterchef/backend/config"
	"github.com/pageza/masterchef/backend/internal/app"
	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/internal/service"
)

const (
	defaultCollection  = "demo"
	defaultConcurrency = 3 // Number of extractions running at once
)

// defaultInputs seed a demo collection when no file is given
var defaultInputs = []string{
	"chicken thighs, lemon, garlic, rosemary",
	"chickpeas, spinach, coconut milk, curry paste",
	"eggs, flour, milk, butter",
	"salmon, soy sauce, ginger, rice",
	"tomatoes, basil, mozzarella, olive oil",
	"black beans, corn, tortillas, lime",
	"oats, bananas, peanut butter, honey",
	"beef mince, onion, carrots, potatoes",
}

// seedFile is the YAML layout accepted by -file
type seedFile struct {
	Collection string   `yaml:"collection"`
	Inputs     []string `yaml:"inputs"`
}

// SeedResult counts what a seeding run did
type SeedResult struct {
	Created    int
	Duplicates int
	Failed     int
}

func loadSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(f.Inputs) == 0 {
		return nil, errors.New("seed file has no inputs")
	}
	return &f, nil
}

// seed extracts every input and saves it to the collection. Each input gets its
// own extractor so the per-collection single-flight guard does not serialise them.
// Failed inputs are logged and counted, not fatal.
func seed(ctx context.Context, gen service.ContentGenerator, recipes service.IRecipeService, collectionID string, inputs []string, concurrency int, timeout time.Duration) (SeedResult, error) {
	var (
		mu     sync.Mutex
		result SeedResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, input := range inputs {
		g.Go(func() error {
			extractor := service.NewExtractorService(gen, nil, timeout)
			recipe, err := extractor.Extract(ctx, collectionID, input)
			if err != nil {
				logger.Warn("failed to extract seed recipe", zap.String("input", input), zap.Error(err))
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return nil
			}

			saved, created, err := recipes.SaveRecipe(ctx, collectionID, recipe)
			if err != nil {
				return fmt.Errorf("failed to save %q: %w", recipe.Name, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if created {
				result.Created++
				logger.Info("seeded recipe", zap.String("id", saved.ID), zap.String("name", saved.Name))
			} else {
				result.Duplicates++
			}
			return nil
		})
	}

	err := g.Wait()
	return result, err
}

func main() {
	collection := flag.String("collection", "", "collection to seed (default: the file's collection or \"demo\")")
	file := flag.String("file", "", "YAML file with a collection name and a list of URLs or ingredient queries")
	concurrency := flag.Int("concurrency", defaultConcurrency, "number of extractions to run at once")
	flag.Parse()

	if err := logger.Init(config.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	inputs := defaultInputs
	collectionID := defaultCollection
	if *file != "" {
		f, err := loadSeedFile(*file)
		if err != nil {
			logger.L().Fatal("invalid seed file", zap.Error(err))
		}
		inputs = f.Inputs
		if f.Collection != "" {
			collectionID = f.Collection
		}
	}
	if *collection != "" {
		collectionID = *collection
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, app.Options{SkipRedis: true})
	if err != nil {
		logger.L().Fatal("failed to start", zap.Error(err))
	}
	defer a.Close()

	result, err := seed(ctx, a.Generator, a.Recipes, collectionID, inputs, *concurrency, cfg.ExtractTimeout)
	if err != nil {
		logger.L().Fatal("seeding failed", zap.Error(err))
	}

	fmt.Printf("Seeded collection %q: %d created, %d already present, %d failed\n",
		collectionID, result.Created, result.Duplicates, result.Failed)
}
