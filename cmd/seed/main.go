package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/adapters/storage"
	"movie-reviews-api/internal/config"
	"movie-reviews-api/internal/seed"
	"movie-reviews-api/pkg/server"
)

func main() {
	var (
		jsonPath = flag.String("json", "./data/seed", "Seed JSON directory path")
		action   = flag.String("action", "load", "Action: check, load, validate")
		dryRun   = flag.Bool("dry-run", false, "Validate the files without writing")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := config.SetupLogging(cfg)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	files, err := storage.NewLocalFileStorage(*jsonPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open seed directory")
	}
	defer files.Close()
	absJSONPath := files.BasePath()

	logger.WithFields(logrus.Fields{
		"json_path": absJSONPath,
		"action":    *action,
		"backend":   cfg.Store.Backend,
		"dry_run":   *dryRun,
	}).Info("Starting seed tool")

	ctx := context.Background()
	if *action == "check" {
		checkFiles(ctx, seed.NewLoader(nil, files, logger), files)
		return
	}

	container, err := server.NewContainer(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	loader := seed.NewLoader(container.Repositories, files, logger)

	switch *action {
	case "load":
		if err := runLoad(ctx, loader, *dryRun); err != nil {
			logger.WithError(err).Error("Seed failed")
			container.Close()
			os.Exit(1)
		}
	case "validate":
		if err := loader.Validate(ctx); err != nil {
			logger.WithError(err).Error("Validation failed")
			container.Close()
			os.Exit(1)
		}
		fmt.Println("Seed validation passed")
	default:
		logger.WithField("action", *action).Error("Unknown action. Use: check, load, validate")
		container.Close()
		os.Exit(2)
	}

	logger.Info("Seed tool completed successfully")
}

func checkFiles(ctx context.Context, loader *seed.Loader, files *storage.LocalFileStorage) {
	ok, names := loader.CheckFilesExist(ctx)
	if !ok {
		fmt.Printf("No seed files found in %s\n", files.BasePath())
		fmt.Printf("Expected files: %s, %s, %s\n", seed.MoviesFile, seed.CastFile, seed.ReviewsFile)
		return
	}

	fmt.Printf("Found %d seed files:\n", len(names))
	for _, name := range names {
		if size, err := files.GetSize(ctx, name); err == nil {
			fmt.Printf("  %s (%d bytes)\n", name, size)
		}
	}
}

func runLoad(ctx context.Context, loader *seed.Loader, dryRun bool) error {
	result, err := loader.Load(ctx, dryRun)
	if err != nil {
		return err
	}

	fmt.Printf("Movies loaded:  %d\n", result.MoviesProcessed)
	fmt.Printf("Cast loaded:    %d\n", result.CastProcessed)
	fmt.Printf("Reviews loaded: %d\n", result.ReviewsProcessed)

	for _, warning := range result.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
	for _, msg := range result.Errors {
		fmt.Printf("  error: %s\n", msg)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d records were rejected", len(result.Errors))
	}

	if dryRun {
		return nil
	}
	return loader.Validate(ctx)
}
