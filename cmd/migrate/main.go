package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/config"
	"movie-reviews-api/internal/database"
)

type action func(*database.MigrationManager) error

var actions = map[string]action{
	"up":       (*database.MigrationManager).RunMigrations,
	"down":     (*database.MigrationManager).RollbackMigration,
	"status":   printStatus,
	"validate": validateSchema,
}

func main() {
	var (
		dbPath  = flag.String("db", "", "SQLite file (defaults to DB_CONNECTION_STRING)")
		name    = flag.String("action", "up", "Migration action: up, down, status, validate")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	run, ok := actions[*name]
	if !ok {
		logrus.WithField("action", *name).Fatal("Unknown action. Use: up, down, status, validate")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := config.SetupLogging(cfg)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	sqliteConfig := cfg.Store.SQLite
	if *dbPath != "" {
		sqliteConfig.Path = *dbPath
	}
	if sqliteConfig.Path, err = filepath.Abs(sqliteConfig.Path); err != nil {
		logger.WithError(err).Fatal("Failed to resolve database path")
	}
	// migrations run only when asked for
	sqliteConfig.AutoMigrate = false

	logger.WithFields(logrus.Fields{
		"db_path": sqliteConfig.Path,
		"action":  *name,
	}).Info("Starting migration tool")

	cm := database.NewConnectionManager(sqliteConfig, logger)
	if err := cm.Connect(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	err = run(cm.GetMigrationManager())
	cm.Close()
	if err != nil {
		logger.WithError(err).Fatalf("Migration %s failed", *name)
	}
	logger.Info("Migration tool completed successfully")
}

func printStatus(mm *database.MigrationManager) error {
	status, err := mm.GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	tables, err := mm.TableStats()
	if err != nil {
		return err
	}

	fmt.Printf("Schema version %d (applied: %t, dirty: %t)\n\n", status.Version, status.Applied, status.Dirty)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tPRESENT\tROWS")
	for _, t := range tables {
		rows := "-"
		if t.Exists {
			rows = fmt.Sprint(t.Rows)
		}
		fmt.Fprintf(w, "%s\t%t\t%s\n", t.Name, t.Exists, rows)
	}
	return w.Flush()
}

func validateSchema(mm *database.MigrationManager) error {
	if err := mm.ValidateSchema(); err != nil {
		return err
	}
	fmt.Println("Catalog schema is complete")
	return nil
}
