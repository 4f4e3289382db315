package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"titrate/adapters/archive"
	"titrate/app"
	"titrate/domain/titration"
	"titrate/internal"
	"titrate/internal/config"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <sqlite3|postgres> <database_url> [scenario_dir]")
	}

	driver := os.Args[1]
	databaseURL := os.Args[2]

	log.Printf("Migrating run archive schema on %s database", driver)

	ctx := context.Background()
	db, err := archive.Open(ctx, driver, databaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if len(os.Args) < 4 {
		log.Printf("Schema is up to date")
		return
	}
	scenarioDir := os.Args[3]

	files, err := findScenarioFiles(scenarioDir)
	if err != nil {
		log.Fatalf("Failed to find scenario files: %v", err)
	}
	log.Printf("Found %d scenario files to import", len(files))

	logger := internal.NewDefaultLogger()
	service := app.NewCurveService(4, logger, archive.NewRunRepository(db))

	imported := 0
	skipped := 0

	for _, file := range files {
		scenario, err := config.LoadScenarioFile(file, titration.DefaultScenario())
		if err != nil {
			log.Printf("Failed to load scenario from %s: %v", file, err)
			skipped++
			continue
		}

		run, err := service.Run(ctx, scenario)
		if err != nil {
			log.Printf("Failed to compute %s: %v", filepath.Base(file), err)
			skipped++
			continue
		}

		imported++
		log.Printf("Archived run %s from %s", run.ID, filepath.Base(file))
	}

	log.Printf("Import complete: %d archived, %d skipped", imported, skipped)
}

func findScenarioFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
