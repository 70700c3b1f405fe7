package main

import (
	"context"
	"flag"
	"os"

	"learnhub/cache"
	"learnhub/config"
	"learnhub/database"
	"learnhub/logger"
	"learnhub/services/catalog"
)

// Imports or refreshes catalog courses from a CSV keyed on legacyId.
//
//	go run ./scripts -file courses.csv
func main() {
	file := flag.String("file", "courses.csv", "catalog CSV to import")
	flag.Parse()

	config.LoadConfig()
	log, err := logger.New(config.AppConfig.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.ConnectDb(log)
	if err != nil {
		log.Fatal("Database connection failed", "error", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open CSV file", "file", *file, "error", err)
	}
	defer f.Close()

	rows, err := catalog.ParseCourseCSV(f)
	if err != nil {
		log.Fatal("Failed to read CSV", "error", err)
	}
	log.Info("Total rows to import", "count", len(rows))

	// share the API's cache so its catalog entries are invalidated
	var catalogCache cache.Cache = cache.Noop{}
	if cfg := config.AppConfig; cfg.RedisAddr != "" {
		r, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.CatalogCacheTTL)
		if err != nil {
			log.Warn("Redis unavailable, cached catalog will expire on its own", "error", err)
		} else {
			defer r.Close()
			catalogCache = r
		}
	}

	res, err := catalog.NewService(db, catalogCache, log).Import(context.Background(), rows)
	if err != nil {
		log.Fatal("Import aborted", "error", err)
	}
	for _, reason := range res.Skipped {
		log.Warn("Skipped row", "reason", reason)
	}
	log.Info("Import complete", "inserted", res.Inserted, "updated", res.Updated, "skipped", len(res.Skipped))
}
