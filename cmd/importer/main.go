package main

import (
	"context"
	"flag"
	"log"
	"os"

	"russo-backend/internal/config"
	"russo-backend/internal/db"
	"russo-backend/internal/importer"
	productrepo "russo-backend/internal/repository/product"
)

func main() {
	filePath := flag.String("file", "", "path to the catalog CSV export")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if *filePath == "" {
		logger.Fatal("usage: importer -file <catalog.csv>")
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	repo := productrepo.NewPostgres(pool, logger)
	imp := importer.New(f, repo, cfg.AssetBaseURL)

	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d products: %v", count, err)
	}
	logger.Printf("imported %d products", count)
}
