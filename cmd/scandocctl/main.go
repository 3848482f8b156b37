// scandocctl is a local inspection tool for a scandoc store: it wires
// the repositories the way an embedding application would and exposes a
// few read-only commands.
//
//	scandocctl stats
//	scandocctl list
//	scandocctl search <query>
//	scandocctl folders
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"scandoc/internal/config"
	"scandoc/internal/repository/sqlite"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	repoConfig := &sqlite.RepositoryConfig{
		DB:     db,
		Logger: logger,
	}
	docRepo := sqlite.NewDocumentRepository(repoConfig)
	folderRepo := sqlite.NewFolderRepository(repoConfig)
	statsRepo := sqlite.NewStatsRepository(repoConfig)

	switch os.Args[1] {
	case "stats":
		stats, err := statsRepo.Stats(ctx)
		if err != nil {
			log.Fatalf("Failed to read stats: %v", err)
		}
		fmt.Printf("documents: %d\nfolders: %d\nsettings: %d\n",
			stats.Documents, stats.Folders, stats.Settings)

	case "list":
		docs, err := docRepo.GetAll(ctx)
		if err != nil {
			log.Fatalf("Failed to list documents: %v", err)
		}
		for _, doc := range docs {
			fmt.Printf("%s\t%s\t%d pages\n", doc.ID, doc.Title, doc.PageCount())
		}

	case "search":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		docs, err := docRepo.Search(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		for _, doc := range docs {
			fmt.Printf("%s\t%s\n", doc.ID, doc.Title)
		}

	case "folders":
		folders, err := folderRepo.GetAll(ctx)
		if err != nil {
			log.Fatalf("Failed to list folders: %v", err)
		}
		for _, folder := range folders {
			fmt.Printf("%s\t%s\t%d documents\n", folder.ID, folder.Name, folder.DocumentCount)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: scandocctl stats|list|folders|search <query>")
}
