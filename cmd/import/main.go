// Command import loads a structured book edition (JSON) into the local
// store: chapters, sections, and cleaned paragraphs.
//
// Flags:
//
//	-book    path to the edition JSON file (falls back to import.book_path)
//	-config  path to config YAML (overrides CONFIG_PATH)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/chapter"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/paragraph"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/section"
	"github.com/heartmarshall/booktrans/internal/app"
	"github.com/heartmarshall/booktrans/internal/app/importer"
	"github.com/heartmarshall/booktrans/internal/config"
)

func main() {
	bookPath := flag.String("book", "", "path to the edition JSON file")
	configPath := flag.String("config", "", "path to config YAML")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting", slog.String("version", app.BuildVersion()))

	path := *bookPath
	if path == "" {
		path = cfg.Import.BookPath
	}
	if path == "" {
		logger.Error("no book file given: pass -book or set import.book_path")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	f, err := os.Open(path)
	if err != nil {
		logger.Error("open book file", slog.String("path", path), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	imp := importer.New(
		logger,
		sqlite.NewTxManager(db),
		chapter.New(db),
		section.New(db),
		paragraph.New(db),
	)

	if _, err := imp.Run(ctx, f); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
