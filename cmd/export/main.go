// Command export renders the translated book (or part of it) to PDF:
// chapter and section headings plus paragraph tables with ordinals,
// optionally the original text, and the translation under a named prompt.
//
// Flags:
//
//	-prompt       prompt name whose translations to export (required)
//	-chapter      restrict to one chapter position
//	-section      restrict to one section position (requires -chapter)
//	-no-original  omit the original text column
//	-output       output file path (default: generated name in export.output_dir)
//	-config       path to config YAML (overrides CONFIG_PATH)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/chapter"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/paragraph"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/section"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/translation"
	"github.com/heartmarshall/booktrans/internal/app"
	"github.com/heartmarshall/booktrans/internal/app/exporter"
	"github.com/heartmarshall/booktrans/internal/config"
)

func main() {
	promptName := flag.String("prompt", "", "prompt name whose translations to export")
	chapterPos := flag.Int("chapter", 0, "restrict to one chapter position")
	sectionPos := flag.Int("section", 0, "restrict to one section position (requires -chapter)")
	noOriginal := flag.Bool("no-original", false, "omit the original text column")
	output := flag.String("output", "", "output file path")
	configPath := flag.String("config", "", "path to config YAML")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting", slog.String("version", app.BuildVersion()))

	if *promptName == "" {
		logger.Error("no prompt given: pass -prompt")
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

	scope := exporter.Scope{Chapter: *chapterPos, Section: *sectionPos}
	showOriginal := !*noOriginal

	exp := exporter.New(logger, chapter.New(db), section.New(db), paragraph.New(db), translation.New(db))

	doc, err := exp.Build(ctx, exporter.Options{
		PromptName:   *promptName,
		Scope:        scope,
		ShowOriginal: showOriginal,
	})
	if err != nil {
		logger.Error("assemble export", slog.String("error", err.Error()))
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
			logger.Error("create output dir", slog.String("error", err.Error()))
			os.Exit(1)
		}
		outPath = filepath.Join(cfg.Export.OutputDir, exporter.Filename(scope, *promptName, showOriginal))
	}

	renderer := exporter.NewPDFRenderer(logger, cfg.Export)
	if err := renderer.Render(doc, outPath); err != nil {
		logger.Error("render pdf", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("export written", slog.String("path", outPath))
}
