// Command translate runs per-paragraph completion calls for a named prompt
// over the store, or part of it. Already-covered (paragraph, prompt) pairs
// are skipped, so interrupted runs can be resumed.
//
// Flags:
//
//	-prompt   prompt name from the config catalog (required)
//	-chapter  restrict to one chapter position
//	-section  restrict to one section position (requires -chapter)
//	-start    first chapter position on whole-book runs
//	-end      last chapter position on whole-book runs
//	-force    drop and re-translate already-covered paragraphs
//	-dry-run  report what would be translated; no API calls, no writes
//	-config   path to config YAML (overrides CONFIG_PATH)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/chapter"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/paragraph"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/section"
	"github.com/heartmarshall/booktrans/internal/adapter/sqlite/translation"
	"github.com/heartmarshall/booktrans/internal/app"
	"github.com/heartmarshall/booktrans/internal/app/translator"
	"github.com/heartmarshall/booktrans/internal/config"
)

func main() {
	promptName := flag.String("prompt", "", "prompt name from the config catalog")
	chapterPos := flag.Int("chapter", 0, "restrict to one chapter position")
	sectionPos := flag.Int("section", 0, "restrict to one section position (requires -chapter)")
	startPos := flag.Int("start", 0, "first chapter position on whole-book runs")
	endPos := flag.Int("end", 0, "last chapter position on whole-book runs")
	force := flag.Bool("force", false, "drop and re-translate already-covered paragraphs")
	dryRun := flag.Bool("dry-run", false, "report what would be translated without calling the API")
	configPath := flag.String("config", "", "path to config YAML")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting", slog.String("version", app.BuildVersion()))

	if *promptName == "" {
		logger.Error("no prompt given: pass -prompt", slog.String("available", strings.Join(cfg.PromptNames(), ", ")))
		os.Exit(1)
	}
	prompt, ok := cfg.Prompt(*promptName)
	if !ok {
		logger.Error("unknown prompt",
			slog.String("prompt", *promptName),
			slog.String("available", strings.Join(cfg.PromptNames(), ", ")),
		)
		os.Exit(1)
	}

	if !*dryRun && cfg.LLM.APIKey == "" {
		logger.Error("no API key configured: set llm.api_key or LLM_API_KEY")
		os.Exit(1)
	}

	// Long runs stop cleanly on Ctrl-C; completed paragraphs stay stored.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	tr := translator.New(
		logger,
		translator.NewAnthropicCompleter(cfg.LLM.APIKey),
		chapter.New(db),
		section.New(db),
		paragraph.New(db),
		translation.New(db),
		cfg.LLM,
		cfg.Translator,
	)

	result, err := tr.Run(ctx, translator.Options{
		PromptName: *promptName,
		Prompt:     prompt,
		Scope: translator.Scope{
			Chapter:      *chapterPos,
			Section:      *sectionPos,
			StartChapter: *startPos,
			EndChapter:   *endPos,
		},
		Force:  *force,
		DryRun: *dryRun,
	})
	if err != nil {
		logger.Error("translation run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if result.Failed > 0 {
		logger.Warn("run finished with failures", slog.Int("failed", result.Failed))
		os.Exit(1)
	}
}
