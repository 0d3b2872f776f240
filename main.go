package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finleaf/statement-ledger/internal/api"
	"github.com/finleaf/statement-ledger/internal/config"
	"github.com/finleaf/statement-ledger/internal/enrich"
	"github.com/finleaf/statement-ledger/internal/logging"
	"github.com/finleaf/statement-ledger/internal/pipeline"
)

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of the batch pipeline")
	inputFlag := flag.String("input", "", "Statement input directory (overrides LEDGER_INPUT_DIR)")
	outputFlag := flag.String("output", "", "Master ledger CSV path (overrides LEDGER_OUTPUT_FILE)")
	noEnrichFlag := flag.Bool("no-enrich", false, "Skip the category enrichment pass")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Ledger Engine

Ingests bank statements (DKB, N26, Deutsche Bank PDFs and Barclays tabular
exports) into a categorized master ledger CSV with reconstructed running
balances.

Usage:
  statement-ledger [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Ingest all new statements and rebuild the ledger
  statement-ledger

  # Rebuild without calling the classifier
  statement-ledger --no-enrich

  # Serve the conversion API on $PORT
  statement-ledger --serve
`)
	}
	flag.Parse()

	_ = config.LoadDotEnv(".env")
	cfg := config.Load()
	if *inputFlag != "" {
		cfg.InputDir = *inputFlag
	}
	if *outputFlag != "" {
		cfg.LedgerFile = *outputFlag
	}

	log := logging.New(cfg.LogLevel)

	if *serveFlag {
		app := api.NewApp()
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info().Str("addr", addr).Msg("serving conversion API")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	ctx := context.Background()

	var classifier enrich.Classifier
	if *noEnrichFlag {
		log.Info().Msg("enrichment disabled by flag")
	} else if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		log.Warn().Msg("no classifier API key configured, skipping enrichment")
	} else {
		rules, err := config.LoadRules(cfg.RulesFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading category rules")
		}
		classifier, err = enrich.NewGeminiClassifier(ctx, cfg.GeminiModel, rules.PromptLines())
		if err != nil {
			log.Fatal().Err(err).Msg("creating classifier")
		}
	}

	p, err := pipeline.New(cfg, log, classifier)
	if err != nil {
		log.Fatal().Err(err).Msg("opening pipeline stores")
	}
	if err := p.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("pipeline run failed")
	}
}
