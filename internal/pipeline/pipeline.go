// Package pipeline drives the two passes of the engine: per-document ingest
// of new statements into extract CSVs, and the full-ledger build that merges,
// enriches and writes the master CSV.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finleaf/statement-ledger/internal/config"
	"github.com/finleaf/statement-ledger/internal/enrich"
	"github.com/finleaf/statement-ledger/internal/extractor"
	"github.com/finleaf/statement-ledger/internal/ledger"
	"github.com/finleaf/statement-ledger/internal/models"
	"github.com/finleaf/statement-ledger/internal/parser"
	"github.com/finleaf/statement-ledger/internal/store"
	"github.com/finleaf/statement-ledger/internal/writer"
)

// Pipeline owns the durable state of the engine: the processed-document
// registry, the per-account balance store, and optionally an enricher.
type Pipeline struct {
	cfg      config.Config
	log      zerolog.Logger
	registry *store.Registry
	balances *store.BalanceStore
	enricher *enrich.Enricher
	writer   writer.CSVWriter
}

// New opens the pipeline's stores under cfg.DataDir. A nil classifier
// disables the enrichment pass; everything else still runs.
func New(cfg config.Config, log zerolog.Logger, classifier enrich.Classifier) (*Pipeline, error) {
	registry, err := store.OpenRegistry(filepath.Join(cfg.DataDir, "processed_files.json"))
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	balances, err := store.OpenBalances(filepath.Join(cfg.DataDir, "balances.json"))
	if err != nil {
		return nil, fmt.Errorf("opening balance store: %w", err)
	}

	p := &Pipeline{cfg: cfg, log: log, registry: registry, balances: balances}
	if classifier != nil {
		cache := enrich.OpenCache(filepath.Join(cfg.DataDir, "category_cache.json"), log)
		limiter := enrich.NewRateLimiter(cfg.RateLimitInterval)
		p.enricher = enrich.New(cache, limiter, classifier, log)
	}
	return p, nil
}

// Run ingests every new statement from the input directory and rebuilds the
// master ledger from all extract CSVs. A document that fails is logged and
// skipped without being registered, so the next run retries it; one bad
// statement never aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()

	docs, err := p.listStatements()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.cfg.ExtractDir, 0o755); err != nil {
		return fmt.Errorf("creating extract directory: %w", err)
	}

	ingested, failed, skipped := 0, 0, 0
	for _, path := range docs {
		name := filepath.Base(path)
		if p.registry.Processed(name) {
			skipped++
			continue
		}
		if err := p.ProcessDocument(path); err != nil {
			log.Error().Err(err).Str("file", name).Msg("statement failed, will retry next run")
			failed++
			continue
		}
		log.Info().Str("file", name).Msg("statement ingested")
		ingested++
	}
	log.Info().
		Int("ingested", ingested).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("ingest pass finished")

	return p.BuildLedger(ctx, log)
}

// ProcessDocument turns one statement into an extract CSV: extract raw
// content, parse it with the detected institution's variant, reconcile
// balances, persist the account's latest balance, and register the document.
func (p *Pipeline) ProcessDocument(path string) error {
	name := filepath.Base(path)

	info, err := ParseStatementFile(path, "")
	if err != nil {
		return err
	}
	if len(info.Transactions) == 0 {
		return fmt.Errorf("no transactions found in %s", name)
	}

	for i := range info.Transactions {
		info.Transactions[i].SourceFile = name
	}

	// Balances come from the document alone. A statement that states no
	// closing balance keeps all balance_after values null; the snapshot in
	// the balance store belongs after a previous statement's last booking
	// and would place every reconstructed balance wrong.
	ledger.ReconcileBalances(info.Transactions, info.ClosingBalance)

	if info.ClosingBalance.Valid && info.Account.IBAN != models.UnknownAccount {
		if err := p.balances.Update(info.Account.IBAN, info.ClosingBalance.Decimal); err != nil {
			return fmt.Errorf("updating balance store: %w", err)
		}
	}

	extractPath := filepath.Join(p.cfg.ExtractDir, extractName(name))
	if err := p.writer.WriteToFile(extractPath, info.Transactions); err != nil {
		return err
	}

	return p.registry.MarkProcessed(name)
}

// BuildLedger merges every extract CSV into the master ledger, runs the
// enrichment and periodicity passes, and writes the output file.
func (p *Pipeline) BuildLedger(ctx context.Context, log zerolog.Logger) error {
	paths, err := filepath.Glob(filepath.Join(p.cfg.ExtractDir, "*.csv"))
	if err != nil {
		return fmt.Errorf("listing extract files: %w", err)
	}
	sort.Strings(paths)

	var docs [][]models.Transaction
	for _, path := range paths {
		txns, err := writer.ReadFromFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, txns)
	}

	txns := ledger.Assemble(docs...)
	if len(txns) == 0 {
		log.Warn().Msg("no transactions to assemble, ledger not written")
		return nil
	}

	if p.enricher != nil {
		if err := p.enricher.Enrich(ctx, txns); err != nil {
			return err
		}
	}
	ledger.DetectFrequency(txns)

	if err := p.writer.WriteToFile(p.cfg.LedgerFile, txns); err != nil {
		return err
	}
	log.Info().
		Int("documents", len(docs)).
		Int("transactions", len(txns)).
		Str("output", p.cfg.LedgerFile).
		Msg("ledger written")
	return nil
}

// ParseStatementFile picks the extraction path by file type: tabular exports
// go through the row parser, everything else through PDF text extraction. An
// empty bank triggers institution auto-detection.
func ParseStatementFile(path string, bank models.BankType) (*models.StatementInfo, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") || bank == models.BankBarclays {
		rows, err := extractor.ReadRows(path)
		if err != nil {
			return nil, err
		}
		info, err := parser.NewBarclays().ParseRows(rows)
		if err != nil {
			return nil, err
		}
		info.Bank = models.BankBarclays
		return info, nil
	}

	lines, err := extractor.ExtractLines(path)
	if err != nil {
		return nil, err
	}
	if bank == "" {
		bank, err = parser.AutoDetect(lines)
		if err != nil {
			return nil, err
		}
	}
	if bank == models.BankBarclays {
		return nil, fmt.Errorf("barclays statements must be tabular exports, got %s", filepath.Base(path))
	}

	v, err := parser.New(bank)
	if err != nil {
		return nil, err
	}
	info, err := parser.Parse(v, lines)
	if err != nil {
		return nil, err
	}
	info.Bank = bank
	return info, nil
}

// listStatements returns the ingestable files of the input directory in
// name order. A missing input directory is an empty run, not an error.
func (p *Pipeline) listStatements() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.InputDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing input directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".csv":
			paths = append(paths, filepath.Join(p.cfg.InputDir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// extractName maps a statement file name to its extract CSV name.
func extractName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".csv"
}
