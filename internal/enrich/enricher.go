// Package enrich attaches category classifications to ledger rows via a
// content-addressed persistent cache and a rate-limited external classifier.
package enrich

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finleaf/statement-ledger/internal/models"
)

// Enricher fills the enrichment fields of assembled ledger rows: cache
// first, then one rate-limited external call per unseen text.
type Enricher struct {
	cache      *Cache
	limiter    *RateLimiter
	classifier Classifier
	log        zerolog.Logger
}

func New(cache *Cache, limiter *RateLimiter, classifier Classifier, log zerolog.Logger) *Enricher {
	return &Enricher{cache: cache, limiter: limiter, classifier: classifier, log: log}
}

// Enrich classifies every transaction with a non-empty text. A classifier
// failure degrades to the empty classification and flags the row for manual
// input; it is not retried within the run and not written to the cache. The
// cache is persisted after every new entry, so a crash mid-run loses at most
// the classification in flight.
func (e *Enricher) Enrich(ctx context.Context, txns []models.Transaction) error {
	cacheHits, apiCalls := 0, 0

	for i := range txns {
		text := CleanText(txns[i].Text)
		if text == "" {
			continue
		}

		key := CacheKey(text)
		cls, ok := e.cache.Get(key)
		if ok {
			cacheHits++
		} else {
			e.limiter.Wait()
			apiCalls++

			var err error
			cls, err = e.classifier.Classify(ctx, text)
			if err != nil {
				e.log.Warn().Err(err).Int("idx", txns[i].Idx).Msg("classifier call failed")
				cls = models.Classification{}
				txns[i].NeedsManualInput = true
			} else {
				e.cache.Put(key, cls)
				if err := e.cache.Flush(); err != nil {
					return err
				}
			}
		}

		apply(&txns[i], cls)
	}

	e.log.Info().
		Int("transactions", len(txns)).
		Int("cache_hits", cacheHits).
		Int("api_calls", apiCalls).
		Int("cache_size", e.cache.Len()).
		Msg("enrichment finished")

	return nil
}

func apply(txn *models.Transaction, cls models.Classification) {
	txn.MainCategory = cls.MainCategory
	txn.Subcategory = cls.Subcategory
	txn.Contract = cls.Contract
	txn.ExcludedFromDisposableIncome = cls.ExcludedFromDisposableIncome
	// ContractFrequency is left to the periodicity pass, which works from
	// booking intervals rather than the classifier's guess.
	if cls.MainCategory == "" || cls.Subcategory == "" {
		txn.NeedsManualInput = true
	}
}
