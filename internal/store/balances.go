package store

import (
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceStore keeps the last known balance per account across runs.
// Last write wins per account; every update is mirrored into a standing
// backup copy next to the main file.
type BalanceStore struct {
	path     string
	balances map[string]decimal.Decimal
}

// OpenBalances loads the balance file, starting empty if it does not exist.
func OpenBalances(path string) (*BalanceStore, error) {
	s := &BalanceStore{path: path, balances: map[string]decimal.Decimal{}}
	if err := LoadJSON(path, &s.balances); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the last known balance for an account.
func (s *BalanceStore) Get(account string) (decimal.Decimal, bool) {
	d, ok := s.balances[account]
	return d, ok
}

// Update records the latest balance for an account and persists both the
// main file and its mirror.
func (s *BalanceStore) Update(account string, balance decimal.Decimal) error {
	s.balances[account] = balance
	if err := SaveJSON(s.path, s.balances); err != nil {
		return err
	}
	return SaveJSON(mirrorPath(s.path), s.balances)
}

// mirrorPath derives the standing backup name: "balances.json" →
// "balances_backup.json".
func mirrorPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_backup" + ext
}
