package ledger

import (
	"sort"

	"github.com/finleaf/statement-ledger/internal/models"
)

// frequency bands for the mean day-gap between consecutive bookings.
var frequencyBands = []struct {
	min, max float64
	label    string
}{
	{25, 35, "Monthly"},
	{80, 100, "Quarterly"},
	{360, 380, "Yearly"},
}

// DetectFrequency infers a contract frequency per (payee, subcategory)
// group. The pass owns the whole column: every label is cleared first, so
// groups with fewer than 3 bookings end up unlabeled. For larger groups the
// mean gap between consecutive booking dates picks the band, and the
// resulting label (possibly empty) is applied uniformly to every member of
// the group.
func DetectFrequency(txns []models.Transaction) {
	type groupKey struct{ payee, subcategory string }
	groups := map[groupKey][]int{}

	for i, txn := range txns {
		txns[i].ContractFrequency = ""
		key := groupKey{txn.Payee, txn.Subcategory}
		groups[key] = append(groups[key], i)
	}

	for _, members := range groups {
		if len(members) < 3 {
			continue
		}
		sort.Slice(members, func(a, b int) bool {
			return txns[members[a]].BookingDate.Before(txns[members[b]].BookingDate)
		})

		var totalDays float64
		for i := 1; i < len(members); i++ {
			gap := txns[members[i]].BookingDate.Sub(txns[members[i-1]].BookingDate)
			totalDays += gap.Hours() / 24
		}
		mean := totalDays / float64(len(members)-1)

		label := ""
		for _, band := range frequencyBands {
			if mean >= band.min && mean <= band.max {
				label = band.label
				break
			}
		}
		for _, idx := range members {
			txns[idx].ContractFrequency = label
		}
	}
}
