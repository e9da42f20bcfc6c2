// Package stats aggregates a month of expenses per category for the
// statistics table.
package stats

import (
	"sort"

	"homebook/internal/domain"
)

// CategoryAmount is the spent total for one category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// MonthSummary is the statistics view of one month's expenses.
type MonthSummary struct {
	Total      float64
	ByCategory []CategoryAmount
}

// Summarize totals the expenses per category, sorted by amount
// descending. Ties break on name for a stable order.
func Summarize(expenses []domain.Expense) MonthSummary {
	var summary MonthSummary
	byName := make(map[string]float64)
	for _, e := range expenses {
		summary.Total += e.Amount
		byName[e.Category.Name] += e.Amount
	}

	summary.ByCategory = make([]CategoryAmount, 0, len(byName))
	for name, amount := range byName {
		summary.ByCategory = append(summary.ByCategory, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.Name < b.Name
	})
	return summary
}
