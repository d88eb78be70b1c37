package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// Balance returns total income minus total expense. Zero for an empty ledger.
func Balance(txns []*entity.Transaction) decimal.Decimal {
	return PeriodTotals(txns, nil, nil).NetTotal
}

// PeriodTotals sums income and expense for transactions dated within
// [start, end]. Bounds compare calendar dates and a nil bound is open.
func PeriodTotals(txns []*entity.Transaction, start, end *time.Time) entity.TransactionTotals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range txns {
		if !inRange(t.Date, start, end) {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			expense = expense.Add(t.Amount)
		}
	}

	return entity.TransactionTotals{
		IncomeTotal:  income,
		ExpenseTotal: expense,
		NetTotal:     income.Sub(expense),
	}
}

// ByCategory groups amounts by category regardless of type.
// Categories without transactions are absent from the map.
func ByCategory(txns []*entity.Transaction) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range txns {
		out[t.CategoryID] = out[t.CategoryID].Add(t.Amount)
	}
	return out
}

// ByCategoryForType is ByCategory restricted to one transaction type.
func ByCategoryForType(txns []*entity.Transaction, txnType entity.TransactionType) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range txns {
		if t.Type != txnType {
			continue
		}
		out[t.CategoryID] = out[t.CategoryID].Add(t.Amount)
	}
	return out
}

// MonthlySummary returns per-month totals for the given year, ascending by
// month. Months without transactions are omitted.
func MonthlySummary(txns []*entity.Transaction, year int) []entity.MonthlyTotals {
	byMonth := make(map[time.Month][]*entity.Transaction)
	for _, t := range txns {
		if t.Date.Year() != year {
			continue
		}
		byMonth[t.Date.Month()] = append(byMonth[t.Date.Month()], t)
	}

	months := make([]time.Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	out := make([]entity.MonthlyTotals, 0, len(months))
	for _, m := range months {
		out = append(out, entity.MonthlyTotals{
			Month:  m,
			Totals: PeriodTotals(byMonth[m], nil, nil),
		})
	}
	return out
}

func inRange(date time.Time, start, end *time.Time) bool {
	d := valueobject.Date(date)
	if start != nil && d.Before(valueobject.Date(*start)) {
		return false
	}
	if end != nil && d.After(valueobject.Date(*end)) {
		return false
	}
	return true
}
