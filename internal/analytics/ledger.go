package analytics

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/shopspring/decimal"
)

// OtherCategory groups expenses without a category.
const OtherCategory = "Other"

// day holds the totals of one calendar date.
type day struct {
	date     models.Date
	income   decimal.Decimal
	expenses decimal.Decimal
	// byCategory sums the day's expenses.
	byCategory map[string]decimal.Decimal
}

// ledger is a user's transaction log folded into days.
type ledger struct {
	revision uint64
	count    int
	income   decimal.Decimal
	expenses decimal.Decimal
	// days is sorted by date.
	days []*day
}

func newLedger(revision uint64, txs []models.Transaction) *ledger {
	l := &ledger{revision: revision, count: len(txs)}
	byDate := make(map[string]*day)

	for _, t := range txs {
		key := t.Date.String()
		d, ok := byDate[key]
		if !ok {
			d = &day{date: t.Date, byCategory: make(map[string]decimal.Decimal)}
			byDate[key] = d
			l.days = append(l.days, d)
		}
		switch t.Type {
		case models.TransactionIncome:
			d.income = d.income.Add(t.Amount)
			l.income = l.income.Add(t.Amount)
		case models.TransactionExpense:
			d.expenses = d.expenses.Add(t.Amount)
			l.expenses = l.expenses.Add(t.Amount)
			cat := t.Category
			if cat == "" {
				cat = OtherCategory
			}
			d.byCategory[cat] = d.byCategory[cat].Add(t.Amount)
		}
	}

	sort.Slice(l.days, func(i, j int) bool { return l.days[i].date.Before(l.days[j].date.Time) })
	return l
}

func (l *ledger) empty() bool { return l.count == 0 }

// between returns the days within [from, to].
func (l *ledger) between(from, to models.Date) []*day {
	lo := sort.Search(len(l.days), func(i int) bool { return !l.days[i].date.Before(from.Time) })
	hi := sort.Search(len(l.days), func(i int) bool { return l.days[i].date.After(to.Time) })
	if lo >= hi {
		return nil
	}
	return l.days[lo:hi]
}

// totals sums income and expenses over days.
func totals(days []*day) MonthTotals {
	var m MonthTotals
	for _, d := range days {
		m.Income = m.Income.Add(d.income)
		m.Expenses = m.Expenses.Add(d.expenses)
	}
	return m
}

// monthRange returns the first and last dates of the month containing t.
func monthRange(year int, month time.Month) (models.Date, models.Date) {
	first := models.NewDate(year, month, 1)
	last := models.DateOf(first.AddDate(0, 1, -1))
	return first, last
}
