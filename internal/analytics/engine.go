package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/format"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/shopspring/decimal"
)

// Transactions is the local transaction log. *services.TransactionService
// implements it.
type Transactions interface {
	Local(ctx context.Context, userID string) ([]models.Transaction, error)
	Revision() uint64
}

type Accounts interface {
	GetAll(ctx context.Context, userID string) []models.Account
}

type Holdings interface {
	GetAll(ctx context.Context, userID string) []models.CurrencyHolding
}

// Remote is the part of the mirror used when a user has no local
// transactions.
type Remote interface {
	SelectTransactionsBetween(ctx context.Context, userID string, from, to models.Date) ([]models.Transaction, error)
	SelectExpensesBetween(ctx context.Context, userID string, from, to models.Date) ([]models.Transaction, error)
	SelectMonthlySummaries(ctx context.Context, userID string) ([]models.MonthlySummary, error)
	SelectMonthlySummary(ctx context.Context, userID, month string, year int) (models.MonthlySummary, error)
}

// MonthTotals is the income and expenses of a period.
type MonthTotals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

func (m MonthTotals) Net() decimal.Decimal { return m.Income.Sub(m.Expenses) }

// ChartPoint is one month of the income/expenses chart.
type ChartPoint struct {
	Name     string          `json:"name"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Slice is one category of the expense breakdown.
type Slice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// CurrencyDisplay is a holding with its rupee value formatted for display.
type CurrencyDisplay struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	Value  string          `json:"value"`
}

type Engine struct {
	txs      Transactions
	accounts Accounts
	holdings Holdings
	remote   Remote
	now      timex.Clock
	log      logging.Logger

	mu      sync.Mutex
	ledgers map[string]*ledger
}

func NewEngine(txs Transactions, accounts Accounts, holdings Holdings, remote Remote, log logging.Logger, now timex.Clock) *Engine {
	if now == nil {
		now = timex.SystemClock
	}
	return &Engine{
		txs:      txs,
		accounts: accounts,
		holdings: holdings,
		remote:   remote,
		now:      now,
		log:      logging.ForModule(log, "analytics"),
		ledgers:  make(map[string]*ledger),
	}
}

// ledger returns the user's cached ledger, rebuilding it when the
// transaction collection changed since it was built. A failed read yields an
// empty ledger that is not cached, so the next call retries.
func (e *Engine) ledger(ctx context.Context, userID string) *ledger {
	rev := e.txs.Revision()

	e.mu.Lock()
	l, ok := e.ledgers[userID]
	e.mu.Unlock()
	if ok && l.revision == rev {
		return l
	}

	// The revision is read before loading, so a write racing with the load
	// leaves a stale revision behind and forces another rebuild.
	txs, err := e.txs.Local(ctx, userID)
	if err != nil {
		e.log.Warn(ctx, "transaction log unreadable, reporting no activity", "user", userID, "error", err)
		return newLedger(rev, nil)
	}
	l = newLedger(rev, txs)

	e.mu.Lock()
	// The revision is shared by every user, so ledgers built at another
	// revision can never be served again.
	for id, old := range e.ledgers {
		if old.revision != rev {
			delete(e.ledgers, id)
		}
	}
	e.ledgers[userID] = l
	e.mu.Unlock()
	return l
}

// today returns the current date and the first day of its month.
func (e *Engine) today() (models.Date, models.Date) {
	now := e.now()
	return models.DateOf(now), models.DateOf(timex.StartOfMonth(now))
}

// MonthlySummaries groups the user's transactions by month, oldest first.
func (e *Engine) MonthlySummaries(ctx context.Context, userID string) []models.MonthlySummary {
	l := e.ledger(ctx, userID)
	if l.empty() {
		return e.remoteSummaries(ctx, userID)
	}

	now := e.now()
	var out []models.MonthlySummary
	for _, d := range l.days {
		month, year := d.date.MonthName(), d.date.Year()
		if n := len(out); n == 0 || out[n-1].Month != month || out[n-1].Year != year {
			out = append(out, models.MonthlySummary{
				ID:        summaryID(userID, month, year),
				UserID:    userID,
				Month:     month,
				Year:      year,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		s := &out[len(out)-1]
		s.Income = s.Income.Add(d.income)
		s.Expenses = s.Expenses.Add(d.expenses)
	}
	return out
}

func summaryID(userID, month string, year int) string {
	return fmt.Sprintf("summary_%s_%d_%s", month, year, userID)
}

func (e *Engine) remoteSummaries(ctx context.Context, userID string) []models.MonthlySummary {
	rows, err := e.remote.SelectMonthlySummaries(ctx, userID)
	if err != nil {
		e.log.Debug(ctx, "remote summaries unavailable", "user", userID, "error", err)
		return []models.MonthlySummary{}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return monthIndex(rows[i]) < monthIndex(rows[j])
	})
	return rows
}

func monthIndex(s models.MonthlySummary) int {
	m, _ := models.ParseShortMonth(s.Month)
	return s.Year*12 + int(m)
}

// ChartSeries is MonthlySummaries shaped for the income/expenses chart.
func (e *Engine) ChartSeries(ctx context.Context, userID string) []ChartPoint {
	summaries := e.MonthlySummaries(ctx, userID)
	out := make([]ChartPoint, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ChartPoint{Name: s.Month, Income: s.Income, Expenses: s.Expenses})
	}
	return out
}

// TotalBalance is total income minus total expenses. A user without
// transactions gets the sum of the account balances instead.
func (e *Engine) TotalBalance(ctx context.Context, userID string) decimal.Decimal {
	l := e.ledger(ctx, userID)
	if l.empty() {
		return e.AccountBalanceTotal(ctx, userID)
	}
	return l.income.Sub(l.expenses)
}

// AccountBalanceTotal sums the manually maintained account balances.
func (e *Engine) AccountBalanceTotal(ctx context.Context, userID string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range e.accounts.GetAll(ctx, userID) {
		total = total.Add(a.Balance)
	}
	return total
}

// CurrentMonthSummary totals the transactions dated from the first of the
// current month through today.
func (e *Engine) CurrentMonthSummary(ctx context.Context, userID string) MonthTotals {
	today, first := e.today()
	l := e.ledger(ctx, userID)
	if !l.empty() {
		return totals(l.between(first, today))
	}

	txs, err := e.remote.SelectTransactionsBetween(ctx, userID, first, today)
	if err != nil {
		e.log.Debug(ctx, "remote month summary unavailable", "user", userID, "error", err)
		return MonthTotals{}
	}
	return totals(newLedger(0, txs).days)
}

// ExpenseBreakdown groups the expenses dated from the first of the current
// month through today by category, largest first.
func (e *Engine) ExpenseBreakdown(ctx context.Context, userID string) []Slice {
	today, first := e.today()
	l := e.ledger(ctx, userID)
	if l.empty() {
		txs, err := e.remote.SelectExpensesBetween(ctx, userID, first, today)
		if err != nil {
			e.log.Debug(ctx, "remote expense breakdown unavailable", "user", userID, "error", err)
			return []Slice{}
		}
		l = newLedger(0, txs)
	}

	sums := make(map[string]decimal.Decimal)
	for _, d := range l.between(first, today) {
		for cat, v := range d.byCategory {
			sums[cat] = sums[cat].Add(v)
		}
	}

	out := make([]Slice, 0, len(sums))
	for cat, v := range sums {
		out = append(out, Slice{Name: cat, Value: v, Color: CategoryColor(cat)})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// BalancePercentChange compares the net balance of the current calendar
// month with the previous one: round((cur - prev) / |prev| * 100). A zero
// previous balance yields 100 when the current one is positive and 0
// otherwise.
func (e *Engine) BalancePercentChange(ctx context.Context, userID string) int64 {
	now := e.now()
	curYear, curMonth := now.Year(), now.Month()
	prevTime := time.Date(curYear, curMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prevYear, prevMonth := prevTime.Year(), prevTime.Month()

	var cur, prev decimal.Decimal
	l := e.ledger(ctx, userID)
	if !l.empty() {
		cur = totals(l.between(monthRange(curYear, curMonth))).Net()
		prev = totals(l.between(monthRange(prevYear, prevMonth))).Net()
	} else {
		var ok bool
		cur, ok = e.remoteNet(ctx, userID, curMonth, curYear)
		if !ok {
			return 0
		}
		prev, ok = e.remoteNet(ctx, userID, prevMonth, prevYear)
		if !ok {
			return 0
		}
	}
	return PercentChange(cur, prev)
}

func (e *Engine) remoteNet(ctx context.Context, userID string, month time.Month, year int) (decimal.Decimal, bool) {
	s, err := e.remote.SelectMonthlySummary(ctx, userID, models.ShortMonth(month), year)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return decimal.Zero, true
	case err != nil:
		e.log.Debug(ctx, "remote monthly summary unavailable", "user", userID, "error", err)
		return decimal.Zero, false
	}
	return s.Net(), true
}

// PercentChange is the period-over-period change used by
// BalancePercentChange.
func PercentChange(cur, prev decimal.Decimal) int64 {
	if prev.IsZero() {
		if cur.IsPositive() {
			return 100
		}
		return 0
	}
	return format.Round(cur.Sub(prev).Mul(decimal.NewFromInt(100)).Div(prev.Abs()))
}

// CurrencyDisplays values the user's holdings in rupees.
func (e *Engine) CurrencyDisplays(ctx context.Context, userID string) []CurrencyDisplay {
	holdings := e.holdings.GetAll(ctx, userID)
	out := make([]CurrencyDisplay, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, CurrencyDisplay{
			Code:   h.Code,
			Amount: h.Amount,
			Value:  format.Currency(ToINR(h.Code, h.Amount)),
		})
	}
	return out
}
