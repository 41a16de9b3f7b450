package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/finhive/internal/format"
)

func (a *App) cmdSummary(ctx context.Context, _ []string) error {
	items := a.engine.MonthlySummaries(ctx, a.user)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No transactions yet.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tNET")
	for _, s := range items {
		fmt.Fprintf(w, "%s %d\t%s\t%s\t%s\n", s.Month, s.Year,
			format.Currency(s.Income), format.Currency(s.Expenses), format.Currency(s.Net()))
	}
	return w.Flush()
}

func (a *App) cmdMonth(ctx context.Context, _ []string) error {
	t := a.engine.CurrentMonthSummary(ctx, a.user)
	fmt.Fprintln(a.out, "Income:  ", format.Currency(t.Income))
	fmt.Fprintln(a.out, "Expenses:", format.Currency(t.Expenses))
	fmt.Fprintln(a.out, "Net:     ", format.Currency(t.Net()))
	return nil
}

func (a *App) cmdBalance(ctx context.Context, _ []string) error {
	fmt.Fprintln(a.out, "Total balance:   ", format.Currency(a.engine.TotalBalance(ctx, a.user)))
	fmt.Fprintln(a.out, "Account balances:", format.Currency(a.engine.AccountBalanceTotal(ctx, a.user)))
	return nil
}

func (a *App) cmdBreakdown(ctx context.Context, _ []string) error {
	slices := a.engine.ExpenseBreakdown(ctx, a.user)
	if len(slices) == 0 {
		fmt.Fprintln(a.out, "No expenses this month.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "CATEGORY\tAMOUNT\tCOLOR")
	for _, s := range slices {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, format.Currency(s.Value), s.Color)
	}
	return w.Flush()
}

func (a *App) cmdChange(ctx context.Context, _ []string) error {
	pct := a.engine.BalancePercentChange(ctx, a.user)
	sign := ""
	if pct > 0 {
		sign = "+"
	}
	fmt.Fprintf(a.out, "Change vs last month: %s%d%%\n", sign, pct)
	return nil
}

func (a *App) cmdCurrencies(ctx context.Context, _ []string) error {
	items := a.engine.CurrencyDisplays(ctx, a.user)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No currency holdings.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "CODE\tAMOUNT\tIN RUPEES")
	for _, c := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, format.Money(c.Code, c.Amount), c.Value)
	}
	return w.Flush()
}
