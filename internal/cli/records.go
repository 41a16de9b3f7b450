package cli

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/format"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/services"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// File access seams for tests.
var (
	readFile  = os.ReadFile
	writeFile = os.WriteFile
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid amount %q", common.ErrValidation, s)
	}
	return d, nil
}

// parseOptionalDate returns nil for an empty string.
func parseOptionalDate(s string) (*models.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return &d, nil
}

func syncMark(s models.SyncState) string {
	switch s.SyncStatus {
	case models.SyncSynced:
		return "synced"
	case models.SyncFailed:
		return "failed: " + s.SyncError
	case models.SyncPending:
		return "pending"
	}
	return "-"
}

func (a *App) cmdUser(_ context.Context, args []string) error {
	if len(args) > 0 {
		a.user = args[0]
	}
	fmt.Fprintln(a.out, "Current user:", a.user)
	return nil
}

func (a *App) cmdAccounts(ctx context.Context, _ []string) error {
	items := a.svc.Accounts.GetAll(ctx, a.user)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No accounts.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE\tCARD\tSYNC")
	for _, acc := range items {
		card := ""
		if acc.CardType != nil {
			card = *acc.CardType
		}
		if acc.LastFour != nil {
			card = strings.TrimSpace(card + " *" + *acc.LastFour)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.Type, format.Currency(acc.Balance), card, syncMark(acc.SyncState))
	}
	return w.Flush()
}

func (a *App) cmdAddAccount(ctx context.Context, _ []string) error {
	name, err := a.ask("Name")
	if err != nil {
		return err
	}
	typ, err := a.ask("Type (checking/savings/credit/investment)")
	if err != nil {
		return err
	}
	balanceText, err := a.ask("Balance")
	if err != nil {
		return err
	}
	balance, err := parseAmount(balanceText)
	if err != nil {
		return err
	}
	cardType, err := a.askOptional("Card type (empty for none)")
	if err != nil {
		return err
	}
	lastFour, err := a.askOptional("Last four digits (empty for none)")
	if err != nil {
		return err
	}

	acc, err := a.svc.Accounts.Add(ctx, a.user, services.NewAccount{
		Name:     name,
		Type:     models.AccountType(strings.ToLower(typ)),
		Balance:  balance,
		CardType: cardType,
		LastFour: lastFour,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account added:", acc.ID)
	return nil
}

func (a *App) reportDelete(what string, removed bool, err error) error {
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(a.out, "No such %s.\n", what)
		return nil
	}
	fmt.Fprintf(a.out, "%s deleted.\n", strings.ToUpper(what[:1])+what[1:])
	return nil
}

func (a *App) cmdDelAccount(ctx context.Context, args []string) error {
	removed, err := a.svc.Accounts.Delete(ctx, args[0], a.user)
	return a.reportDelete("account", removed, err)
}

func (a *App) cmdPrimary(ctx context.Context, _ []string) error {
	acc, ok := a.svc.Accounts.Primary(ctx, a.user)
	if !ok {
		fmt.Fprintln(a.out, "No checking account.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s): %s\n", acc.Name, acc.ID, format.Currency(acc.Balance))
	return nil
}

func (a *App) cmdTransactions(ctx context.Context, args []string) error {
	limit := services.DefaultRecent
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
	}

	items := a.svc.Transactions.Recent(ctx, a.user, limit)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION\tSYNC")
	for _, t := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Type, format.Currency(t.Amount), t.Category, t.Description, syncMark(t.SyncState))
	}
	return w.Flush()
}

func (a *App) cmdAddTransaction(ctx context.Context, _ []string) error {
	typ, err := a.ask("Type (income/expense)")
	if err != nil {
		return err
	}
	amountText, err := a.ask("Amount")
	if err != nil {
		return err
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		return err
	}
	category, err := a.ask("Category (empty for " + models.DefaultCategory + ")")
	if err != nil {
		return err
	}
	dateText, err := a.ask("Date YYYY-MM-DD (empty for today)")
	if err != nil {
		return err
	}
	date, err := parseOptionalDate(dateText)
	if err != nil {
		return err
	}
	description, err := a.ask("Description")
	if err != nil {
		return err
	}
	accountID, err := a.askOptional("Account ID (empty for none)")
	if err != nil {
		return err
	}

	t, err := a.svc.Transactions.Add(ctx, a.user, services.NewTransaction{
		AccountID:   accountID,
		Amount:      amount,
		Type:        models.TransactionType(strings.ToLower(typ)),
		Category:    category,
		Description: description,
		Date:        date,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Transaction added:", t.ID)
	return nil
}

func (a *App) cmdDelTransaction(ctx context.Context, args []string) error {
	removed, err := a.svc.Transactions.Delete(ctx, args[0], a.user)
	return a.reportDelete("transaction", removed, err)
}

func (a *App) cmdReceipts(ctx context.Context, _ []string) error {
	items := a.svc.Receipts.GetAll(ctx, a.user)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No receipts.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tAMOUNT\tCATEGORY\tFILE\tSYNC")
	for _, r := range items {
		file := "-"
		if r.FileName != "" {
			file = fmt.Sprintf("%s (%s)", r.FileName, humanize.Bytes(uint64(r.FileSize)))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Title, format.Currency(r.Amount), r.Category, file, syncMark(r.SyncState))
	}
	return w.Flush()
}

// contentType guesses a file's media type from its extension, then its
// content.
func contentType(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func (a *App) cmdAddReceipt(ctx context.Context, _ []string) error {
	title, err := a.ask("Title")
	if err != nil {
		return err
	}
	amountText, err := a.ask("Amount")
	if err != nil {
		return err
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		return err
	}
	category, err := a.ask("Category")
	if err != nil {
		return err
	}
	dateText, err := a.ask("Date YYYY-MM-DD (empty for today)")
	if err != nil {
		return err
	}
	date, err := parseOptionalDate(dateText)
	if err != nil {
		return err
	}
	notes, err := a.ask("Notes")
	if err != nil {
		return err
	}
	path, err := a.ask("File path (empty for none)")
	if err != nil {
		return err
	}

	in := services.NewReceipt{Title: title, Amount: amount, Category: category, Date: date, Notes: notes}
	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return fmt.Errorf("failed to read receipt file: %w", err)
		}
		in.FileName = filepath.Base(path)
		in.FileType = contentType(path, data)
		in.Data = data
	}

	r, err := a.svc.Receipts.Add(ctx, a.user, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Receipt added:", r.ID)
	return nil
}

func (a *App) cmdGetReceipt(ctx context.Context, args []string) error {
	_, data, err := a.svc.Receipts.File(ctx, args[0], a.user)
	if err != nil {
		return err
	}
	if err := writeFile(args[1], data, 0o600); err != nil {
		return fmt.Errorf("failed to write receipt file: %w", err)
	}
	fmt.Fprintf(a.out, "Saved %s to %s.\n", humanize.Bytes(uint64(len(data))), args[1])
	return nil
}

func (a *App) cmdReceiptURL(ctx context.Context, args []string) error {
	url, err := a.svc.Receipts.RemoteURL(ctx, args[0], a.user)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

func (a *App) cmdDelReceipt(ctx context.Context, args []string) error {
	removed, err := a.svc.Receipts.Delete(ctx, args[0], a.user)
	return a.reportDelete("receipt", removed, err)
}

func (a *App) cmdGoals(ctx context.Context, _ []string) error {
	items := a.svc.Goals.GetAll(ctx, a.user)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No savings goals.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "TITLE\tSAVED\tTARGET\tPROGRESS")
	for _, g := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\n", g.Title, format.Currency(g.CurrentAmount), format.Currency(g.TargetAmount),
			format.Percentage(g.CurrentAmount, g.TargetAmount))
	}
	return w.Flush()
}

func (a *App) cmdHoldings(ctx context.Context, _ []string) error {
	items := a.svc.Holdings.GetAll(ctx, a.user)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No currency holdings.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tCODE\tAMOUNT\tSYNC")
	for _, h := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.ID, h.Code, format.Money(h.Code, h.Amount), syncMark(h.SyncState))
	}
	return w.Flush()
}

func (a *App) cmdAddHolding(ctx context.Context, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	h, err := a.svc.Holdings.Add(ctx, a.user, args[0], amount)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Holding added:", h.ID)
	return nil
}

func (a *App) cmdDelHolding(ctx context.Context, args []string) error {
	removed, err := a.svc.Holdings.Delete(ctx, args[0], a.user)
	return a.reportDelete("holding", removed, err)
}

func (a *App) cmdContacts(ctx context.Context, _ []string) error {
	items := a.svc.Contacts.GetAll(ctx, a.user)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No contacts.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tSYNC")
	for _, c := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, syncMark(c.SyncState))
	}
	return w.Flush()
}

func (a *App) cmdAddContact(ctx context.Context, args []string) error {
	c, err := a.svc.Contacts.Add(ctx, a.user, strings.Join(args, " "), nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Contact added:", c.ID)
	return nil
}

func (a *App) cmdDelContact(ctx context.Context, args []string) error {
	removed, err := a.svc.Contacts.Delete(ctx, args[0], a.user)
	return a.reportDelete("contact", removed, err)
}
