package cli

import "context"

type command struct {
	args    string
	minArgs int
	help    string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"user":       {args: "[id]", help: "show or switch the current user", run: (*App).cmdUser},
		"accounts":   {help: "list accounts", run: (*App).cmdAccounts},
		"addaccount": {help: "add an account", run: (*App).cmdAddAccount},
		"delaccount": {args: "<id>", minArgs: 1, help: "delete an account", run: (*App).cmdDelAccount},
		"primary":    {help: "show the primary checking account", run: (*App).cmdPrimary},
		"tx":         {args: "[limit]", help: "list recent transactions", run: (*App).cmdTransactions},
		"addtx":      {help: "add a transaction", run: (*App).cmdAddTransaction},
		"deltx":      {args: "<id>", minArgs: 1, help: "delete a transaction", run: (*App).cmdDelTransaction},
		"receipts":   {help: "list receipts", run: (*App).cmdReceipts},
		"addreceipt": {help: "add a receipt with an optional file", run: (*App).cmdAddReceipt},
		"getreceipt": {args: "<id> <path>", minArgs: 2, help: "save a receipt's file to path", run: (*App).cmdGetReceipt},
		"receipturl": {args: "<id>", minArgs: 1, help: "print a download link for a mirrored receipt file", run: (*App).cmdReceiptURL},
		"delreceipt": {args: "<id>", minArgs: 1, help: "delete a receipt", run: (*App).cmdDelReceipt},
		"goals":      {help: "list savings goals", run: (*App).cmdGoals},
		"holdings":   {help: "list currency holdings", run: (*App).cmdHoldings},
		"addholding": {args: "<code> <amount>", minArgs: 2, help: "add a currency holding", run: (*App).cmdAddHolding},
		"delholding": {args: "<id>", minArgs: 1, help: "delete a currency holding", run: (*App).cmdDelHolding},
		"contacts":   {help: "list contacts", run: (*App).cmdContacts},
		"addcontact": {args: "<name...>", minArgs: 1, help: "add a contact", run: (*App).cmdAddContact},
		"delcontact": {args: "<id>", minArgs: 1, help: "delete a contact", run: (*App).cmdDelContact},
		"profile":    {help: "show the profile", run: (*App).cmdProfile},
		"setprofile": {help: "edit the profile", run: (*App).cmdSetProfile},
		"prefs":      {help: "show preferences", run: (*App).cmdPrefs},
		"setprefs":   {help: "edit preferences", run: (*App).cmdSetPrefs},
		"summary":    {help: "monthly income and expenses", run: (*App).cmdSummary},
		"month":      {help: "income and expenses of the current month so far", run: (*App).cmdMonth},
		"balance":    {help: "total balance", run: (*App).cmdBalance},
		"breakdown":  {help: "this month's expenses by category", run: (*App).cmdBreakdown},
		"change":     {help: "net balance change against last month", run: (*App).cmdChange},
		"currencies": {help: "holdings valued in rupees", run: (*App).cmdCurrencies},
		"status":     {help: "mirror status and outbox counts", run: (*App).cmdStatus},
		"sync":       {help: "mirror pending changes now", run: (*App).cmdSync},
		"loglevel":   {args: "[level]", help: "show or set the log level (debug, info, warn, error)", run: (*App).cmdLogLevel},
	}
}
