package models

// Collection keys in the local store. Outbox jobs use the same names.
const (
	KeyProfile      = "profile"
	KeyAccounts     = "accounts"
	KeyTransactions = "transactions"
	KeyReceipts     = "receipts"
	KeyPreferences  = "preferences"
	KeyGoals        = "savings_goals"
	KeyHoldings     = "currency_holdings"
	KeyContacts     = "contacts"
)
