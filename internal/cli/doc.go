// Package cli implements the interactive FinHive shell.
//
// The shell reads one command per line, dispatches it to the record
// accessors, the analytics engine or the outbox worker, and prints the result.
// Commands that create records prompt for their fields; commands that address
// a single record take its id as an argument:
//
//	finhive (local-user online)> addtx
//	Type (income/expense)
//	> expense
//	...
//	finhive (local-user online)> deltx 5f0c...
//
// Type "help" for the full list.
package cli
