// Package cmd implements the CLI application to explore a portfolio snapshot.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	pnl "github.com/mani-coder/wealthica-pnl-addon"
)

// Commands lists every subcommand of the application.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&compositionCmd{},
	&holdingsCmd{},
	&activityCmd{},
	&fetchCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var snapshotFile = flag.String("snapshot-file", "snapshot.json", "Path to the portfolio snapshot file (JSON format)")
var transactionsFile = flag.String("transactions-file", "transactions.jsonl", "Path to the transaction log file (JSONL format)")

// DecodeSnapshot reads the app snapshot file.
func DecodeSnapshot() (*pnl.Snapshot, error) {
	f, err := os.Open(*snapshotFile)
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot file %q: %w", *snapshotFile, err)
	}
	defer f.Close()
	return pnl.DecodeSnapshot(f)
}

// DecodeTransactions reads the app transaction log. A missing log is not an
// error: there is simply no activity to report.
func DecodeTransactions() ([]pnl.Transaction, error) {
	f, err := os.Open(*transactionsFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open transactions file %q: %w", *transactionsFile, err)
	}
	defer f.Close()
	return pnl.DecodeTransactions(f)
}

// EncodeSnapshot writes the snapshot into the app snapshot file.
func EncodeSnapshot(s *pnl.Snapshot) error {
	f, err := os.Create(*snapshotFile)
	if err != nil {
		return fmt.Errorf("could not create snapshot file %q: %w", *snapshotFile, err)
	}
	defer f.Close()
	return pnl.EncodeSnapshot(f, s)
}

// EncodeTransactions writes the transaction log into the app transactions file.
func EncodeTransactions(transactions []pnl.Transaction) error {
	f, err := os.Create(*transactionsFile)
	if err != nil {
		return fmt.Errorf("could not create transactions file %q: %w", *transactionsFile, err)
	}
	defer f.Close()
	return pnl.EncodeTransactions(f, transactions)
}
