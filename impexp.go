package wallet

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// This file contains functions to handle the import/export formats.
// Import reads the exchange's raw transaction-export CSV; the ledger itself
// persists as JSONL, human readable and easy to diff.

// csvTimeFormat is the timestamp format of the exchange export.
const csvTimeFormat = "2006-01-02 15:04:05"

// ImportTransactions imports a ledger from the exchange's transaction-export
// CSV (columns UTC_Time, Operation, Coin, Change, order free, extra columns
// ignored).
//
// The loader performs the full input contract of the engine: headers are
// normalized, raw operation labels are mapped (unmapped ones become
// "unknown"), ignored non-economic labels are filtered out, changes are
// parsed as exact decimals, and the result is chronologically sorted.
func ImportTransactions(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read export header: %w", err)
	}
	col := make(map[string]int)
	for i, name := range header {
		col[strings.Trim(strings.TrimSpace(name), `"`)] = i
	}
	for _, required := range []string{"UTC_Time", "Operation", "Coin", "Change"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("export is missing column %q", required)
		}
	}

	ledger := NewLedger()
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("cannot read export line %d: %w", line, err)
		}

		label := record[col["Operation"]]
		if Ignored(label) {
			continue
		}

		when, err := time.ParseInLocation(csvTimeFormat, record[col["UTC_Time"]], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid UTC_Time on line %d: %w", line, err)
		}
		change, err := ParseQuantity(record[col["Change"]])
		if err != nil {
			return nil, fmt.Errorf("invalid Change on line %d: %w", line, err)
		}

		ledger.Append(NewTransaction(when, label, record[col["Coin"]], change))
	}
	return ledger, nil
}

// jtransaction is the JSONL persisted form of a transaction.
type jtransaction struct {
	Time   time.Time `json:"time"`
	Asset  string    `json:"asset"`
	Change Quantity  `json:"change"`
	Label  string    `json:"operation"`
}

// EncodeLedger writes the ledger to 'w' as JSONL, one transaction per line,
// in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for tx := range l.Transactions() {
		line, err := json.Marshal(jtransaction{
			Time:   tx.Time,
			Asset:  tx.Asset,
			Change: tx.Change,
			Label:  tx.Label,
		})
		if err != nil {
			return fmt.Errorf("cannot encode transaction: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL ledger from 'r'. Operations are re-normalized
// from the persisted raw label, so the mapping can evolve without rewriting
// ledger files.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jt jtransaction
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", i, string(line), err)
		}
		ledger.Append(NewTransaction(jt.Time, jt.Label, jt.Asset, jt.Change))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}
