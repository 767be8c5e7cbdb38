package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/settle/internal/transaction"
)

const (
	SheetTransactions = "Transactions"
	SheetSummary      = "Summary"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var transactionHeaders = []any{
	"Date", "MID", "TID", "Batch", "Transaction Type", "Bank",
	"Amount", "Net Amount", "MDR", "Difference", "Status", "Created At",
}

var summaryHeaders = []any{"Transaction Type", "Count", "Amount", "Net Amount", "Difference"}

// Total aggregates the transactions sharing one transaction type label.
type Total struct {
	Label      string
	Count      int
	Amount     float64
	NetAmount  float64
	Difference float64
}

// Service renders transactions as spreadsheets.
type Service struct {
	transactions *transaction.Service
}

// NewService creates a new export Service.
func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

// Filename is the attachment name for a workbook generated at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("transactions_%s.xlsx", now.Format("20060102"))
}

// Export writes a workbook with every transaction (newest first) and a per-type
// summary sheet to w. It returns the summary totals.
func (s *Service) Export(ctx context.Context, w io.Writer) ([]Total, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := writeTransactions(f, txs); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}

	totals := Summarize(txs)
	if err := writeSummary(f, totals); err != nil {
		return nil, err
	}

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return totals, nil
}

func writeTransactions(f *excelize.File, txs []*transaction.Transaction) error {
	if err := writeHeader(f, SheetTransactions, transactionHeaders); err != nil {
		return err
	}

	for i, tx := range txs {
		label, bank := "", ""
		if tx.TransactionType != nil {
			label = tx.TransactionType.DisplayName()
			bank = tx.TransactionType.Name
		}

		row := []any{
			formatDate(tx.Date),
			tx.MID,
			tx.TID,
			tx.Batch,
			label,
			bank,
			tx.Amount,
			tx.NetAmount,
			optional(tx.MDR),
			optional(tx.Difference),
			tx.Status,
			tx.CreatedAt.Format(time.DateTime),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(SheetTransactions, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetTransactions, "A", "D", 14); err != nil {
		return err
	}

	return f.SetColWidth(SheetTransactions, "E", "E", 30)
}

func writeSummary(f *excelize.File, totals []Total) error {
	if err := writeHeader(f, SheetSummary, summaryHeaders); err != nil {
		return err
	}

	for i, t := range totals {
		row := []any{t.Label, t.Count, t.Amount, t.NetAmount, t.Difference}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+2, err)
		}
	}

	return f.SetColWidth(SheetSummary, "A", "A", 30)
}

func writeHeader(f *excelize.File, sheet string, headers []any) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}

	return f.SetCellStyle(sheet, "A1", last, style)
}

// Summarize groups transactions by their type's display name, sorted by label.
// Transactions whose type was deleted are grouped under "(unknown)".
func Summarize(txs []*transaction.Transaction) []Total {
	byLabel := make(map[string]*Total)

	for _, tx := range txs {
		label := "(unknown)"
		if tx.TransactionType != nil {
			label = tx.TransactionType.DisplayName()
		}

		t, ok := byLabel[label]
		if !ok {
			t = &Total{Label: label}
			byLabel[label] = t
		}

		t.Count++
		t.Amount += tx.Amount
		t.NetAmount += tx.NetAmount

		if tx.Difference != nil {
			t.Difference += *tx.Difference
		}
	}

	totals := make([]Total, 0, len(byLabel))
	for _, t := range byLabel {
		totals = append(totals, *t)
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i].Label < totals[j].Label })

	return totals
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.DateOnly)
}

func optional(f *float64) any {
	if f == nil {
		return ""
	}

	return *f
}
