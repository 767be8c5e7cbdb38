package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
)

type fields struct {
	ID         uuid.UUID `json:"id"`
	MID        string    `json:"mid"`
	TID        *string   `json:"tid"`
	Batch      *string   `json:"batch"`
	Amount     float64   `json:"amount"`
	NetAmount  float64   `json:"net_amount"`
	MDR        *float64  `json:"mdr"`
	Status     string    `json:"status"`
	Date       *string   `json:"date"`
	Difference *float64  `json:"difference"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// recordResponse is the stored shape, echoing the type reference as an id.
type recordResponse struct {
	fields
	TransactionType uuid.UUID `json:"transaction_type"`
}

// typeSummary is how a referenced type is shown on reads.
type typeSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Bank string    `json:"bank"`
}

// detailResponse resolves the type reference; null when the type was deleted.
type detailResponse struct {
	fields
	TransactionType *typeSummary `json:"transaction_type"`
}

type importResponse struct {
	Imported     int              `json:"imported"`
	Transactions []recordResponse `json:"transactions"`
}

func toFields(tx *transaction.Transaction) fields {
	f := fields{
		ID:         tx.ID,
		MID:        tx.MID,
		TID:        nonEmpty(tx.TID),
		Batch:      nonEmpty(tx.Batch),
		Amount:     tx.Amount,
		NetAmount:  tx.NetAmount,
		MDR:        tx.MDR,
		Status:     tx.Status,
		Difference: tx.Difference,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
	}

	if tx.Date != nil {
		f.Date = new(tx.Date.Format(time.DateOnly))
	}

	return f
}

func toRecord(tx *transaction.Transaction) recordResponse {
	return recordResponse{fields: toFields(tx), TransactionType: tx.TransactionTypeID}
}

func toDetail(tx *transaction.Transaction) detailResponse {
	return detailResponse{fields: toFields(tx), TransactionType: summarize(tx.TransactionType)}
}

func toDetailList(txs []*transaction.Transaction) []detailResponse {
	resp := make([]detailResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toDetail(tx)
	}

	return resp
}

func toImport(txs []*transaction.Transaction) importResponse {
	records := make([]recordResponse, len(txs))
	for i, tx := range txs {
		records[i] = toRecord(tx)
	}

	return importResponse{Imported: len(txs), Transactions: records}
}

func summarize(t *transactiontype.TransactionType) *typeSummary {
	if t == nil {
		return nil
	}

	return &typeSummary{ID: t.ID, Name: t.DisplayName(), Bank: t.Name}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
