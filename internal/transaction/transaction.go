package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

var ErrNotFound = errors.New("transaction not found")

// Transaction is one EDC settlement record.
type Transaction struct {
	ID                uuid.UUID
	MID               string // merchant id
	TID               string // terminal id
	TransactionTypeID uuid.UUID
	TransactionType   *transactiontype.TransactionType // Loaded via JOIN; nil when the type was deleted
	Batch             string
	Amount            float64
	NetAmount         float64
	MDR               *float64 // merchant discount rate
	Status            string
	Date              *time.Time
	Difference        *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

var CreateSchema = validation.Schema{
	{Name: "mid", Kind: validation.KindString, NotEmpty: true},
	{Name: "tid", Kind: validation.KindString, Optional: true},
	{Name: "transaction_type", Kind: validation.KindString, NotEmpty: true, Format: "uuid"},
	{Name: "batch", Kind: validation.KindString, Optional: true},
	{Name: "amount", Kind: validation.KindNumber, Min: new(0.0)},
	{Name: "net_amount", Kind: validation.KindNumber, Min: new(0.0)},
	{Name: "mdr", Kind: validation.KindNumber, Optional: true, Min: new(0.0)},
	{Name: "status", Kind: validation.KindString, NotEmpty: true},
	{Name: "date", Kind: validation.KindString, Optional: true, Normalize: validation.NormalizeDate},
	{Name: "difference", Kind: validation.KindNumber, Optional: true},
}

var UpdateSchema = CreateSchema.Relaxed()
