package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/validation"
)

type CreateParams struct {
	MID               string
	TID               string
	TransactionTypeID uuid.UUID
	Batch             string
	Amount            float64
	NetAmount         float64
	MDR               *float64
	Status            string
	Date              *time.Time
	Difference        *float64
}

// UpdateParams carries only the supplied fields; nil leaves the stored value.
// An empty TID or Batch clears it.
type UpdateParams struct {
	MID               *string
	TID               *string
	TransactionTypeID *uuid.UUID
	Batch             *string
	Amount            *float64
	NetAmount         *float64
	MDR               *float64
	Status            *string
	Date              *time.Time
	Difference        *float64
}

// CreateParamsFrom maps a payload already accepted by CreateSchema.
func CreateParamsFrom(p validation.Payload) CreateParams {
	typeID, _ := uuid.Parse(p.String("transaction_type"))

	return CreateParams{
		MID:               p.String("mid"),
		TID:               p.String("tid"),
		TransactionTypeID: typeID,
		Batch:             p.String("batch"),
		Amount:            p.Float("amount"),
		NetAmount:         p.Float("net_amount"),
		MDR:               p.FloatPtr("mdr"),
		Status:            p.String("status"),
		Date:              p.DatePtr("date"),
		Difference:        p.FloatPtr("difference"),
	}
}

// UpdateParamsFrom maps a payload already accepted by UpdateSchema.
func UpdateParamsFrom(p validation.Payload) UpdateParams {
	params := UpdateParams{
		MID:        p.StringPtr("mid"),
		TID:        p.StringPtr("tid"),
		Batch:      p.StringPtr("batch"),
		Amount:     p.FloatPtr("amount"),
		NetAmount:  p.FloatPtr("net_amount"),
		MDR:        p.FloatPtr("mdr"),
		Status:     p.StringPtr("status"),
		Date:       p.DatePtr("date"),
		Difference: p.FloatPtr("difference"),
	}

	if s := p.StringPtr("transaction_type"); s != nil {
		if id, err := uuid.Parse(*s); err == nil {
			params.TransactionTypeID = &id
		}
	}

	return params
}
