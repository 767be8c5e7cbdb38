package transactiontype

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/validation"
)

var ErrNotFound = errors.New("transaction type not found")

// TransactionType is a bank/payment category with up to two qualifiers,
// e.g. "BCA" with "Debit" and "Credit".
type TransactionType struct {
	ID        uuid.UUID
	Name      string
	Type1     string
	Type2     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName composes the human-readable label used wherever a type is shown:
// "BCA (Debit & Credit)", "BCA (Debit)", "BCA (Credit)" or just "BCA".
func (t *TransactionType) DisplayName() string {
	switch {
	case t.Type1 != "" && t.Type2 != "":
		return t.Name + " (" + t.Type1 + " & " + t.Type2 + ")"
	case t.Type1 != "":
		return t.Name + " (" + t.Type1 + ")"
	case t.Type2 != "":
		return t.Name + " (" + t.Type2 + ")"
	}

	return t.Name
}

var CreateSchema = validation.Schema{
	{Name: "name", Kind: validation.KindString, NotEmpty: true, MinLength: 3},
	{Name: "type1", Kind: validation.KindString, Optional: true},
	{Name: "type2", Kind: validation.KindString, Optional: true},
}

var UpdateSchema = CreateSchema.Relaxed()
