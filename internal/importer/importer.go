package importer

import (
	"io"

	"github.com/MrJamesThe3rd/settle/internal/validation"
)

// Format identifies the layout of an uploaded settlement file.
type Format string

const (
	FormatEDC Format = "edc"
)

// Importer turns a settlement file into one raw payload per data row. Payloads
// still have to pass transaction.CreateSchema.
type Importer interface {
	Parse(r io.Reader) ([]validation.Payload, error)
}
