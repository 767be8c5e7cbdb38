package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/settle/internal/importer/edc"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

var (
	ErrUnknownFormat = errors.New("unknown settlement format")
	ErrNoRows        = errors.New("file contains no settlement rows")
)

type Service struct {
	importers map[Format]Importer
	validator *validation.Validator
}

func NewService(v *validation.Validator) *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatEDC: edc.NewParser(),
		},
		validator: v,
	}
}

// Import parses a settlement file into raw row payloads. An empty format
// selects the EDC layout.
func (s *Service) Import(format Format, r io.Reader) ([]validation.Payload, error) {
	if format == "" {
		format = FormatEDC
	}

	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return importer.Parse(r)
}

// Transactions parses a settlement file and validates every row against
// transaction.CreateSchema with the given type reference filled in. Violations
// from all rows are returned together, with fields prefixed "rows[N].".
func (s *Service) Transactions(format Format, r io.Reader, typeID string) ([]transaction.CreateParams, error) {
	rows, err := s.Import(format, r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	var (
		params = make([]transaction.CreateParams, 0, len(rows))
		errs   validation.Errors
	)

	for i, row := range rows {
		if typeID != "" {
			row["transaction_type"] = typeID
		}

		valid, err := s.validator.Validate(row, transaction.CreateSchema)
		if err != nil {
			var violations validation.Errors
			if !errors.As(err, &violations) {
				return nil, err
			}

			errs = append(errs, violations.Prefix(fmt.Sprintf("rows[%d].", i))...)

			continue
		}

		params = append(params, transaction.CreateParamsFrom(valid))
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return params, nil
}

// IsInputError reports whether err stems from the uploaded file itself rather
// than from storage.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownFormat) || errors.Is(err, ErrNoRows) || errors.Is(err, edc.ErrNoHeader)
}
