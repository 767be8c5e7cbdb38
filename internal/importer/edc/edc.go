package edc

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/settle/internal/encoding"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

var ErrNoHeader = errors.New("no settlement header found: expected at least MID and Amount columns")

type cellKind int

const (
	cellString cellKind = iota
	cellNumber
)

// column maps one payload field to the header spellings seen in bank exports.
type column struct {
	field   string
	kind    cellKind
	aliases []string
}

var columns = []column{
	{field: "mid", kind: cellString, aliases: []string{"mid", "merchant id", "merchant no"}},
	{field: "tid", kind: cellString, aliases: []string{"tid", "terminal id", "terminal no"}},
	{field: "batch", kind: cellString, aliases: []string{"batch", "batch no", "batch number"}},
	{field: "amount", kind: cellNumber, aliases: []string{"amount", "gross amount", "trx amount"}},
	{field: "net_amount", kind: cellNumber, aliases: []string{"net amount", "nett amount", "net"}},
	{field: "mdr", kind: cellNumber, aliases: []string{"mdr", "mdr amount", "discount"}},
	{field: "status", kind: cellString, aliases: []string{"status", "settlement status"}},
	{field: "date", kind: cellString, aliases: []string{"date", "trx date", "transaction date", "settlement date"}},
	{field: "difference", kind: cellNumber, aliases: []string{"difference", "diff", "selisih"}},
}

// requiredColumns must all be present for a row to count as the header.
var requiredColumns = []string{"mid", "amount"}

var delimiters = []rune{';', ',', '\t'}

// Parser reads EDC settlement CSV exports. The charset, delimiter and header
// row are detected; rows before the header (report titles, filters) and
// "Total" footers are skipped.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]validation.Payload, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRows(content, delim)
		if err != nil {
			continue
		}

		cols, headerIdx, ok := detectHeader(rows)
		if !ok {
			continue
		}

		return parseRows(cols, rows[headerIdx+1:]), nil
	}

	return nil, ErrNoHeader
}

func readRows(content []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps payload field names to their index in the row.
type colIndex map[string]int

func detectHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := normalizeHeader(cell)

			for _, c := range columns {
				if _, seen := cols[c.field]; seen {
					continue
				}

				for _, alias := range c.aliases {
					if name == alias {
						cols[c.field] = i
						break
					}
				}
			}
		}

		if hasAll(cols, requiredColumns) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func hasAll(cols colIndex, fields []string) bool {
	for _, f := range fields {
		if _, ok := cols[f]; !ok {
			return false
		}
	}

	return true
}

func parseRows(cols colIndex, rows [][]string) []validation.Payload {
	payloads := []validation.Payload{}

	for _, row := range rows {
		if isBlank(row) || isFooter(row) {
			continue
		}

		payload := validation.Payload{}

		for _, c := range columns {
			idx, ok := cols[c.field]
			if !ok {
				continue
			}

			s := cellValue(row, idx)
			if s == "" {
				continue
			}

			payload[c.field] = s

			if c.kind == cellNumber {
				// Unparseable numbers stay strings so validation reports them.
				if n, err := parseAmount(s); err == nil {
					payload[c.field] = n
				}
			}
		}

		payloads = append(payloads, payload)
	}

	return payloads
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", ".", " ", "-", " ").Replace(s)

	return strings.Join(strings.Fields(s), " ")
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// isFooter reports rows whose first non-empty cell starts with "total".
func isFooter(row []string) bool {
	for _, cell := range row {
		s := strings.ToLower(strings.TrimSpace(cell))
		if s == "" {
			continue
		}

		return strings.HasPrefix(s, "total")
	}

	return false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
