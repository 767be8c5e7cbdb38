package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Payload is a decoded JSON object.
type Payload map[string]any

// Decode reads a JSON object from r. An empty body decodes to an empty payload.
func Decode(r io.Reader) (Payload, error) {
	var p Payload

	if err := json.NewDecoder(r).Decode(&p); err != nil {
		if err == io.EOF {
			return Payload{}, nil
		}

		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	if p == nil {
		p = Payload{}
	}

	return p, nil
}

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

func (p Payload) StringPtr(key string) *string {
	s, ok := p[key].(string)
	if !ok {
		return nil
	}

	return &s
}

func (p Payload) Float(key string) float64 {
	n, _ := toFloat(p[key])
	return n
}

func (p Payload) FloatPtr(key string) *float64 {
	n, ok := toFloat(p[key])
	if !ok {
		return nil
	}

	return &n
}

// DatePtr parses a normalized YYYY-MM-DD value.
func (p Payload) DatePtr(key string) *time.Time {
	s, ok := p[key].(string)
	if !ok {
		return nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}

	return &t
}
