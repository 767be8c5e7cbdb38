package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/settle/internal/importer"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

const typeID = "7f4c2b1e-3a5d-4e6f-8a9b-0c1d2e3f4a5b"

func TestService_Transactions(t *testing.T) {
	tests := []struct {
		name       string
		format     importer.Format
		csv        string
		typeID     string
		wantLen    int
		wantErr    error
		wantFields []string
	}{
		{
			name:    "ValidRows",
			csv:     "MID;Amount;Net Amount;Status;Date\nM1;100;99;settled;03/15/2024\nM2;200;198;settled;\n",
			typeID:  typeID,
			wantLen: 2,
		},
		{
			name:       "ViolationsFromEveryRow",
			csv:        "MID;Amount;Net Amount;Status\nM1;-1;99;settled\n;200;198;\n",
			typeID:     typeID,
			wantFields: []string{"rows[0].amount", "rows[1].mid", "rows[1].status"},
		},
		{
			name:       "MissingType",
			csv:        "MID;Amount;Net Amount;Status\nM1;1;1;settled\n",
			wantFields: []string{"rows[0].transaction_type"},
		},
		{
			name:    "HeaderOnly",
			csv:     "MID;Amount;Net Amount;Status\n",
			typeID:  typeID,
			wantErr: importer.ErrNoRows,
		},
		{
			name:    "UnknownFormat",
			format:  "ofx",
			csv:     "MID;Amount\nM1;1\n",
			typeID:  typeID,
			wantErr: importer.ErrUnknownFormat,
		},
	}

	svc := importer.NewService(validation.New())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := svc.Transactions(tt.format, strings.NewReader(tt.csv), tt.typeID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, importer.IsInputError(err))

				return
			}

			if tt.wantFields != nil {
				var violations validation.Errors
				require.ErrorAs(t, err, &violations)

				fields := make([]string, len(violations))
				for i, v := range violations {
					fields[i] = v.Field
				}

				assert.Equal(t, tt.wantFields, fields)

				return
			}

			require.NoError(t, err)
			require.Len(t, params, tt.wantLen)
			assert.Equal(t, typeID, params[0].TransactionTypeID.String())
			require.NotNil(t, params[0].Date)
			assert.Equal(t, "2024-03-15", params[0].Date.Format("2006-01-02"))
			assert.Nil(t, params[1].Date)
		})
	}
}
