package view

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/settle/internal/export"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
)

func TestWriteExport(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	bca := &transactiontype.TransactionType{Name: "BCA", Type1: "Debit"}

	tests := []struct {
		name     string
		listTxs  []*transaction.Transaction
		listErr  error
		wantErr  bool
		wantFile bool
	}{
		{
			name:     "WritesWorkbook",
			listTxs:  []*transaction.Transaction{{MID: "000071234567", TransactionType: bca, Amount: 100, NetAmount: 99, Status: "settled"}},
			wantFile: true,
		},
		{
			name:    "FailedExportLeavesNoFile",
			listErr: errors.New("db down"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := transaction.NewMockRepository(ctrl)
			repo.EXPECT().ListTransactions(gomock.Any()).Return(tt.listTxs, tt.listErr)

			svc := export.NewService(transaction.NewService(repo, transaction.NewMockTypeLookup(ctrl)))
			dir := filepath.Join(t.TempDir(), "exports")

			path, totals, err := writeExport(context.Background(), svc, dir, now)

			want := filepath.Join(dir, "transactions_20240315.xlsx")
			_, statErr := os.Stat(want)

			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, path)
				assert.Nil(t, totals)
				assert.True(t, os.IsNotExist(statErr), "expected %s to be removed", want)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, want, path)
			require.NoError(t, statErr)
			require.Len(t, totals, 1)
			assert.Equal(t, "BCA (Debit)", totals[0].Label)
		})
	}
}
