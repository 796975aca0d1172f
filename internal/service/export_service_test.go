package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"docuflow/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func exportFixture(t *testing.T, data string) (*ExportService, int) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemStore()

	doc := store.CreateDocument(ctx, storage.NewDocument{
		Name:             "May Statement.pdf",
		OriginalFilename: "statement.pdf",
		ContentType:      "application/pdf",
		StoredFilename:   "1-abc-statement.pdf",
	})
	_, ok := store.RecordExtraction(ctx, doc.ID, 1, json.RawMessage(data), storage.PolicyAppend)
	require.True(t, ok)

	return NewExportService(store, zap.NewNop()), doc.ID
}

func TestExportCSV_Transactions(t *testing.T) {
	svc, docID := exportFixture(t, `{
		"accountNumber": "123",
		"transactions": [
			{"date": "05/02/2023", "description": "GROCERY STORE", "amount": -52.43},
			{"date": "05/05/2023", "description": "DIRECT DEPOSIT", "amount": 1250.00},
			{"date": "05/12/2023", "description": "TRANSFER", "amount": -200.00}
		]
	}`)

	export, err := svc.ExportCSV(context.Background(), docID)
	require.NoError(t, err)

	assert.Equal(t, "May Statement.csv", export.Filename)
	assert.Equal(t,
		"Date,Description,Amount\n"+
			"05/02/2023,GROCERY STORE,-52.43\n"+
			"05/05/2023,DIRECT DEPOSIT,1250\n"+
			"05/12/2023,TRANSFER,-200\n",
		string(export.Content))
}

func TestExportCSV_FlatObjectKeepsKeyOrder(t *testing.T) {
	svc, docID := exportFixture(t, `{"accountNumber":"123","balance":50}`)

	export, err := svc.ExportCSV(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, "accountNumber,balance\n123,50\n", string(export.Content))
}

func TestExportCSV_EscapesSpecialCharacters(t *testing.T) {
	svc, docID := exportFixture(t, `{
		"transactions": [
			{"date": "05/02/2023", "description": "COFFEE, \"TO GO\"", "amount": -4.5}
		]
	}`)

	export, err := svc.ExportCSV(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount\n05/02/2023,\"COFFEE, \"\"TO GO\"\"\",-4.5\n", string(export.Content))
}

func TestExportCSV_NotFound(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()
	svc := NewExportService(store, zap.NewNop())

	_, err := svc.ExportCSV(ctx, 999)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	doc := store.CreateDocument(ctx, storage.NewDocument{
		Name:             "empty.pdf",
		OriginalFilename: "empty.pdf",
		ContentType:      "application/pdf",
	})
	_, err = svc.ExportCSV(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrExtractionNotFound)
}

func TestExportXLSX_Transactions(t *testing.T) {
	svc, docID := exportFixture(t, `{
		"transactions": [
			{"date": "05/02/2023", "description": "GROCERY STORE", "amount": -52.43},
			{"date": "05/05/2023", "description": "DIRECT DEPOSIT", "amount": 1250.00}
		]
	}`)

	export, err := svc.ExportXLSX(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, "May Statement.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, rows[0])
	assert.Equal(t, "GROCERY STORE", rows[1][1])
	assert.Equal(t, "-52.43", rows[1][2])
	assert.Equal(t, "1250", rows[2][2])
}

func TestExportXLSX_FlatObject(t *testing.T) {
	svc, docID := exportFixture(t, `{"accountNumber":"123","balance":50}`)

	export, err := svc.ExportXLSX(context.Background(), docID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"accountNumber", "balance"}, rows[0])
	assert.Equal(t, []string{"123", "50"}, rows[1])
}

func TestTabulate_MissingTransactionKeysLeaveEmptyCells(t *testing.T) {
	table, err := tabulate(json.RawMessage(`{
		"transactions": [
			{"date": "05/02/2023"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, table.rows, 1)
	assert.Equal(t, "05/02/2023", formatCell(table.rows[0][0]))
	assert.Equal(t, "", formatCell(table.rows[0][1]))
	assert.Equal(t, "", formatCell(table.rows[0][2]))
}

func TestTabulate_RejectsNonObject(t *testing.T) {
	_, err := tabulate(json.RawMessage(`[1, 2, 3]`))
	assert.Error(t, err)
}
