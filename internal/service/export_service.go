package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"docuflow/internal/models"
	"docuflow/internal/storage"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Export is a generated attachment: file bytes plus the download name.
type Export struct {
	Filename string
	Content  []byte
}

// ExportService flattens a document's extracted-data blob into tabular
// form. A blob with a "transactions" array becomes one row per element
// with fixed Date/Description/Amount columns; anything else becomes a
// single row with one column per top-level key, in the blob's own key
// order.
type ExportService struct {
	store  storage.Store
	logger *zap.Logger
}

func NewExportService(store storage.Store, logger *zap.Logger) *ExportService {
	return &ExportService{store: store, logger: logger}
}

var transactionColumns = []string{"date", "description", "amount"}

func (s *ExportService) ExportCSV(ctx context.Context, documentID int) (Export, error) {
	doc, table, err := s.resolve(ctx, documentID)
	if err != nil {
		return Export{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.headers); err != nil {
		return Export{}, fmt.Errorf("failed to write csv: %w", err)
	}
	for _, row := range table.rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return Export{}, fmt.Errorf("failed to write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, fmt.Errorf("failed to write csv: %w", err)
	}

	return Export{
		Filename: replaceExtension(doc.Name, ".csv"),
		Content:  buf.Bytes(),
	}, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, documentID int) (Export, error) {
	doc, table, err := s.resolve(ctx, documentID)
	if err != nil {
		return Export{}, err
	}

	f := excelize.NewFile()
	const sheet = "Data"
	f.SetSheetName("Sheet1", sheet)

	header := make([]interface{}, len(table.headers))
	for i, h := range table.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return Export{}, fmt.Errorf("failed to build worksheet: %w", err)
	}
	for i, row := range table.rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return Export{}, fmt.Errorf("failed to build worksheet: %w", err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return Export{}, fmt.Errorf("failed to build worksheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Export{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return Export{
		Filename: replaceExtension(doc.Name, ".xlsx"),
		Content:  buf.Bytes(),
	}, nil
}

type exportTable struct {
	headers []string
	rows    [][]interface{}
}

func (s *ExportService) resolve(ctx context.Context, documentID int) (models.Document, exportTable, error) {
	doc, ok := s.store.GetDocument(ctx, documentID)
	if !ok {
		return models.Document{}, exportTable{}, ErrDocumentNotFound
	}
	ed, ok := s.store.GetExtractedDataByDocument(ctx, documentID)
	if !ok {
		return models.Document{}, exportTable{}, ErrExtractionNotFound
	}
	table, err := tabulate(ed.Data)
	if err != nil {
		return models.Document{}, exportTable{}, fmt.Errorf("failed to shape extracted data: %w", err)
	}
	return doc, table, nil
}

func tabulate(raw json.RawMessage) (exportTable, error) {
	values, keys, err := decodeObject(raw)
	if err != nil {
		return exportTable{}, err
	}

	if txs, ok := values["transactions"].([]interface{}); ok {
		rows := make([][]interface{}, 0, len(txs))
		for _, tx := range txs {
			obj, _ := tx.(map[string]interface{})
			row := make([]interface{}, len(transactionColumns))
			for i, col := range transactionColumns {
				row[i] = obj[col]
			}
			rows = append(rows, row)
		}
		return exportTable{headers: []string{"Date", "Description", "Amount"}, rows: rows}, nil
	}

	row := make([]interface{}, len(keys))
	for i, k := range keys {
		row[i] = values[k]
	}
	return exportTable{headers: keys, rows: [][]interface{}{row}}, nil
}

// decodeObject decodes a JSON object into its values plus the top-level
// keys in source order, which encoding/json's map decoding discards.
func decodeObject(raw json.RawMessage) (map[string]interface{}, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("extracted data is not a JSON object")
	}

	values := make(map[string]interface{})
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}
	return values, keys, nil
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		// Strip trailing-zero noise ("1250.00" -> "1250") the way the
		// worksheet path does; keep the literal for anything float64
		// cannot represent.
		if f, err := val.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

// cellValue keeps numbers numeric in the worksheet instead of flattening
// everything to text.
func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case nil, string, bool:
		return val
	default:
		return formatCell(val)
	}
}

func replaceExtension(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
