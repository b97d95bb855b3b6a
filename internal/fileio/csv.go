package fileio

import (
	"encoding/csv"
	"fmt"
	"io"
)

// extractCSV читает CSV через decodeReader (кодировка определяется по первым
// байтам) и склеивает ячейки в плоский текст.
func extractCSV(r io.Reader) (string, error) {
	cr := csv.NewReader(decodeReader(r))
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return joinRows(rows), nil
}
