package fileio

import (
	"fmt"
	"io"
)

// extractPlain — обычный текстовый файл: только перекодировка в UTF-8.
func extractPlain(r io.Reader) (string, error) {
	b, err := io.ReadAll(decodeReader(r))
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(b), nil
}
