package fileio

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ExtractText — выберет парсер по расширению и вернёт текстовое содержимое
// файла одной UTF-8 строкой.
func ExtractText(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return extractXLSX(r)
	case ".xls":
		return extractXLS(r)
	case ".csv":
		return extractCSV(r)
	case ".txt", ".text", ".md", ".log":
		return extractPlain(r)
	default:
		return "", fmt.Errorf("unsupported file: %s", filename)
	}
}

// decodeReader — автоопределение кодировки по первым байтам и конвертация в
// UTF-8. Из коробки: UTF-8, Windows-1251, UTF-16 по BOM.
func decodeReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	switch cs {
	case "windows-1251", "cp1251":
		return transform.NewReader(br, charmap.Windows1251.NewDecoder())
	case "utf-16le":
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	case "utf-16be":
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
	default:
		// считаем UTF-8
		return br
	}
}

// joinRows — склейка табличных данных в плоский текст: ячейки через пробел,
// строки через \n; полностью пустые строки выбрасываются.
func joinRows(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		line := strings.TrimSpace(strings.Join(row, " "))
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
