package fetchers

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"tvenergy/internal/models"
)

const detectWindow = 2048

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// legacyCharsets maps chardet charset names to decoders. Anything else that
// is not valid UTF-8 is read as Windows-1252.
var legacyCharsets = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-9":   charmap.ISO8859_9,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
}

// DetectCharset returns the lower-cased charset of data. Valid UTF-8 is
// reported as "utf-8" without consulting the detector.
func DetectCharset(data []byte) string {
	if utf8.Valid(data) {
		return "utf-8"
	}
	window := data
	if len(window) > detectWindow {
		window = window[:detectWindow]
	}
	result, err := chardet.NewTextDetector().DetectBest(window)
	if err != nil || result == nil {
		return "windows-1252"
	}
	return strings.ToLower(result.Charset)
}

func utf8Reader(data []byte) io.Reader {
	data = bytes.TrimPrefix(data, utf8BOM)
	charset := DetectCharset(data)
	if charset == "utf-8" {
		return bytes.NewReader(data)
	}
	enc, ok := legacyCharsets[charset]
	if !ok {
		enc = charmap.Windows1252
	}
	return transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
}

// DecodeCSV parses CSV bytes into records keyed by the trimmed header names.
// Rows shorter than the header read missing cells as empty; cells past the
// header are dropped. Blank input yields no records and no error.
func DecodeCSV(data []byte) ([]models.RawRecord, error) {
	cr := csv.NewReader(bufio.NewReader(utf8Reader(data)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []models.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rec := make(models.RawRecord, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
