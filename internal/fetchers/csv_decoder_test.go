package fetchers

import (
	"strings"
	"testing"
)

func TestDecodeCSV(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRows  int
		checkKey  string
		checkRow  int
		wantValue string
	}{
		{
			name:      "simple file",
			input:     "ScreenType,AverageConsumption,Count\nLCD,95.2,40\nOLED,120.5,12\n",
			wantRows:  2,
			checkKey:  "AverageConsumption",
			checkRow:  1,
			wantValue: "120.5",
		},
		{
			name:      "header names trimmed",
			input:     " Year , NSW \n2001,35.1\n",
			wantRows:  1,
			checkKey:  "NSW",
			wantValue: "35.1",
		},
		{
			name:      "utf-8 BOM stripped",
			input:     "\xEF\xBB\xBFScreen_Tech,Mean\nLED,210\n",
			wantRows:  1,
			checkKey:  "Screen_Tech",
			wantValue: "LED",
		},
		{
			name:      "short row reads missing cells as empty",
			input:     "brand,screensize,energy_consumpt\nSony,55\n",
			wantRows:  1,
			checkKey:  "energy_consumpt",
			wantValue: "",
		},
		{
			name:      "quoted header with parentheses",
			input:     "Screen_Tech,\"Mean(Labelled energy consumption (kWh/year))\"\nOLED,\"301.4\"\n",
			wantRows:  1,
			checkKey:  "Mean(Labelled energy consumption (kWh/year))",
			wantValue: "301.4",
		},
		{
			name:     "header only",
			input:    "Year,NSW\n",
			wantRows: 0,
		},
		{
			name:     "empty input",
			input:    "",
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeCSV([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeCSV() error = %v", err)
			}
			if len(records) != tt.wantRows {
				t.Fatalf("DecodeCSV() returned %d rows, want %d", len(records), tt.wantRows)
			}
			if tt.checkKey == "" {
				return
			}
			got, ok := records[tt.checkRow][tt.checkKey]
			if !ok {
				t.Fatalf("row %d has no key %q: %v", tt.checkRow, tt.checkKey, records[tt.checkRow])
			}
			if got != tt.wantValue {
				t.Errorf("row %d [%q] = %q, want %q", tt.checkRow, tt.checkKey, got, tt.wantValue)
			}
		})
	}
}

func TestDecodeCSVLegacyEncoding(t *testing.T) {
	var b strings.Builder
	b.WriteString("brand,screen_tech,screensize\n")
	for i := 0; i < 30; i++ {
		// 0xE9 is e-acute in Windows-1252 and ISO-8859-1
		b.WriteString("Caf\xe9 T\xe9l\xe9vision,LCD,55\n")
	}

	records, err := DecodeCSV([]byte(b.String()))
	if err != nil {
		t.Fatalf("DecodeCSV() error = %v", err)
	}
	if len(records) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(records))
	}
	if got := records[0]["brand"]; got != "Café Télévision" {
		t.Errorf("brand = %q, want %q", got, "Café Télévision")
	}
}

func TestDetectCharset(t *testing.T) {
	if got := DetectCharset([]byte("Year,NSW\n2001,35.1\n")); got != "utf-8" {
		t.Errorf("DetectCharset(ascii) = %q, want utf-8", got)
	}
	if got := DetectCharset([]byte("brand\nGrundig Fernseher für Küche\n")); got != "utf-8" {
		t.Errorf("DetectCharset(utf-8) = %q, want utf-8", got)
	}
}
