package fetchers

import (
	"math"
	"testing"

	"tvenergy/internal/config"
	"tvenergy/internal/models"
)

func newTestNormalizer() *DataNormalizer {
	return NewDataNormalizer(config.DefaultChartsConfig())
}

func TestNormalizeBarFieldFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		row       models.RawRecord
		wantTech  string
		wantAvg   float64
		wantCount float64
	}{
		{
			name:      "only screen_type populated",
			row:       models.RawRecord{"screen_type": "QLED", "avg_consumption": "88.4"},
			wantTech:  "QLED",
			wantAvg:   88.4,
			wantCount: 1,
		},
		{
			name:      "blank primary column falls through",
			row:       models.RawRecord{"ScreenType": " ", "Technology": "OLED", "Power": "130", "Units": "7"},
			wantTech:  "OLED",
			wantAvg:   130,
			wantCount: 7,
		},
		{
			name:      "zero count becomes one",
			row:       models.RawRecord{"ScreenType": "LCD", "AverageConsumption": "95", "Count": "0"},
			wantTech:  "LCD",
			wantAvg:   95,
			wantCount: 1,
		},
		{
			name:      "first candidate wins",
			row:       models.RawRecord{"ScreenType": "LED", "Type": "other", "AverageConsumption": "70", "Consumption": "999"},
			wantTech:  "LED",
			wantAvg:   70,
			wantCount: 1,
		},
		{
			name:      "fractional count kept as given",
			row:       models.RawRecord{"ScreenType": "LCD", "AverageConsumption": "95", "Count": "12.5"},
			wantTech:  "LCD",
			wantAvg:   95,
			wantCount: 12.5,
		},
		{
			name:      "infinite count becomes one",
			row:       models.RawRecord{"ScreenType": "LCD", "AverageConsumption": "95", "Count": "Inf"},
			wantTech:  "LCD",
			wantAvg:   95,
			wantCount: 1,
		},
	}

	n := newTestNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.NormalizeBar([]models.RawRecord{tt.row})
			if len(got) != 1 {
				t.Fatalf("expected 1 record, got %d", len(got))
			}
			r := got[0]
			if r.Technology != tt.wantTech || r.AvgConsumption != tt.wantAvg || r.Count != tt.wantCount {
				t.Errorf("got %+v, want {%s %v %v}", r, tt.wantTech, tt.wantAvg, tt.wantCount)
			}
		})
	}
}

func TestNormalizeNumericSentinels(t *testing.T) {
	n := newTestNormalizer()

	donut := n.NormalizeDonut([]models.RawRecord{
		{"Screen_Tech": "LCD", "Mean(Labelled energy consumption (kWh/year))": "n/a"},
		{"Screen_Tech": "LED"},
		{"Screen_Tech": "OLED", "Mean(Labelled energy consumption (kWh/year))": "Inf"},
		{"Screen_Tech": "QLED", "Mean(Labelled energy consumption (kWh/year))": "-infinity"},
	})
	for i, d := range donut {
		if !math.IsNaN(d.Consumption) {
			t.Errorf("record %d: expected NaN consumption, got %v", i, d.Consumption)
		}
	}

	scatter := n.NormalizeScatter([]models.RawRecord{
		{"Brand_Reg": "Hisense", "Screen_Tech": "LED", "screensize": "65", "energy_consumpt": "250.5", "star2": "4.5"},
	})
	want := models.ScatterRecord{Brand: "Hisense", ScreenTech: "LED", ScreenSize: 65, Consumption: 250.5, Stars: 4.5}
	if scatter[0] != want {
		t.Errorf("NormalizeScatter() = %+v, want %+v", scatter[0], want)
	}
}

func TestNormalizeSpotPrices(t *testing.T) {
	n := newTestNormalizer()
	rows := n.NormalizeSpotPrices([]models.RawRecord{
		{"Year": "2005", "NSW": "38.9", "Victoria": "29.1", "QLD": "", "South Australia": "x"},
		{"Date": "2006", "average": "41"},
	})

	if rows[0].Year != 2005 {
		t.Errorf("Year = %v, want 2005", rows[0].Year)
	}
	if rows[0].Prices["NSW"] != 38.9 || rows[0].Prices["VIC"] != 29.1 {
		t.Errorf("unexpected prices %v", rows[0].Prices)
	}
	if rows[0].Prices["QLD"] != 0 || rows[0].Prices["SA"] != 0 {
		t.Errorf("missing prices must read as 0, got %v", rows[0].Prices)
	}
	if rows[1].Year != 2006 || rows[1].Prices[AverageSeries] != 41 {
		t.Errorf("unexpected second row %+v", rows[1])
	}
}
