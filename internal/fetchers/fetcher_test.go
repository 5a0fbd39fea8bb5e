package fetchers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tvenergy/internal/config"
)

// mapSource serves CSV content from memory
type mapSource map[string]string

func (m mapSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("no such file %s", path)
	}
	return []byte(body), nil
}

var testFiles = mapSource{
	"Ex5/Ex5_TV_energy_55inchtv_byScreenType.csv":  "screen_type,avg_consumption,count\nLCD,95.2,40\nOLED,120.5,12\nbad,,3\n",
	"data/Ex5_TV_energy_Allsizes_byScreenType.csv": "Screen_Tech,Mean(Labelled energy consumption (kWh/year))\nLCD,180.3\nLED,210.9\nOLED,301.4\n",
	"Ex5/Ex5_ARE_Spot_Prices.csv":                  "Year,NSW,VIC\n1999,25.4,27.1\n2000,30.2,0\n",
	"data/Ex5_TV_energy.csv":                       "brand,screen_tech,screensize,energy_consumpt,star2\nSony,LED,55,200,4\nLG,OLED,65,320,3.5\n",
}

func TestDataFetcherPerChart(t *testing.T) {
	f := NewDataFetcher(testFiles, config.DefaultChartsConfig())
	ctx := context.Background()

	bar, err := f.FetchBar(ctx)
	if err != nil || len(bar) != 2 {
		t.Errorf("FetchBar() = %d records, %v", len(bar), err)
	}
	donut, err := f.FetchDonut(ctx)
	if err != nil || len(donut) != 3 {
		t.Errorf("FetchDonut() = %d records, %v", len(donut), err)
	}
	line, err := f.FetchSpotPrices(ctx)
	if err != nil || len(line.Series) != 2 || len(line.Series[1].Values) != 1 {
		t.Errorf("FetchSpotPrices() = %+v, %v", line, err)
	}
	scatter, err := f.FetchScatter(ctx)
	if err != nil || len(scatter) != 2 {
		t.Errorf("FetchScatter() = %d records, %v", len(scatter), err)
	}
}

func TestDataFetcherErrors(t *testing.T) {
	charts := config.DefaultChartsConfig()
	src := mapSource{
		charts.Bar.DataPath:   "ScreenType,AverageConsumption\nLCD,n/a\n",
		charts.Donut.DataPath: "",
	}
	f := NewDataFetcher(src, charts)
	ctx := context.Background()

	if _, err := f.FetchBar(ctx); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("FetchBar() error = %v, want ErrEmptyDataset", err)
	}
	if _, err := f.FetchDonut(ctx); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("FetchDonut() error = %v, want ErrEmptyDataset", err)
	}
	_, err := f.FetchScatter(ctx)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("FetchScatter() error = %v, want ErrFetch", err)
	}
	if errors.Is(err, ErrEmptyDataset) {
		t.Error("a fetch failure must not read as an empty dataset")
	}
}

func TestDataFetcherFetchAll(t *testing.T) {
	charts := config.DefaultChartsConfig()
	src := mapSource{}
	for k, v := range testFiles {
		src[k] = v
	}
	delete(src, charts.Scatter.DataPath)

	data, err := NewDataFetcher(src, charts).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(data.Bar) != 2 || len(data.Donut) != 3 || len(data.Line.Series) != 2 {
		t.Errorf("unexpected datasets %+v", data)
	}
	if len(data.Scatter) != 0 {
		t.Errorf("scatter should be empty, got %v", data.Scatter)
	}
	if _, ok := data.Errors["scatter"]; !ok || len(data.Errors) != 1 {
		t.Errorf("expected only a scatter error, got %v", data.Errors)
	}
	if data.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestDataFetcherFetchAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewDataFetcher(testFiles, config.DefaultChartsConfig()).FetchAll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchAll() error = %v, want context.Canceled", err)
	}
}
