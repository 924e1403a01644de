package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"produce-mcp/internal/calendar"
	"produce-mcp/internal/catalog"

	"github.com/shopspring/decimal"
)

type GeneratorConfig struct {
	Count int
	Seed  uint64
}

var (
	categories = []string{"りんご", "いちご", "ぶどう", "もも", "トマト", "きゅうり", "レタス", "米", "柑橘類", "メロン"}
	origins    = []string{"青森県", "長野県", "山梨県", "静岡県", "福岡県", "熊本県", "新潟県", "愛媛県", "北海道", "沖縄県"}
)

// Generate builds Count synthetic items. Every fifth item ships in a single
// slot and every fifth-plus-one wraps the new year; the rest are random.
// The same seed always yields the same catalog.
func Generate(cfg GeneratorConfig) []catalog.Item {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	items := make([]catalog.Item, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		category := categories[rng.IntN(len(categories))]

		var periods []calendar.ShipmentPeriod
		switch i % 5 {
		case 0:
			periods = append(periods, period(rng, rng.IntN(calendar.SlotsPerYear), 1))
		case 1:
			// Start in Nov/Dec and run at least into January.
			start := 30 + rng.IntN(6)
			periods = append(periods, period(rng, start, calendar.SlotsPerYear-start+1+rng.IntN(6)))
		default:
			for n := 1 + rng.IntN(2); n > 0; n-- {
				periods = append(periods, period(rng, rng.IntN(calendar.SlotsPerYear), 1+rng.IntN(12)))
			}
		}

		items = append(items, catalog.Item{
			ID:        fmt.Sprintf("gen-%d", i+1),
			Variety:   fmt.Sprintf("%s品種%d", category, i+1),
			Category:  category,
			Origin:    origins[rng.IntN(len(origins))],
			Price:     decimal.NewFromInt(int64(100 + rng.IntN(1400))),
			Rating:    math.Round((3+rng.Float64()*2)*10) / 10,
			Available: rng.IntN(10) > 0,
			Periods:   periods,
		})
	}
	return items
}

// period covers length consecutive slots from start, wrapping past slot 35.
func period(rng *rand.Rand, start, length int) calendar.ShipmentPeriod {
	end := (start + length - 1) % calendar.SlotsPerYear
	startMonth, startThird, _ := calendar.SlotPosition(start)
	endMonth, endThird, _ := calendar.SlotPosition(end)
	return calendar.ShipmentPeriod{
		StartMonth:  startMonth,
		StartThird:  startThird,
		EndMonth:    endMonth,
		EndThird:    endThird,
		TotalVolume: math.Round((10+rng.Float64()*1990)*10) / 10,
	}
}

// Save writes items as items.json under outDir.
func Save(outDir string, items []catalog.Item) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, catalog.ItemsFile)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := catalog.WriteItems(f, items); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
