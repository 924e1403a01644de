package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"produce-mcp/cmd/fixturegen/engine"
)

func main() {
	outDir := flag.String("out", "./.cache/fixtures", "Output directory for items.json")
	count := flag.Int("count", 200, "Number of items to generate")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed; reuse it to regenerate the same catalog")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Count: *count,
		Seed:  *seed,
	}

	fmt.Printf("Generating %d items (seed %d) to %s...\n", cfg.Count, cfg.Seed, *outDir)

	path, err := engine.Save(*outDir, engine.Generate(cfg))
	if err != nil {
		fmt.Printf("Failed to save fixtures: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Wrote %s; serve it with DATA_PATH=%s\n", path, *outDir)
}
