package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/encoding/json"
	"golang.org/x/sync/errgroup"
)

const (
	ItemsFile = "items.json"
	DealsFile = "deals.json"
)

//go:embed fixtures/*.json
var embedded embed.FS

// Fixtures returns the bundled fixture directory.
func Fixtures() fs.FS {
	sub, err := fs.Sub(embedded, "fixtures")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// Load reads the catalog fixtures from dir, or from the bundled fixtures when
// dir is empty. items.json is required; deals.json is optional.
func Load(ctx context.Context, dir string) (*Catalog, error) {
	fsys := Fixtures()
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return LoadFS(ctx, fsys)
}

// LoadFS reads and validates the fixture files from fsys in parallel.
func LoadFS(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	itemSchema, dealSchema, err := schemas()
	if err != nil {
		return nil, err
	}

	var (
		items []Item
		deals []Deal
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var f itemsFile
		if err := readValidated(ctx, fsys, ItemsFile, itemSchema, &f); err != nil {
			return err
		}
		for _, r := range f.Items {
			it, err := r.toItem()
			if err != nil {
				return fmt.Errorf("%s: %w: %v", ItemsFile, ErrInvalidRecord, err)
			}
			items = append(items, it)
		}
		return nil
	})

	g.Go(func() error {
		var f dealsFile
		err := readValidated(ctx, fsys, DealsFile, dealSchema, &f)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("file", DealsFile).Msg("No deals fixture, starting with an empty deal book")
			return nil
		}
		if err != nil {
			return err
		}
		for _, r := range f.Deals {
			d := r.toDeal()
			if err := d.Validate(); err != nil {
				return fmt.Errorf("%s: deal %s: %w", DealsFile, r.ID, err)
			}
			deals = append(deals, d)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkUniqueIDs(items); err != nil {
		return nil, err
	}

	log.Info().Int("items", len(items)).Int("deals", len(deals)).Msg("Catalog fixtures loaded")
	return New(items, deals), nil
}

func readValidated(ctx context.Context, fsys fs.FS, name string, schema *jsonschema.Resolved, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrInvalidRecord, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrInvalidRecord, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrInvalidRecord, err)
	}
	return nil
}

func checkUniqueIDs(items []Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return fmt.Errorf("%s: %w: duplicate item id %q", ItemsFile, ErrInvalidRecord, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
