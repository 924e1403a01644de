package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// Catalog provides thread-safe, in-memory storage for items and deals.
// Data is injected at construction; nothing is persisted.
type Catalog struct {
	mu    sync.RWMutex
	items []Item
	deals []Deal
	newID func() string
}

// New creates a Catalog over the given fixtures. The slices are copied.
func New(items []Item, deals []Deal) *Catalog {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		deals: append([]Deal(nil), deals...),
		newID: func() string { return ulid.Make().String() },
	}
	for _, it := range items {
		c.items = append(c.items, it.clone())
	}
	return c
}

// Items returns a snapshot of every item in catalog order.
func (c *Catalog) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.clone()
	}
	return out
}

// Item looks up a single item by ID.
func (c *Catalog) Item(id string) (Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.itemIndex(id)
	if idx < 0 {
		return Item{}, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	return c.items[idx].clone(), nil
}

// UpsertItem creates an item when it has no ID, otherwise replaces the
// existing item with the same ID.
func (c *Catalog) UpsertItem(it Item) (Item, error) {
	if err := it.Validate(); err != nil {
		return Item{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if it.ID == "" {
		it.ID = c.newID()
		c.items = append(c.items, it.clone())
		log.Info().Str("id", it.ID).Str("variety", it.Variety).Msg("Item created")
		return it, nil
	}

	idx := c.itemIndex(it.ID)
	if idx < 0 {
		return Item{}, fmt.Errorf("item %q: %w", it.ID, ErrNotFound)
	}
	c.items[idx] = it.clone()
	log.Info().Str("id", it.ID).Str("variety", it.Variety).Msg("Item updated")
	return it, nil
}

// DeleteItem removes an item by ID.
func (c *Catalog) DeleteItem(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.itemIndex(id)
	if idx < 0 {
		return fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	log.Info().Str("id", id).Msg("Item deleted")
	return nil
}

// Categories lists distinct item categories in first-seen order.
func (c *Catalog) Categories() []string {
	return c.distinct(func(it Item) string { return it.Category })
}

// Origins lists distinct item origins in first-seen order.
func (c *Catalog) Origins() []string {
	return c.distinct(func(it Item) string { return it.Origin })
}

// Deals returns a snapshot of every deal.
func (c *Catalog) Deals() []Deal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Deal(nil), c.deals...)
}

// UpsertDeal creates a deal when it has no ID, otherwise replaces it.
func (c *Catalog) UpsertDeal(d Deal) (Deal, error) {
	if err := d.Validate(); err != nil {
		return Deal{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if d.ID == "" {
		d.ID = c.newID()
		c.deals = append(c.deals, d)
		log.Info().Str("id", d.ID).Str("company", d.CompanyName).Msg("Deal created")
		return d, nil
	}

	for i := range c.deals {
		if c.deals[i].ID == d.ID {
			c.deals[i] = d
			log.Info().Str("id", d.ID).Str("status", string(d.Status)).Msg("Deal updated")
			return d, nil
		}
	}
	return Deal{}, fmt.Errorf("deal %q: %w", d.ID, ErrNotFound)
}

// Pipeline summarises the current deal book.
func (c *Catalog) Pipeline() Pipeline {
	return SummarizePipeline(c.Deals())
}

func (c *Catalog) itemIndex(id string) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == id })
}

func (c *Catalog) distinct(field func(Item) string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, it := range c.items {
		v := strings.TrimSpace(field(it))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
