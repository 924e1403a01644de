package catalog

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// WriteItems encodes items in the items.json fixture format. Every item is
// validated first so the output always loads back.
func WriteItems(w io.Writer, items []Item) error {
	f := itemsFile{Items: make([]itemRecord, 0, len(items))}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %s: %w", it.ID, err)
		}
		f.Items = append(f.Items, fromItem(it))
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", ItemsFile, err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
