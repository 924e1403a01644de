package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"produce-mcp/internal/calendar"
	"produce-mcp/internal/catalog"
	"produce-mcp/internal/roles"
	"produce-mcp/internal/visuals"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	formatText    = "text"
	formatMermaid = "mermaid"
	formatHTML    = "html"
)

var (
	calCategory string
	calOrigin   string
	calFormat   string
	calOut      string
	calOpen     bool

	openFile = browser.OpenFile
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Render the annual shipment calendar",
	Long: `Render the shipment calendar for the catalog, optionally filtered by category and origin.
Formats: text (terminal heat map), mermaid (gantt chart) or html (standalone page).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Role.Allows(roles.Calendar) {
			return fmt.Errorf("role %s has no calendar view", cfg.Role)
		}
		if calOpen && calFormat != formatHTML {
			return fmt.Errorf("--open requires --format %s", formatHTML)
		}

		view, err := calendar.Build(catalog.CalendarItems(produce.Filter(calCategory, calOrigin)))
		if err != nil {
			return err
		}

		out, err := renderCalendar(view, calFormat)
		if err != nil {
			return err
		}

		path := calOut
		if path == "" && calOpen {
			path = filepath.Join(cfg.OutputDir, "calendar-"+ulid.Make().String()+".html")
		}
		if path == "" {
			_, err := cmd.OutOrStdout().Write(out)
			return err
		}

		if err := writeFile(path, out); err != nil {
			return err
		}
		log.Info().Str("path", path).Str("format", calFormat).Msg("Calendar written")

		if calOpen || (cfg.OpenBrowser && calFormat == formatHTML) {
			if err := openFile(path); err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
		}
		return nil
	},
}

func renderCalendar(view *calendar.View, format string) ([]byte, error) {
	switch format {
	case formatText:
		return []byte(visuals.RenderTerminal(view)), nil
	case formatMermaid:
		chart := visuals.GenerateShipmentGantt(view)
		if chart == "" {
			chart = visuals.EmptyMessage
		}
		return []byte(chart + "\n"), nil
	case formatHTML:
		return visuals.RenderHTML(view, "年間出荷スケジュール")
	}
	return nil, fmt.Errorf("unknown format %q: want %s, %s or %s", format, formatText, formatMermaid, formatHTML)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

func init() {
	calendarCmd.Flags().StringVar(&calCategory, "category", "", "only items in this category (すべて for all)")
	calendarCmd.Flags().StringVar(&calOrigin, "origin", "", "only items from this origin (すべて for all)")
	calendarCmd.Flags().StringVarP(&calFormat, "format", "f", formatText, "output format: text, mermaid or html")
	calendarCmd.Flags().StringVarP(&calOut, "out", "o", "", "write to this file instead of stdout")
	calendarCmd.Flags().BoolVar(&calOpen, "open", false, "open the HTML calendar in the default browser")
}
