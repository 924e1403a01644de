package mcp

import (
	"context"
	"os"
	"slices"
	"strings"
	"testing"

	"produce-mcp/internal/catalog"
	"produce-mcp/internal/config"
	"produce-mcp/internal/roles"
	"produce-mcp/internal/visuals"

	"github.com/google/go-cmp/cmp"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/segmentio/encoding/json"
)

type harness struct {
	session *sdk.ClientSession
	server  *Server
	opened  []string
}

func connect(t *testing.T, role roles.Role) *harness {
	t.Helper()
	ctx := context.Background()

	cat, err := catalog.Load(ctx, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	cfg := &config.AppConfig{
		Role:                role,
		OutputDir:           t.TempDir(),
		EnableMermaidCharts: true,
	}
	h := &harness{server: NewServer(cfg, cat, "test")}
	h.server.openFile = func(path string) error {
		h.opened = append(h.opened, path)
		return nil
	}

	serverTransport, clientTransport := sdk.NewInMemoryTransports()
	if _, err := h.server.mcp.Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}
	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	h.session, err = client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = h.session.Close() })
	return h
}

func textOf(res *sdk.CallToolResult) string {
	var sb strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(*sdk.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func call[T any](t *testing.T, h *harness, name string, args map[string]any) T {
	t.Helper()
	res, err := h.session.CallTool(context.Background(), &sdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if res.IsError {
		t.Fatalf("%s returned tool error: %s", name, textOf(res))
	}

	var out T
	if err := json.Unmarshal([]byte(textOf(res)), &out); err != nil {
		t.Fatalf("%s: decode result: %v", name, err)
	}
	return out
}

// callFails asserts the call is rejected either as a protocol error or as a
// tool error result, and returns the error text.
func callFails(t *testing.T, h *harness, name string, args map[string]any) string {
	t.Helper()
	res, err := h.session.CallTool(context.Background(), &sdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return err.Error()
	}
	if !res.IsError {
		t.Fatalf("%s: expected an error, got %s", name, textOf(res))
	}
	return textOf(res)
}

func TestTools_RegisteredPerRole(t *testing.T) {
	tests := []struct {
		role roles.Role
		want []string
	}{
		{roles.Customer, []string{"calendar_build", "catalog_facets", "catalog_item_detail", "catalog_search"}},
		{roles.Sales, []string{"calendar_build", "deals_list", "deals_pipeline", "deals_upsert"}},
		{roles.Admin, []string{"calendar_build", "products_delete", "products_list", "products_upsert"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			h := connect(t, tt.role)
			res, err := h.session.ListTools(context.Background(), &sdk.ListToolsParams{})
			if err != nil {
				t.Fatalf("ListTools: %v", err)
			}

			var got []string
			for _, tool := range res.Tools {
				got = append(got, tool.Name)
			}
			slices.Sort(got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tools mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalogSearch(t *testing.T) {
	h := connect(t, roles.Customer)

	out := call[SearchOutput](t, h, "catalog_search", map[string]any{"category": "りんご", "sort": "price-low"})
	if out.Count != 2 || len(out.Items) != 2 {
		t.Fatalf("expected 2 apples, got %+v", out)
	}
	if out.Items[0].Variety != "王林" || out.Items[0].Price != "350" {
		t.Errorf("unexpected first item: %+v", out.Items[0])
	}
	if out.Items[1].Variety != "ふじ" || out.Items[1].TotalVolume != 1200 {
		t.Errorf("unexpected second item: %+v", out.Items[1])
	}

	none := call[SearchOutput](t, h, "catalog_search", map[string]any{"text": "ドリアン"})
	if none.Count != 0 || none.Items == nil {
		t.Errorf("expected an empty, non-null list: %+v", none)
	}

	if msg := callFails(t, h, "catalog_search", map[string]any{"sort": "cheapest"}); !strings.Contains(msg, "cheapest") {
		t.Errorf("error should name the bad sort order: %s", msg)
	}
}

func TestCatalogFacets(t *testing.T) {
	h := connect(t, roles.Customer)

	out := call[FacetsOutput](t, h, "catalog_facets", map[string]any{})
	if out.Categories[0] != catalog.AllFilter || out.Origins[0] != catalog.AllFilter {
		t.Errorf("facets should lead with the all sentinel: %+v", out)
	}
	if len(out.Categories) != 10 || len(out.Origins) != 11 {
		t.Errorf("expected 9 categories and 10 origins plus sentinel, got %d and %d", len(out.Categories), len(out.Origins))
	}
}

func TestCatalogItemDetail(t *testing.T) {
	h := connect(t, roles.Customer)

	out := call[ItemDetail](t, h, "catalog_item_detail", map[string]any{"id": "1"})
	if out.Variety != "ふじ" || out.Producer == nil || out.Producer.MemberCount != 48 {
		t.Fatalf("unexpected detail: %+v", out)
	}
	if len(out.SKUs) != 3 || out.SKUs[0].Price != "4200" {
		t.Errorf("unexpected SKUs: %+v", out.SKUs)
	}
	want := []PeriodDTO{{StartMonth: 11, StartThird: "early", EndMonth: 2, EndThird: "late", TotalVolume: 1200, Label: "11月上旬〜2月下旬"}}
	if diff := cmp.Diff(want, out.Periods); diff != "" {
		t.Errorf("periods mismatch (-want +got):\n%s", diff)
	}

	if msg := callFails(t, h, "catalog_item_detail", map[string]any{"id": "999"}); !strings.Contains(msg, "not found") {
		t.Errorf("expected not found, got %s", msg)
	}
}

func TestCalendarBuild(t *testing.T) {
	h := connect(t, roles.Customer)

	out := call[CalendarOutput](t, h, "calendar_build", map[string]any{"category": "りんご", "include_chart": true})

	if len(out.Slots) != 36 || out.Slots[0] != "1月上旬" || out.Slots[35] != "12月下旬" {
		t.Errorf("unexpected slot labels: %v", out.Slots)
	}
	if len(out.Rows) != 2 || out.Rows[0].Variety != "ふじ" || out.Rows[1].Variety != "王林" {
		t.Fatalf("rows should follow catalog order: %+v", out.Rows)
	}

	// ふじ ships 1200t in one period, the largest period total of the selection.
	if out.MaxVolume == nil || *out.MaxVolume != 1200 {
		t.Fatalf("unexpected max volume: %v", out.MaxVolume)
	}

	fuji := out.Rows[0]
	if len(fuji.Cells) != 12 || fuji.BaseColor != "red" {
		t.Fatalf("unexpected fuji row: %+v", fuji)
	}
	first := fuji.Cells[0]
	if first.Slot != 0 || first.Label != "1月上旬" || first.Tooltip != "収量: 100.0トン" || first.Intensity != "lightest" {
		t.Errorf("unexpected first fuji cell: %+v", first)
	}
	if last := fuji.Cells[11]; last.Slot != 35 {
		t.Errorf("wrapped period should end in slot 35, got %d", last.Slot)
	}
	// 142.9t against 1200t is below the 0.2 floor.
	if got := out.Rows[1].Cells[0].Intensity; got != "lightest" {
		t.Errorf("王林 intensity = %s, want lightest", got)
	}

	if !strings.Contains(out.Chart, "gantt") || !strings.Contains(out.SupplyChart, "xychart-beta") {
		t.Error("charts requested but missing")
	}
	if len(out.Categories) != 1 || out.Categories[0].Label != "りんご" {
		t.Errorf("unexpected legend: %+v", out.Categories)
	}
}

func TestCalendarBuild_NoMatches(t *testing.T) {
	h := connect(t, roles.Sales)

	out := call[CalendarOutput](t, h, "calendar_build", map[string]any{"category": "メロン", "include_chart": true})
	if out.MaxVolume != nil {
		t.Errorf("empty selection should have no max volume, got %v", *out.MaxVolume)
	}
	if len(out.Rows) != 0 || out.Message != visuals.EmptyMessage {
		t.Errorf("unexpected empty output: %+v", out)
	}
	if out.Chart != "" {
		t.Error("empty selection should have no chart")
	}
}

func TestCalendarBuild_ChartsDisabled(t *testing.T) {
	h := connect(t, roles.Customer)
	h.server.enableMermaidCharts = false

	out := call[CalendarOutput](t, h, "calendar_build", map[string]any{"include_chart": true})
	if out.Chart != "" || out.SupplyChart != "" {
		t.Error("charts should be suppressed when disabled in config")
	}
}

func TestCalendarBuild_SaveHTML(t *testing.T) {
	h := connect(t, roles.Admin)
	h.server.openBrowser = true

	out := call[CalendarOutput](t, h, "calendar_build", map[string]any{"origin": "山梨県", "save_html": true})
	if out.HTMLPath == "" {
		t.Fatal("expected html_path")
	}

	page, err := os.ReadFile(out.HTMLPath)
	if err != nil {
		t.Fatalf("html not written: %v", err)
	}
	if !strings.Contains(string(page), "シャインマスカット") {
		t.Error("page missing selected item")
	}
	if diff := cmp.Diff([]string{out.HTMLPath}, h.opened); diff != "" {
		t.Errorf("browser calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDeals(t *testing.T) {
	h := connect(t, roles.Sales)

	list := call[DealsListOutput](t, h, "deals_list", map[string]any{"status": "成約"})
	if list.Count != 1 || list.Deals[0].CompanyName != "オーガニック市場" {
		t.Errorf("unexpected won deals: %+v", list)
	}

	pipeline := call[PipelineOutput](t, h, "deals_pipeline", map[string]any{})
	if pipeline.Total != "515000" || pipeline.Weighted != "379000" || pipeline.Won != "85000" {
		t.Errorf("unexpected pipeline amounts: %+v", pipeline)
	}

	created := call[DealDTO](t, h, "deals_upsert", map[string]any{
		"company_name":    "北海道マルシェ",
		"product_name":    "王林（青森県産）",
		"expected_amount": "120000.50",
		"status":          "引合",
		"probability":     30,
	})
	if len(created.ID) != 26 {
		t.Errorf("new deal should get a ULID, got %q", created.ID)
	}
	if created.ExpectedAmount != "120000.5" || created.WeightedAmount != "36000.15" {
		t.Errorf("unexpected amounts: %+v", created)
	}

	pipeline = call[PipelineOutput](t, h, "deals_pipeline", map[string]any{})
	if pipeline.Total != "635000.5" || pipeline.Stages[0] != (StageCount{Status: "引合", Count: 1}) {
		t.Errorf("pipeline not updated: %+v", pipeline)
	}

	bad := map[string]any{
		"company_name":    "北海道マルシェ",
		"product_name":    "王林",
		"expected_amount": "lots",
		"status":          "引合",
		"probability":     30,
	}
	if msg := callFails(t, h, "deals_upsert", bad); !strings.Contains(msg, "expected_amount") {
		t.Errorf("error should name the field: %s", msg)
	}

	if msg := callFails(t, h, "deals_list", map[string]any{"status": "保留"}); !strings.Contains(msg, "保留") {
		t.Errorf("error should name the status: %s", msg)
	}
}

func TestProducts(t *testing.T) {
	h := connect(t, roles.Admin)

	list := call[ProductsListOutput](t, h, "products_list", map[string]any{})
	if list.Count != 12 {
		t.Fatalf("expected 12 fixture products, got %d", list.Count)
	}

	created := call[ItemDetail](t, h, "products_upsert", map[string]any{
		"variety":  "デコポン",
		"category": "柑橘類",
		"origin":   "熊本県",
		"price":    "450",
		"periods": []map[string]any{
			{"start_month": 12, "start_third": "late", "end_month": 1, "end_third": "early", "total_volume": 90},
		},
	})
	if created.ID == "" || !created.Available || created.Periods[0].Label != "12月下旬〜1月上旬" {
		t.Errorf("unexpected created product: %+v", created)
	}

	// Updating fuji keeps the producer group and SKUs the form does not carry.
	updated := call[ItemDetail](t, h, "products_upsert", map[string]any{
		"id":       "1",
		"variety":  "ふじ",
		"category": "りんご",
		"origin":   "青森県",
		"price":    "400",
	})
	if updated.Price != "400" || updated.Producer == nil || len(updated.SKUs) != 3 {
		t.Errorf("update dropped stored fields: %+v", updated)
	}

	del := call[ProductDeleteOutput](t, h, "products_delete", map[string]any{"id": created.ID})
	if !del.Deleted {
		t.Error("expected deleted=true")
	}
	if msg := callFails(t, h, "products_delete", map[string]any{"id": created.ID}); !strings.Contains(msg, "not found") {
		t.Errorf("second delete should be not found: %s", msg)
	}

	badPeriod := map[string]any{
		"variety":  "謎の果実",
		"category": "その他",
		"origin":   "沖縄県",
		"price":    "100",
		"periods": []map[string]any{
			{"start_month": 13, "start_third": "early", "end_month": 1, "end_third": "early", "total_volume": 10},
		},
	}
	if msg := callFails(t, h, "products_upsert", badPeriod); !strings.Contains(msg, "invalid") {
		t.Errorf("expected invalid record error, got %s", msg)
	}

	if msg := callFails(t, h, "products_upsert", map[string]any{"variety": "", "category": "りんご", "origin": "青森県", "price": "-1"}); !strings.Contains(msg, "invalid") {
		t.Errorf("expected invalid record error, got %s", msg)
	}

	overRated := map[string]any{"variety": "シナノゴールド", "category": "りんご", "origin": "長野県", "price": "380", "rating": 7}
	if msg := callFails(t, h, "products_upsert", overRated); !strings.Contains(msg, "rating") {
		t.Errorf("expected rating error, got %s", msg)
	}
	if got := call[ProductsListOutput](t, h, "products_list", map[string]any{}).Count; got != 12 {
		t.Errorf("rejected products must not be stored: %d products", got)
	}
}
