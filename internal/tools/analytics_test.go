package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/reamplc-eng/shopify-order-mcp/internal/shopify"
)

func TestBuildReportEmpty(t *testing.T) {
	r := buildReport(nil, "day")
	if r.TotalOrders != 0 || r.TotalSales != 0 {
		t.Errorf("totals = %+v", r)
	}
	if r.AverageOrderValue != 0 {
		t.Errorf("average over zero orders = %v, want 0", r.AverageOrderValue)
	}
	if r.FulfillmentRate != 0 {
		t.Errorf("fulfillment rate over zero orders = %v, want 0", r.FulfillmentRate)
	}
	if len(r.Buckets) != 0 {
		t.Errorf("buckets = %v", r.Buckets)
	}
}

func TestBuildReportTotals(t *testing.T) {
	orders := []shopify.Order{
		{TotalPrice: "10.00", FulfillmentStatus: "fulfilled", CreatedAt: "2024-01-01T10:00:00Z"},
		{TotalPrice: "30.00", FulfillmentStatus: "", CreatedAt: "2024-01-01T12:00:00Z"},
		{TotalPrice: "20.00", FulfillmentStatus: "partial", CreatedAt: "2024-01-02T09:00:00Z"},
		{TotalPrice: "40.00", FulfillmentStatus: "fulfilled", CreatedAt: "2024-01-02T18:00:00Z"},
	}
	r := buildReport(orders, "day")
	if r.TotalOrders != 4 {
		t.Errorf("total_orders = %d", r.TotalOrders)
	}
	if r.TotalSales != 100 {
		t.Errorf("total_sales = %v", r.TotalSales)
	}
	if r.AverageOrderValue != 25 {
		t.Errorf("average_order_value = %v", r.AverageOrderValue)
	}
	if r.FulfillmentRate != 50 {
		t.Errorf("fulfillment_rate = %v", r.FulfillmentRate)
	}
	if len(r.Buckets) != 2 {
		t.Fatalf("buckets = %v", r.Buckets)
	}
	if r.Buckets[0].Period != "2024-01-01" || r.Buckets[0].Orders != 2 || r.Buckets[0].Sales != 40 {
		t.Errorf("first bucket = %+v", r.Buckets[0])
	}
	if r.Buckets[1].Period != "2024-01-02" || r.Buckets[1].Sales != 60 {
		t.Errorf("second bucket = %+v", r.Buckets[1])
	}
}

func TestBuildReportGrouping(t *testing.T) {
	orders := []shopify.Order{
		{TotalPrice: "1.00", CreatedAt: "2024-01-01T00:00:00Z"}, // ISO week 2024-W01
		{TotalPrice: "1.00", CreatedAt: "2024-01-08T00:00:00Z"}, // ISO week 2024-W02
		{TotalPrice: "1.00", CreatedAt: "2024-02-15T00:00:00Z"},
	}

	week := buildReport(orders, "week")
	if len(week.Buckets) != 3 {
		t.Fatalf("week buckets = %v", week.Buckets)
	}
	if week.Buckets[0].Period != "2024-W01" || week.Buckets[1].Period != "2024-W02" || week.Buckets[2].Period != "2024-W07" {
		t.Errorf("week periods = %v", week.Buckets)
	}

	month := buildReport(orders, "month")
	if len(month.Buckets) != 2 {
		t.Fatalf("month buckets = %v", month.Buckets)
	}
	if month.Buckets[0].Period != "2024-01" || month.Buckets[0].Orders != 2 {
		t.Errorf("month bucket = %+v", month.Buckets[0])
	}
}

func TestBuildReportBadData(t *testing.T) {
	orders := []shopify.Order{
		{TotalPrice: "not-a-price", CreatedAt: "garbage"},
		{TotalPrice: "5.00", CreatedAt: "2024-03-01T00:00:00Z"},
	}
	r := buildReport(orders, "day")
	if r.TotalOrders != 2 {
		t.Errorf("total_orders = %d", r.TotalOrders)
	}
	if r.TotalSales != 5 {
		t.Errorf("total_sales = %v", r.TotalSales)
	}
	found := false
	for _, b := range r.Buckets {
		if b.Period == "unknown" && b.Orders == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("unparseable created_at must land in the unknown bucket: %v", r.Buckets)
	}
}

func TestOrderAnalyticsTool(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("created_at_min") != "2024-01-01" || q.Get("created_at_max") != "2024-01-31" {
			t.Errorf("date range query = %v", q)
		}
		if q.Get("limit") != "250" {
			t.Errorf("limit = %q, want 250", q.Get("limit"))
		}
		if _, ok := q["status"]; ok {
			t.Error("status=any must be omitted for analytics listing")
		}
		_, _ = w.Write([]byte(`{"orders":[
			{"id":1,"total_price":"10.00","fulfillment_status":"fulfilled","created_at":"2024-01-05T00:00:00Z"},
			{"id":2,"total_price":"20.00","fulfillment_status":null,"created_at":"2024-01-06T00:00:00Z"}
		]}`))
	})
	res := d.Call(context.Background(), "get_order_analytics", map[string]any{
		"start_date": "2024-01-01", "end_date": "2024-01-31",
	})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}
	text := resultText(t, res)
	if !strings.HasPrefix(text, "Order Analytics (2024-01-01 to 2024-01-31):\n\n") {
		t.Fatalf("summary = %q", text)
	}
	var report Report
	if err := json.Unmarshal([]byte(strings.SplitN(text, "\n\n", 2)[1]), &report); err != nil {
		t.Fatalf("report not json: %v", err)
	}
	if report.TotalOrders != 2 || report.TotalSales != 30 || report.AverageOrderValue != 15 || report.FulfillmentRate != 50 {
		t.Errorf("report = %+v", report)
	}
	if report.GroupBy != "day" {
		t.Errorf("group_by default = %q", report.GroupBy)
	}
}

func TestOrderAnalyticsEmptyRange(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders":[]}`))
	})
	res := d.Call(context.Background(), "get_order_analytics", map[string]any{
		"start_date": "2030-01-01", "end_date": "2030-01-31",
	})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}
	text := resultText(t, res)
	if strings.Contains(text, "NaN") || strings.Contains(text, "Inf") {
		t.Errorf("report contains non-numeric values: %q", text)
	}
	var report Report
	if err := json.Unmarshal([]byte(strings.SplitN(text, "\n\n", 2)[1]), &report); err != nil {
		t.Fatalf("report not json: %v", err)
	}
	if report.AverageOrderValue != 0 || report.FulfillmentRate != 0 {
		t.Errorf("empty-range rates = %+v, want zeros", report)
	}
}
