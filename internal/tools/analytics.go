package tools

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/reamplc-eng/shopify-order-mcp/internal/shopify"
)

// Report is the client-side aggregate over one page of orders. All rates are
// defined for empty input: a range with no orders reports zeros, never NaN.
type Report struct {
	TotalOrders       int      `json:"total_orders"`
	TotalSales        float64  `json:"total_sales"`
	AverageOrderValue float64  `json:"average_order_value"`
	FulfillmentRate   float64  `json:"fulfillment_rate"`
	GroupBy           string   `json:"group_by"`
	Buckets           []Bucket `json:"buckets"`
}

// Bucket is one period of the grouped breakdown.
type Bucket struct {
	Period string  `json:"period"`
	Orders int     `json:"orders"`
	Sales  float64 `json:"sales"`
}

// buildReport reduces a fetched order list into aggregate metrics, grouped by
// day, week, or month of the order's creation time.
func buildReport(orders []shopify.Order, groupBy string) Report {
	report := Report{GroupBy: groupBy, Buckets: []Bucket{}}
	report.TotalOrders = len(orders)

	byPeriod := map[string]*Bucket{}
	fulfilled := 0
	for _, o := range orders {
		price, err := strconv.ParseFloat(o.TotalPrice, 64)
		if err != nil {
			price = 0
		}
		report.TotalSales += price
		if o.FulfillmentStatus == "fulfilled" {
			fulfilled++
		}

		period := bucketKey(o.CreatedAt, groupBy)
		b, ok := byPeriod[period]
		if !ok {
			b = &Bucket{Period: period}
			byPeriod[period] = b
		}
		b.Orders++
		b.Sales += price
	}

	if report.TotalOrders > 0 {
		report.AverageOrderValue = report.TotalSales / float64(report.TotalOrders)
		report.FulfillmentRate = 100 * float64(fulfilled) / float64(report.TotalOrders)
	}

	for _, b := range byPeriod {
		report.Buckets = append(report.Buckets, *b)
	}
	sort.Slice(report.Buckets, func(i, j int) bool {
		return report.Buckets[i].Period < report.Buckets[j].Period
	})
	return report
}

// bucketKey maps an order creation timestamp to its period label. Timestamps
// the platform sends that fail to parse land in an "unknown" bucket rather
// than dropping the order from the totals.
func bucketKey(createdAt, groupBy string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return "unknown"
	}
	switch groupBy {
	case "week":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case "month":
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
