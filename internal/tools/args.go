package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Typed argument structs, one per tool. Optional booleans are pointers so an
// absent field can take its declared default.

type getOrderArgs struct {
	OrderID string `json:"orderId"`
}

type listOrdersArgs struct {
	Status            string `json:"status"`
	FinancialStatus   string `json:"financial_status"`
	FulfillmentStatus string `json:"fulfillment_status"`
	CreatedAtMin      string `json:"created_at_min"`
	CreatedAtMax      string `json:"created_at_max"`
	Limit             int    `json:"limit"`
}

type updateOrderArgs struct {
	OrderID string  `json:"orderId"`
	Note    *string `json:"note"`
	Tags    *string `json:"tags"`
	Email   *string `json:"email"`
}

type fulfillOrderArgs struct {
	OrderID         string  `json:"orderId"`
	LocationID      *int64  `json:"location_id"`
	TrackingNumber  *string `json:"tracking_number"`
	TrackingCompany *string `json:"tracking_company"`
	NotifyCustomer  *bool   `json:"notify_customer"`
}

type cancelOrderArgs struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
	Refund  *bool  `json:"refund"`
	Email   *bool  `json:"email"`
}

type createRefundArgs struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
	Reason  string  `json:"reason"`
	Restock *bool   `json:"restock"`
	Notify  *bool   `json:"notify"`
}

type analyticsArgs struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GroupBy   string `json:"group_by"`
}

// decodeArgs validates the raw argument map against the tool's published
// schema and, when valid, decodes it into the typed destination. Validation
// happens before any network call so malformed invocations never reach the
// upstream API.
func decodeArgs(def Definition, args map[string]any, dst any) error {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(def.InputSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate arguments: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid arguments for %s: %s", def.Name, strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

// boolOrDefault resolves an optional boolean argument against its default.
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
