// Package tools declares the order-management tool catalog and dispatches
// tool invocations against the Shopify Admin API.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/reamplc-eng/shopify-order-mcp/internal/shopify"
)

// Dispatcher executes one tool invocation end-to-end: validate arguments,
// issue exactly one upstream request, and shape the outcome into a Result.
type Dispatcher struct {
	client  *shopify.Client
	catalog *Catalog
}

// NewDispatcher wires a dispatcher to an upstream client and a catalog.
func NewDispatcher(client *shopify.Client, catalog *Catalog) *Dispatcher {
	return &Dispatcher{client: client, catalog: catalog}
}

// Catalog returns the catalog this dispatcher serves.
func (d *Dispatcher) Catalog() *Catalog { return d.catalog }

// Call runs the named tool. Every outcome, including unknown tools, argument
// validation failures, upstream rejections, and panics, comes back as a
// Result; nothing propagates past this boundary.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = errorResult("tool %s failed: %v", name, r)
		}
	}()

	def, ok := d.catalog.Lookup(name)
	if !ok {
		return errorResult("Unknown tool: %s", name)
	}

	out, err := d.dispatch(ctx, def, args)
	if err != nil {
		return errorResult("Error: %v", err)
	}
	return textResult(out)
}

func (d *Dispatcher) dispatch(ctx context.Context, def Definition, args map[string]any) (string, error) {
	switch def.Name {
	case "get_order":
		return d.getOrder(ctx, def, args)
	case "list_orders":
		return d.listOrders(ctx, def, args)
	case "update_order":
		return d.updateOrder(ctx, def, args)
	case "fulfill_order":
		return d.fulfillOrder(ctx, def, args)
	case "cancel_order":
		return d.cancelOrder(ctx, def, args)
	case "create_refund":
		return d.createRefund(ctx, def, args)
	case "get_order_analytics":
		return d.orderAnalytics(ctx, def, args)
	}
	return "", fmt.Errorf("no handler for tool %s", def.Name)
}

func (d *Dispatcher) getOrder(ctx context.Context, def Definition, args map[string]any) (string, error) {
	var a getOrderArgs
	if err := decodeArgs(def, args, &a); err != nil {
		return "", err
	}
	order, err := d.client.GetOrder(ctx, a.OrderID)
	if err != nil {
		return "", err
	}
	return prettyJSON(order), nil
}

func (d *Dispatcher) listOrders(ctx context.Context, def Definition, args map[string]any) (string, error) {
	var a listOrdersArgs
	if err := decodeArgs(def, args, &a); err != nil {
		return "", err
	}
	page, err := d.client.ListOrders(ctx, shopify.ListParams{
		Status:            a.Status,
		FinancialStatus:   a.FinancialStatus,
		FulfillmentStatus: a.FulfillmentStatus,
		CreatedAtMin:      a.CreatedAtMin,
		CreatedAtMax:      a.CreatedAtMax,
		Limit:             a.Limit,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Found %d orders:\n\n%s", len(page.Orders), prettyJSON(page.Raw)), nil
}

func (d *Dispatcher) updateOrder(ctx context.Context, def Definition, args map[string]any) (string, error) {
	var a updateOrderArgs
	if err := decodeArgs(def, args, &a); err != nil {
		return "", err
	}
	order, err := d.client.UpdateOrder(ctx, a.OrderID, shopify.OrderUpdate{
		Note:  a.Note,
		Tags:  a.Tags,
		Email: a.Email,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Order %s updated successfully:\n\n%s", a.OrderID, prettyJSON(order)), nil
}

func (d *Dispatcher) fulfillOrder(ctx context.Context, def Definition, args map[string]any) (string, error) {
	var a fulfillOrderArgs
	if err := decodeArgs(def, args, &a); err != nil {
		return "", err
	}
	fulfillment, err := d.client.CreateFulfillment(ctx, a.OrderID, shopify.Fulfillment{
		LocationID:      a.LocationID,
		TrackingNumber:  a.TrackingNumber,
		TrackingCompany: a.TrackingCompany,
		NotifyCustomer:  boolOrDefault(a.NotifyCustomer, true),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Order %s fulfilled successfully:\n\n%s", a.OrderID, prettyJSON(fulfillment)), nil
}

func (d *Dispatcher) cancelOrder(ctx context.Context, def Definition, args map[string]any) (string, error) {
	var a cancelOrderArgs
	if err := decodeArgs(def, args, &a); err != nil {
		return "", err
	}
	reason := a.Reason
	if reason == "" {
		reason = "customer"
	}
	order, err := d.client.CancelOrder(ctx, a.OrderID, shopify.CancelOptions{
		Reason: reason,
		Refund: boolOrDefault(a.Refund, false),
		Email:  boolOrDefault(a.Email, true),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Order %s cancelled successfully:\n\n%s", a.OrderID, prettyJSON(order)), nil
}

func (d *Dispatcher) createRefund(ctx context.Context, def Definition, args map[string]any) (string, error) {
	var a createRefundArgs
	if err := decodeArgs(def, args, &a); err != nil {
		return "", err
	}
	refund, err := d.client.CreateRefund(ctx, a.OrderID, shopify.Refund{
		Amount:  a.Amount,
		Reason:  a.Reason,
		Restock: boolOrDefault(a.Restock, true),
		Notify:  boolOrDefault(a.Notify, true),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Refund created successfully for order %s:\n\n%s", a.OrderID, prettyJSON(refund)), nil
}

func (d *Dispatcher) orderAnalytics(ctx context.Context, def Definition, args map[string]any) (string, error) {
	var a analyticsArgs
	if err := decodeArgs(def, args, &a); err != nil {
		return "", err
	}
	groupBy := a.GroupBy
	if groupBy == "" {
		groupBy = "day"
	}
	page, err := d.client.ListOrders(ctx, shopify.ListParams{
		Status:       "any",
		CreatedAtMin: a.StartDate,
		CreatedAtMax: a.EndDate,
		Limit:        shopify.MaxPageSize,
	})
	if err != nil {
		return "", err
	}
	report := buildReport(page.Orders, groupBy)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode analytics: %w", err)
	}
	return fmt.Sprintf("Order Analytics (%s to %s):\n\n%s", a.StartDate, a.EndDate, data), nil
}

// prettyJSON re-indents raw JSON without reshaping it, so echoed upstream
// payloads stay byte-equivalent after decoding.
func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
