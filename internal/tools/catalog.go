package tools

// Catalog is the fixed, ordered set of order-management tools. It is built
// once at startup and never mutated afterwards.
type Catalog struct {
	defs   []Definition
	byName map[string]Definition
}

// NewCatalog constructs the full tool catalog.
func NewCatalog() *Catalog {
	defs := []Definition{
		{
			Name:        "get_order",
			Description: "Get details of a specific order by its ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"orderId": map[string]any{
						"type":        "string",
						"description": "The ID of the order to retrieve",
					},
				},
				"required": []string{"orderId"},
			},
		},
		{
			Name:        "list_orders",
			Description: "List orders with optional filtering by status and date range (single page)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{
						"type":        "string",
						"description": "Filter by order status (open, closed, cancelled, any)",
					},
					"financial_status": map[string]any{
						"type":        "string",
						"description": "Filter by financial status (paid, pending, refunded, ...)",
					},
					"fulfillment_status": map[string]any{
						"type":        "string",
						"description": "Filter by fulfillment status (fulfilled, partial, unfulfilled)",
					},
					"created_at_min": map[string]any{
						"type":        "string",
						"description": "Only orders created at or after this date (ISO 8601)",
					},
					"created_at_max": map[string]any{
						"type":        "string",
						"description": "Only orders created at or before this date (ISO 8601)",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of orders to return",
						"minimum":     1,
						"maximum":     250,
						"default":     50,
					},
				},
			},
		},
		{
			Name:        "update_order",
			Description: "Update an order's note, tags, or customer email",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"orderId": map[string]any{
						"type":        "string",
						"description": "The ID of the order to update",
					},
					"note": map[string]any{
						"type":        "string",
						"description": "Note to attach to the order",
					},
					"tags": map[string]any{
						"type":        "string",
						"description": "Comma-separated tags for the order",
					},
					"email": map[string]any{
						"type":        "string",
						"description": "Customer email for the order",
					},
				},
				"required": []string{"orderId"},
			},
		},
		{
			Name:        "fulfill_order",
			Description: "Create a fulfillment record for an order",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"orderId": map[string]any{
						"type":        "string",
						"description": "The ID of the order to fulfill",
					},
					"location_id": map[string]any{
						"type":        "integer",
						"description": "The location fulfilling the order",
					},
					"tracking_number": map[string]any{
						"type":        "string",
						"description": "Shipment tracking number",
					},
					"tracking_company": map[string]any{
						"type":        "string",
						"description": "Shipping carrier name",
					},
					"notify_customer": map[string]any{
						"type":        "boolean",
						"description": "Whether to send the customer a shipping notification",
						"default":     true,
					},
				},
				"required": []string{"orderId"},
			},
		},
		{
			Name:        "cancel_order",
			Description: "Cancel an order, optionally refunding and notifying the customer",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"orderId": map[string]any{
						"type":        "string",
						"description": "The ID of the order to cancel",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Cancellation reason",
						"enum":        []string{"customer", "inventory", "fraud", "declined", "other"},
						"default":     "customer",
					},
					"refund": map[string]any{
						"type":        "boolean",
						"description": "Whether to refund the order on cancellation",
						"default":     false,
					},
					"email": map[string]any{
						"type":        "boolean",
						"description": "Whether to email the customer about the cancellation",
						"default":     true,
					},
				},
				"required": []string{"orderId"},
			},
		},
		{
			Name:        "create_refund",
			Description: "Create a refund for an order",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"orderId": map[string]any{
						"type":        "string",
						"description": "The ID of the order to refund",
					},
					"amount": map[string]any{
						"type":        "number",
						"description": "Refund amount",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Reason for the refund",
					},
					"restock": map[string]any{
						"type":        "boolean",
						"description": "Whether to restock the refunded items",
						"default":     true,
					},
					"notify": map[string]any{
						"type":        "boolean",
						"description": "Whether to notify the customer of the refund",
						"default":     true,
					},
				},
				"required": []string{"orderId", "amount", "reason"},
			},
		},
		{
			Name:        "get_order_analytics",
			Description: "Compute aggregate order metrics (totals, averages, fulfillment rate) over a date range",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"start_date": map[string]any{
						"type":        "string",
						"description": "Start of the date range (ISO 8601)",
					},
					"end_date": map[string]any{
						"type":        "string",
						"description": "End of the date range (ISO 8601)",
					},
					"group_by": map[string]any{
						"type":        "string",
						"description": "Bucket granularity for the breakdown",
						"enum":        []string{"day", "week", "month"},
						"default":     "day",
					},
				},
				"required": []string{"start_date", "end_date"},
			},
		},
	}

	byName := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	return &Catalog{defs: defs, byName: byName}
}

// Definitions returns the catalog in declaration order.
func (c *Catalog) Definitions() []Definition { return c.defs }

// Lookup returns the definition for a tool name.
func (c *Catalog) Lookup(name string) (Definition, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Len returns the number of tools in the catalog.
func (c *Catalog) Len() int { return len(c.defs) }
