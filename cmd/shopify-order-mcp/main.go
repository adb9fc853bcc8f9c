// Command shopify-order-mcp exposes Shopify order-management operations as
// MCP tools over HTTP or a stdio JSON-RPC stream.
package main

import "github.com/reamplc-eng/shopify-order-mcp/internal/commands"

func main() {
	commands.Execute()
}
