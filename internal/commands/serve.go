package commands

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/reamplc-eng/shopify-order-mcp/internal/server"
)

// serveCmd runs the MCP tool endpoints over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool catalog and call endpoints over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig
		if cfg.MCPToken == "" {
			log.Println("WARN: MCP_TOKEN not set; /mcp endpoints will be open. Set MCP_TOKEN to secure.")
		}
		if !cfg.CredentialPresent() {
			log.Println("INFO: SHOPIFY_ACCESS_TOKEN not set; every tool call will fail until configured.")
		}

		srv := server.New(server.Config{
			Port:              cfg.ListenPort(),
			Token:             cfg.MCPToken,
			CredentialPresent: cfg.CredentialPresent(),
		}, newDispatcher(cfg), nil)

		addr := ":" + cfg.ListenPort()
		certFile := os.Getenv("TLS_CERT_FILE")
		keyFile := os.Getenv("TLS_KEY_FILE")
		if certFile != "" && keyFile != "" {
			log.Printf("Starting MCP HTTP server on %s (TLS)\n", addr)
			return http.ListenAndServeTLS(addr, certFile, keyFile, srv.Router())
		}
		log.Printf("Starting MCP HTTP server on %s\n", addr)
		return http.ListenAndServe(addr, srv.Router())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
