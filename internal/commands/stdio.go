package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reamplc-eng/shopify-order-mcp/internal/rpc"
)

// stdioCmd serves the tool catalog over a JSON-RPC stream on stdin/stdout.
var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve tool requests over a JSON-RPC stream on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := rpc.NewServer(newDispatcher(currentConfig), "shopify-order-mcp", appVersion)
		return srv.Serve(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
