// Package commands wires the CLI surface for the order MCP server.
package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reamplc-eng/shopify-order-mcp/internal/config"
	"github.com/reamplc-eng/shopify-order-mcp/internal/shopify"
	"github.com/reamplc-eng/shopify-order-mcp/internal/tools"
)

var (
	cfgFile       string
	currentConfig *config.Config
	appVersion    = "dev"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "shopify-order-mcp",
	Short: "MCP server exposing Shopify order-management tools",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		currentConfig = &cfg
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.Version = appVersion
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (JSON)")
	rootCmd.PersistentFlags().String("shop-domain", "", "store hostname, e.g. my-store.myshopify.com")
	rootCmd.PersistentFlags().String("access-token", "", "Admin API access token")
	rootCmd.PersistentFlags().String("api-version", "", "Admin API version")
	rootCmd.PersistentFlags().String("port", "", "HTTP listening port")
	rootCmd.PersistentFlags().String("mcp-token", "", "bearer token protecting the /mcp routes")
	rootCmd.PersistentFlags().Int("timeout", 0, "upstream request timeout in seconds (0 = default)")

	_ = viper.BindPFlag("shopDomain", rootCmd.PersistentFlags().Lookup("shop-domain"))
	_ = viper.BindPFlag("accessToken", rootCmd.PersistentFlags().Lookup("access-token"))
	_ = viper.BindPFlag("apiVersion", rootCmd.PersistentFlags().Lookup("api-version"))
	_ = viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("mcpToken", rootCmd.PersistentFlags().Lookup("mcp-token"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	_ = viper.BindEnv("shopDomain", "SHOPIFY_SHOP_DOMAIN")
	_ = viper.BindEnv("accessToken", "SHOPIFY_ACCESS_TOKEN")
	_ = viper.BindEnv("apiVersion", "SHOPIFY_API_VERSION")
	_ = viper.BindEnv("port", "PORT")
	_ = viper.BindEnv("mcpToken", "MCP_TOKEN")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "read config: %v\n", err)
			os.Exit(1)
		}
	}
}

// newDispatcher builds the upstream client and tool dispatcher from the
// merged configuration.
func newDispatcher(cfg *config.Config) *tools.Dispatcher {
	client := shopify.New(
		cfg.ShopDomain,
		cfg.AccessToken,
		cfg.AdminAPIVersion(),
		&http.Client{Timeout: cfg.RequestTimeout()},
	)
	return tools.NewDispatcher(client, tools.NewCatalog())
}
