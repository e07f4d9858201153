// Package custom is the extension point: register CLI commands, cron jobs and
// HTTP routes from init() without touching the core packages.
package custom

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"storeops.GO/api"
	"storeops.GO/cmd"
	"storeops.GO/config"
	"storeops.GO/cron"
)

func init() {
	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println("Hello from custom command")
		},
	})

	// Cron job
	cron.Register("customping", "@every 1m", func(args ...string) {
		fmt.Println("Custom cron: ping at", args)
	})

	// HTTP route
	api.RegisterGET("/version", func(c echo.Context) error {
		name := "StoreOps"
		if config.AppConfig != nil && config.AppConfig.AppName != "" {
			name = config.AppConfig.AppName
		}
		return c.JSON(200, map[string]string{
			"app":     name,
			"version": config.GetEnv("APP_VERSION", "dev"),
		})
	})
}
