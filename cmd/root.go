package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storeops",
	Short: "StoreOps back-office CLI",
	Long:  "Inventory, order and purchasing tooling for the StoreOps back office.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// ASCII banner on start (random font each run)
		fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
		fig := figure.NewFigure("StoreOps", fonts[rand.Intn(len(fonts))], true)
		fig.Print()
		fmt.Println()
	},
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
