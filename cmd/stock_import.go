package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"storeops.GO/config"
	stockService "storeops.GO/service/stock"
)

var (
	stockImportFile  string
	stockImportBatch int
)

var stockImportCmd = &cobra.Command{
	Use:   "stock:import",
	Short: "Import stock levels from CSV into the inventory ledger",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(stockImportFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		start := time.Now()
		res, err := stockService.ImportStockCSV(db, f, stockImportBatch)
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Stock Import Report ===
Imported:   %d
Skipped:    %d
Warnings:   %d
Total time: %s
===========================
`, res.Imported, res.Skipped, len(res.Warnings), time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	stockImportCmd.Flags().StringVarP(&stockImportFile, "file", "f", "", "CSV file path (required)")
	stockImportCmd.MarkFlagRequired("file")
	stockImportCmd.Flags().IntVar(&stockImportBatch, "batch-size", 500, "Batch size for DB operations")
	rootCmd.AddCommand(stockImportCmd)
}
