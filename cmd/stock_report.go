package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storeops.GO/config"
	inventoryRepo "storeops.GO/model/repository/inventory"
	stockService "storeops.GO/service/stock"
)

var reportLowOnly bool

var stockReportCmd = &cobra.Command{
	Use:   "stock:report",
	Short: "Print aggregate stock counts and low-stock variants",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		if !reportLowOnly {
			repo, rerr := inventoryRepo.NewInventoryRepository(db)
			if rerr != nil {
				fmt.Printf("Report failed: %v\n", rerr)
				return
			}
			counts, cerr := repo.AggregateCounts()
			if cerr != nil {
				fmt.Printf("Report failed: %v\n", cerr)
				return
			}
			fmt.Printf(`
=== Stock Report ===
Records:      %d
Out of stock: %d
Low stock:    %d
====================
`, counts.Total, counts.OutOfStock, counts.LowStock)
		}

		rows, err := stockService.LowStock(db)
		if err != nil {
			fmt.Printf("Low stock listing failed: %v\n", err)
			return
		}
		if len(rows) == 0 {
			fmt.Println("No variants at or below reorder point.")
			return
		}
		fmt.Printf("%-24s %-32s %8s %8s %s\n", "SKU", "PRODUCT", "QTY", "REORDER", "STATUS")
		for _, row := range rows {
			fmt.Printf("%-24s %-32s %8d %8d %s\n",
				row.SKU, row.ProductName, row.AvailableQty, row.ReorderPoint, row.Status)
		}
	},
}

func init() {
	stockReportCmd.Flags().BoolVar(&reportLowOnly, "low-only", false, "Skip the aggregate header, list low-stock rows only")
	rootCmd.AddCommand(stockReportCmd)
}
