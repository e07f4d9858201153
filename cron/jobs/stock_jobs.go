// Package jobs holds the scheduled job functions wired into config.CronJobs.
// The package opens its own database handle from the environment; it cannot
// import config without creating a cycle.
package jobs

import (
	"fmt"
	"log"
	"os"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	stockService "storeops.GO/service/stock"
)

var (
	dbOnce sync.Once
	dbConn *gorm.DB
)

func db() *gorm.DB {
	dbOnce.Do(func() {
		dsn := os.Getenv("MYSQL_DSN")
		if dsn == "" {
			user := os.Getenv("MYSQL_USER")
			pass := os.Getenv("MYSQL_PASS")
			host := os.Getenv("MYSQL_HOST")
			port := os.Getenv("MYSQL_PORT")
			name := os.Getenv("MYSQL_DB")
			if port == "" {
				port = "3306"
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local&timeout=5s&readTimeout=10s&writeTimeout=10s",
				user, pass, host, port, name)
		}
		conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			log.Printf("cron jobs: database unavailable: %v", err)
			return
		}
		dbConn = conn
	})
	return dbConn
}

// StockSummaryJob recomputes the aggregate stock counts and warms the cache
// so the dashboard never takes the aggregate query on the request path.
func StockSummaryJob(args ...string) {
	conn := db()
	if conn == nil {
		return
	}
	counts, err := stockService.RefreshSummary(conn)
	if err != nil {
		log.Printf("StockSummaryJob: %v", err)
		return
	}
	log.Printf("StockSummaryJob: total=%d out_of_stock=%d low_stock=%d",
		counts.Total, counts.OutOfStock, counts.LowStock)
}

// LowStockReportJob logs every variant at or below its reorder point, the
// daily nudge for the purchasing desk.
func LowStockReportJob(args ...string) {
	conn := db()
	if conn == nil {
		return
	}
	rows, err := stockService.LowStock(conn)
	if err != nil {
		log.Printf("LowStockReportJob: %v", err)
		return
	}
	if len(rows) == 0 {
		log.Println("LowStockReportJob: no variants below reorder point")
		return
	}
	for _, row := range rows {
		log.Printf("LowStockReportJob: %s (%s) qty=%d reorder_point=%d status=%s",
			row.SKU, row.ProductName, row.AvailableQty, row.ReorderPoint, row.Status)
	}
}
