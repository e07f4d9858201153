package config

import (
	"storeops.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"stocksummaryjob":   {Schedule: "@every 1m", Job: jobs.StockSummaryJob},
	"lowstockreportjob": {Schedule: "0 6 * * *", Job: jobs.LowStockReportJob},
	// Add more jobs here
}
