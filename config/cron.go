package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	// Built-in jobs self-register via cron.Register in their package init
	// (see cron/jobs). Ad-hoc entries can still be added here.
}
