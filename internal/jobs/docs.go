// Package jobs runs the housekeeping sweeps on a schedule.
//
// Jobs are built on github.com/robfig/cron/v3 with a Recover chain, so a panicking
// sweep is logged and the next tick runs normally.
//
// # Available Jobs
//
// 1. AutoArchiveJob - archives orders that have been completed for longer than the configured age
// 2. PurgeJob - deletes long-archived orders with their notification records, then stale records
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewAutoArchiveJob(autoArchiveHandler, 10*time.Minute, 12*time.Hour, logger),
//		jobs.NewPurgeJob(purgeHandler, 24*time.Hour, 30*24*time.Hour, 7*24*time.Hour, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Overlap
//
// Sweeps take no lock. Every mutation they issue is conditional and idempotent, so two
// instances running the same sweep only duplicate work.
package jobs
