package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoArchiveJob *AutoArchiveJob
	purgeJob       *PurgeJob
}

func NewJobManager(autoArchiveJob *AutoArchiveJob, purgeJob *PurgeJob) *JobManager {
	return &JobManager{
		autoArchiveJob: autoArchiveJob,
		purgeJob:       purgeJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoArchiveJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-archive job: %w", err)
	}

	if err := jm.purgeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.autoArchiveJob.Stop()
		return fmt.Errorf("failed to start purge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running sweeps.
func (jm *JobManager) StopAll() {
	jm.purgeJob.Stop()
	jm.autoArchiveJob.Stop()
}
