package jobs

import (
	"cleanspot-backend/internal/config"
	"cleanspot-backend/internal/logger"
	"cleanspot-backend/internal/repository"
	"cleanspot-backend/internal/security"
	"cleanspot-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	subs     repository.SubscriptionRepository
	areas    repository.AreaRepository
	events   repository.EventRepository
	services *Services
	tokens   security.UnsubscribeTokenManager
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email    service.EmailService
	Activity service.ActivityService
	Area     service.AreaService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(subs repository.SubscriptionRepository, areas repository.AreaRepository, events repository.EventRepository, services *Services, tokens security.UnsubscribeTokenManager, cfg *config.Config) *JobRunner {
	return &JobRunner{
		subs:     subs,
		areas:    areas,
		events:   events,
		services: services,
		tokens:   tokens,
		config:   cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunDailyJobs runs the digest pass and the event reminder sub-jobs. The
// reminder sub-jobs are independent units of work: a digest failure or a
// failure in one reminder pass never blocks the others.
func (jr *JobRunner) RunDailyJobs() {
	jr.SendAreaDigests()
	jr.SendEventReminders()
}
