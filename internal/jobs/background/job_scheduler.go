package background

import (
	"context"
	"sync"
	"time"

	"coachcrm/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// JobScheduler owns the recurring background work: keeping dashboard stats
// warm and sweeping open tasks past their due date.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	statsService *jobs.StatsRefreshService
	sweepService *jobs.TaskSweepService
	registered   map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(statsService *jobs.StatsRefreshService, sweepService *jobs.TaskSweepService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		statsService: statsService,
		sweepService: sweepService,
		registered:   make(map[string]gocron.Job),
	}

	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Info().Msg("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Info().Msg("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshStats, context.Background()),
		gocron.WithName("trainer-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create stats refresh job")
	} else {
		js.registered["stats-refresh"] = statsJob
	}

	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepTasks, context.Background()),
		gocron.WithName("overdue-task-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create task sweep job")
	} else {
		js.registered["task-sweep"] = sweepJob
	}

	log.Info().Int("jobs", len(js.registered)).Msg("registered background jobs")
}

func (js *JobScheduler) refreshStats(ctx context.Context) {
	if _, err := js.statsService.RefreshAllTrainerStats(ctx); err != nil {
		log.Error().Err(err).Msg("stats refresh job failed")
	}
}

func (js *JobScheduler) sweepTasks(ctx context.Context) {
	if _, err := js.sweepService.SweepOverdueTasks(ctx); err != nil {
		log.Error().Err(err).Msg("task sweep job failed")
	}
}
