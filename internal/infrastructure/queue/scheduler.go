package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"framecanvas-backend/internal/shared"
	"framecanvas-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterJobs wires all recurring jobs.
func (s *Scheduler) RegisterJobs() error {
	return s.registerReconcileOrphansJob()
}

// Orphan sweep runs hourly. Blobs younger than the 24h cutoff are left
// alone so in-flight uploads are never deleted between PUT and finalize.
func (s *Scheduler) registerReconcileOrphansJob() error {
	payload, err := json.Marshal(shared.ReconcileOrphansPayload{OlderThanHours: 24})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileOrphans, payload)

	_, err = s.scheduler.Register(
		"0 * * * *", // hourly
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ReconcileOrphans job", err)
		return err
	}

	logger.Info("✓ Registered ReconcileOrphans: hourly", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
