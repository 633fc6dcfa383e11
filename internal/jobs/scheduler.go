package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"auralog/internal/logging"
	"auralog/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Job interface that all scheduled pipeline jobs must implement
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// cronParser validates standard 5-field cron expressions before they
// reach gocron.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// JobScheduler runs the nightly pipeline jobs on cron schedules. When
// Redis is available a per-run lock keeps multiple instances from
// executing the same job for the same window.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	redisService *services.RedisService
	metrics      *services.Metrics
	instanceID   string
	location     *time.Location

	mu      sync.RWMutex
	jobs    map[string]Job
	handles map[string]gocron.Job
	exprs   map[string]string
}

// NewJobScheduler creates a scheduler running in the given timezone.
func NewJobScheduler(timezone string, redisService *services.RedisService, metrics *services.Metrics) (*JobScheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %s: %w", timezone, err)
	}

	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &JobScheduler{
		scheduler:    scheduler,
		redisService: redisService,
		metrics:      metrics,
		instanceID:   uuid.New().String(),
		location:     loc,
		jobs:         make(map[string]Job),
		handles:      make(map[string]gocron.Job),
		exprs:        make(map[string]string),
	}, nil
}

// Register adds a job under the given cron expression.
func (s *JobScheduler) Register(job Job, cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := cronParser.Parse(cronExpr); err != nil {
		return fmt.Errorf("invalid cron expression %q for job %s: %w", cronExpr, job.Name(), err)
	}

	handle, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			s.runJob(job)
		}),
		gocron.WithName(job.Name()),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.Name(), err)
	}

	s.jobs[job.Name()] = job
	s.handles[job.Name()] = handle
	s.exprs[job.Name()] = cronExpr
	log.Printf("📅 [SCHEDULER] Registered job %s (cron: %s, tz: %s)", job.Name(), cronExpr, s.location)

	return nil
}

// Start begins running all registered jobs
func (s *JobScheduler) Start() {
	s.mu.RLock()
	count := len(s.jobs)
	s.mu.RUnlock()

	log.Printf("🚀 [SCHEDULER] Starting job scheduler with %d jobs", count)
	s.scheduler.Start()
}

// Stop gracefully stops the scheduler
func (s *JobScheduler) Stop() error {
	log.Println("🛑 [SCHEDULER] Stopping job scheduler...")
	return s.scheduler.Shutdown()
}

// runJob executes a job under a distributed lock and records metrics.
func (s *JobScheduler) runJob(job Job) {
	ctx := context.Background()
	jl := logging.WithJob(job.Name(), uuid.New().String())

	// One run per job per minute across all instances.
	if s.redisService != nil {
		lockKey := fmt.Sprintf("job-lock:%s:%d", job.Name(), time.Now().Unix()/60)

		acquired, err := s.redisService.AcquireLock(ctx, lockKey, s.instanceID, 30*time.Minute)
		if err != nil {
			log.Printf("❌ [SCHEDULER] Failed to acquire lock for job %s: %v", job.Name(), err)
			return
		}
		if !acquired {
			log.Printf("⏭️ [SCHEDULER] Job %s already running on another instance", job.Name())
			return
		}
		defer func() {
			if _, err := s.redisService.ReleaseLock(ctx, lockKey, s.instanceID); err != nil {
				log.Printf("⚠️ [SCHEDULER] Failed to release lock for job %s: %v", job.Name(), err)
			}
		}()
	}

	jl.Info("job run starting")
	startTime := time.Now()

	err := job.Run(ctx)

	duration := time.Since(startTime)
	if s.metrics != nil {
		s.metrics.RecordJobRun(job.Name(), duration.Seconds(), err)
	}

	if err != nil {
		jl.Error("job run failed", "duration", duration.String(), "error", err)
		return
	}
	jl.Info("job run completed", "duration", duration.String())
}

// RunNow triggers a job immediately in the background. Used by the admin
// endpoint to replay a pipeline stage.
func (s *JobScheduler) RunNow(name string) error {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	log.Printf("🚀 [SCHEDULER] Running job %s immediately", name)
	go s.runJob(job)

	return nil
}

// JobStatus represents the registration state of a single job.
type JobStatus struct {
	Name      string    `json:"name"`
	CronExpr  string    `json:"cron_expression"`
	NextRunAt time.Time `json:"next_run_at"`
}

// Status returns the status of all registered jobs.
func (s *JobScheduler) Status() []JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make([]JobStatus, 0, len(s.handles))
	for name, handle := range s.handles {
		next, err := handle.NextRun()
		if err != nil {
			next = time.Time{}
		}
		statuses = append(statuses, JobStatus{
			Name:      name,
			CronExpr:  s.exprs[name],
			NextRunAt: next,
		})
	}

	return statuses
}
