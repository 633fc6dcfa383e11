package jobs

import (
	"context"
	"testing"
	"time"
)

type stubJob struct {
	name string
	ran  chan struct{}
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Run(ctx context.Context) error {
	select {
	case j.ran <- struct{}{}:
	default:
	}
	return nil
}

func TestSchedulerRegisterValidatesCron(t *testing.T) {
	s, err := NewJobScheduler("UTC", nil, nil)
	if err != nil {
		t.Fatalf("NewJobScheduler: %v", err)
	}
	defer s.Stop()

	job := &stubJob{name: "test_job", ran: make(chan struct{}, 1)}

	if err := s.Register(job, "61 * * * *"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.Register(job, "0 1 * * *"); err != nil {
		t.Errorf("valid cron rejected: %v", err)
	}
}

func TestSchedulerRejectsBadTimezone(t *testing.T) {
	if _, err := NewJobScheduler("Not/AZone", nil, nil); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestSchedulerRunNow(t *testing.T) {
	s, err := NewJobScheduler("UTC", nil, nil)
	if err != nil {
		t.Fatalf("NewJobScheduler: %v", err)
	}
	defer s.Stop()

	job := &stubJob{name: "replayable", ran: make(chan struct{}, 1)}
	if err := s.Register(job, "0 1 * * *"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := s.RunNow("missing"); err == nil {
		t.Error("expected error for unknown job name")
	}

	if err := s.RunNow("replayable"); err != nil {
		t.Fatalf("RunNow: %v", err)
	}

	select {
	case <-job.ran:
	case <-time.After(2 * time.Second):
		t.Error("job did not run after RunNow")
	}
}

func TestSchedulerStatus(t *testing.T) {
	s, err := NewJobScheduler("UTC", nil, nil)
	if err != nil {
		t.Fatalf("NewJobScheduler: %v", err)
	}
	defer s.Stop()

	job := &stubJob{name: "status_job", ran: make(chan struct{}, 1)}
	if err := s.Register(job, "30 2 * * *"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	statuses := s.Status()
	if len(statuses) != 1 {
		t.Fatalf("expected 1 job status, got %d", len(statuses))
	}
	if statuses[0].Name != "status_job" {
		t.Errorf("unexpected name: %s", statuses[0].Name)
	}
	if statuses[0].CronExpr != "30 2 * * *" {
		t.Errorf("unexpected cron: %s", statuses[0].CronExpr)
	}
}
