package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethanbaker/ephemeris/pkg/logging"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Trigger calls the generator entrypoint
type Trigger interface {
	TriggerGeneration(ctx context.Context, req *sdk.GeneratorRequest) (*sdk.GeneratorResponse, error)
}

// Scheduler calls the generator entrypoint on a cron schedule
type Scheduler struct {
	trigger Trigger
	opts    *Options
	loc     *time.Location
	logger  *zap.Logger

	// Concurrency
	ctx    context.Context
	cancel context.CancelFunc
	mutex  sync.Mutex

	// Scheduling
	cron    *cron.Cron
	entry   cron.EntryID
	lastRun time.Time
	lastErr error
}

// New creates a scheduler. The job is registered but not started
func New(trigger Trigger, opts *Options) (*Scheduler, error) {
	if trigger == nil {
		return nil, errors.New("a valid trigger must be provided")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	loc, err := opts.Location()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		trigger: trigger,
		opts:    opts,
		loc:     loc,
		logger:  logging.Named("SCHEDULER"),
		ctx:     ctx,
		cancel:  cancel,
		cron:    cron.New(cron.WithLocation(loc)),
	}

	s.entry, err = s.cron.AddFunc(opts.Cron, s.runScheduled)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("invalid cron spec %q: %w", opts.Cron, err)
	}

	return s, nil
}

// Start begins running the job on schedule
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("cron", s.opts.Cron),
		zap.String("timezone", s.opts.Timezone),
		zap.Time("next", s.Next()),
	)
}

// Stop cancels in-flight runs and waits for them to return
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// Next returns the next scheduled run after now
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Schedule.Next(time.Now().In(s.loc))
}

// LastRun returns when the job last ran and the error it returned
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastRun, s.lastErr
}

// RunOnce calls the generator entrypoint with no body. Failures are returned, not retried
func (s *Scheduler) RunOnce(ctx context.Context) (*sdk.GeneratorResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	s.logger.Info("starting ephemeris generation")
	resp, err := s.trigger.TriggerGeneration(ctx, nil)

	s.mutex.Lock()
	s.lastRun, s.lastErr = time.Now(), err
	s.mutex.Unlock()

	if err != nil {
		var httpErr *sdk.HTTPError
		if errors.As(err, &httpErr) {
			s.logger.Error("generation failed",
				zap.Int("status", httpErr.StatusCode),
				zap.String("response", string(httpErr.Body)),
			)
		} else {
			s.logger.Error("generation failed", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("generation finished", zap.String("message", resp.Message))
	return resp, nil
}

// runScheduled is the cron job; errors were already logged
func (s *Scheduler) runScheduled() {
	_, _ = s.RunOnce(s.ctx)
}
