package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"statboard-service/internal/logging"
	"statboard-service/internal/metrics"
)

const defaultSchedule = "@every 10m"

// Task refreshes one cached dataset.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Poller warms caches on a cron schedule and tracks readiness.
type Poller struct {
	tasks    []Task
	logger   *slog.Logger
	metrics  *metrics.Recorder
	schedule string
	cron     *cron.Cron

	startMu sync.Mutex
	started bool
	stopped bool
	runs    sync.WaitGroup
	// quit is closed by Stop; watched ends when the ctx watcher exits.
	quit    chan struct{}
	watched chan struct{}

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the warm cycle.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. schedule accepts standard cron expressions and
// descriptors such as "@every 5m"; an empty schedule uses the default.
func New(tasks []Task, logger *slog.Logger, recorder *metrics.Recorder, schedule string) (*Poller, error) {
	if schedule == "" {
		schedule = defaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("poller: invalid schedule %q: %w", schedule, err)
	}
	return &Poller{
		tasks:    tasks,
		logger:   logger,
		metrics:  recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		quit:     make(chan struct{}),
		watched:  make(chan struct{}),
	}, nil
}

// Start runs an initial warm cycle and then one per schedule tick until the
// context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return nil
	}

	if _, err := p.cron.AddFunc(p.schedule, func() { p.warmOnce(ctx) }); err != nil {
		return fmt.Errorf("poller: schedule %q: %w", p.schedule, err)
	}
	p.started = true
	p.cron.Start()

	p.runs.Add(1)
	go func() {
		defer p.runs.Done()
		p.logInfo("poller started", "schedule", p.schedule)
		// Initial run to warm data on boot.
		p.warmOnce(ctx)
	}()

	go func() {
		defer close(p.watched)
		select {
		case <-ctx.Done():
			_ = p.Stop(context.Background())
		case <-p.quit:
		}
	}()
	return nil
}

// Stop halts the schedule and waits for running cycles or ctx expiry.
func (p *Poller) Stop(ctx context.Context) error {
	p.startMu.Lock()
	if !p.started || p.stopped {
		p.startMu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.quit)
	p.startMu.Unlock()

	cronDone := p.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		p.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logInfo("poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WarmNow runs one warm cycle synchronously.
func (p *Poller) WarmNow(ctx context.Context) error {
	return p.warmOnce(ctx)
}

func (p *Poller) warmOnce(ctx context.Context) error {
	start := time.Now()
	p.recordAttempt(start)

	var errs []error
	for _, task := range p.tasks {
		if err := task.Run(ctx); err != nil {
			p.logError("poller task failed", err, logging.FieldTask, task.Name)
			errs = append(errs, fmt.Errorf("%s: %w", task.Name, err))
			continue
		}
		logging.Debug(p.logger, "poller task refreshed", logging.FieldTask, task.Name)
	}
	err := errors.Join(errs...)

	p.metrics.RecordWarmCycle(time.Since(start), err)
	if err != nil {
		p.recordFailure(err, start)
		return err
	}
	p.recordSuccess(start)
	p.logInfo("poller warmed caches",
		logging.FieldCount, len(p.tasks),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, logging.FieldError, err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the warm cycle's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
