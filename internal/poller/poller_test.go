package poller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingTask struct {
	calls  atomic.Int32
	notify chan struct{}

	mu  sync.Mutex
	err error
}

func (c *countingTask) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *countingTask) task(name string) Task {
	return Task{Name: name, Run: func(ctx context.Context) error {
		c.calls.Add(1)
		if c.notify != nil {
			select {
			case c.notify <- struct{}{}:
			default:
			}
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.err
	}}
}

func mustNew(t *testing.T, tasks []Task, logger *slog.Logger, schedule string) *Poller {
	t.Helper()
	p, err := New(tasks, logger, nil, schedule)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	return p
}

func TestPollerWarmsOnStartAndOnSchedule(t *testing.T) {
	task := &countingTask{notify: make(chan struct{}, 1)}
	p := mustNew(t, []Task{task.task("overview")}, nil, "@every 1s")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	select {
	case <-task.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial warm")
	}
	select {
	case <-task.notify:
	case <-time.After(2500 * time.Millisecond):
		t.Fatal("timed out waiting for scheduled warm")
	}

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	callsAfterStop := task.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	if task.calls.Load() != callsAfterStop {
		t.Fatalf("expected no runs after stop; before=%d after=%d", callsAfterStop, task.calls.Load())
	}
	if !p.Status().IsReady() {
		t.Fatalf("expected ready after successful warm")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	task := &countingTask{notify: make(chan struct{}, 1)}
	p := mustNew(t, []Task{task.task("dataset")}, nil, "@every 1h")

	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	<-task.notify
	cancel()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		p.startMu.Lock()
		stopped := p.stopped
		p.startMu.Unlock()
		if stopped {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expected poller to stop after context cancel")
}

func TestPollerStartAndStopAreIdempotent(t *testing.T) {
	p := mustNew(t, nil, nil, "")

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := p.Start(ctx); err != nil {
		t.Fatalf("second start should no-op, got %v", err)
	}
	if got := len(p.cron.Entries()); got != 1 {
		t.Fatalf("expected a single scheduled entry, got %d", got)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestNewValidatesSchedule(t *testing.T) {
	if _, err := New(nil, nil, nil, "every now and then"); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
	p := mustNew(t, nil, nil, "")
	if p.schedule != defaultSchedule {
		t.Fatalf("expected default schedule %s, got %s", defaultSchedule, p.schedule)
	}
	mustNew(t, nil, nil, "*/5 * * * *")
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	task := &countingTask{}
	task.setErr(errors.New("boom"))
	p := mustNew(t, []Task{task.task("overview")}, nil, "")
	ctx := context.Background()

	if err := p.WarmNow(ctx); err == nil || !strings.Contains(err.Error(), "overview: boom") {
		t.Fatalf("expected task error, got %v", err)
	}
	status := p.Status()
	if status.ConsecutiveFailures != 1 || status.LastError == "" {
		t.Fatalf("expected failure recorded, got %+v", status)
	}
	if !status.LastSuccess.IsZero() || status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	task.setErr(nil)
	if err := p.WarmNow(ctx); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastSuccess.IsZero() || !status.IsReady() {
		t.Fatalf("expected ready after success, got %+v", status)
	}
}

func TestPollerRunsEveryTaskDespiteFailures(t *testing.T) {
	failing, healthy := &countingTask{}, &countingTask{}
	failing.setErr(errors.New("csv down"))
	logger, buf := newBufferLogger()
	p := mustNew(t, []Task{failing.task("dataset"), healthy.task("overview")}, logger, "")

	if err := p.WarmNow(context.Background()); err == nil {
		t.Fatalf("expected joined error")
	}
	if failing.calls.Load() != 1 || healthy.calls.Load() != 1 {
		t.Fatalf("expected both tasks to run, got %d/%d", failing.calls.Load(), healthy.calls.Load())
	}
	if !strings.Contains(buf.String(), "task=dataset") {
		t.Fatalf("expected failing task to be logged, got %q", buf.String())
	}
}

func TestStatusIsReadyToleratesTransientFailures(t *testing.T) {
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !s.IsReady() {
		t.Fatalf("expected ready with two failures")
	}
	s.ConsecutiveFailures = 3
	if s.IsReady() {
		t.Fatalf("expected not ready after three failures")
	}
}

func TestPollerLogsWithDiscardLogger(t *testing.T) {
	task := &countingTask{}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	p := mustNew(t, []Task{task.task("overview")}, logger, "")
	if err := p.WarmNow(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestPollerStopReleasesContextWatcher(t *testing.T) {
	p := mustNew(t, nil, nil, "")

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}

	select {
	case <-p.watched:
	case <-time.After(time.Second):
		t.Fatalf("expected context watcher to exit after Stop with a live context")
	}
}
