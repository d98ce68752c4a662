package framework

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoopPriorityOrder(t *testing.T) {
	var lock sync.Mutex
	var order []int
	done := make(chan struct{})
	record := func(lv int) Controller {
		return ControlFunc(func(cc ControlContext) error {
			require.Equal(t, lv, cc.PriorityLevel())
			lock.Lock()
			defer lock.Unlock()
			order = append(order, lv)
			if len(order) == 3 {
				close(done)
			}
			return nil
		})
	}
	l := NewLoop()
	l.Interval = time.Hour
	l.AddController(PrLvIndicate, record(PrLvIndicate))
	l.AddController(PrLvTop, record(PrLvTop))
	l.AddController(PrLvSense, record(PrLvSense))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	l.TriggerNext()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("iteration not triggered")
	}
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
	require.Equal(t, []int{PrLvTop, PrLvSense, PrLvIndicate}, order)
}

type runnableController struct {
	started chan struct{}
}

func (c *runnableController) Control(ControlContext) error { return nil }

func (c *runnableController) Run(ctx context.Context) error {
	close(c.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestLoopRunsRunnableControllers(t *testing.T) {
	ctl := &runnableController{started: make(chan struct{})}
	l := NewLoop()
	l.AddController(PrLvNormal, ctl)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	select {
	case <-ctl.started:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("runnable not started")
	}
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("loop not stopped")
	}
}

func TestRunnerAggregatesErrors(t *testing.T) {
	failure := errors.New("sink down")
	r := NewRunner()
	r.Go(
		NamedRun("sink", RunFunc(func(context.Context) error { return failure })),
		RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		RunFunc(func(context.Context) error { return nil }),
	)
	time.Sleep(10 * time.Millisecond)
	r.Cancel()
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, failure))
	require.Equal(t, "sink: sink down", err.Error())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	errs.Add(errors.New("a"), nil, errors.New("b"))
	require.Equal(t, "Multiple errors:\na\nb", errs.Aggregate().Error())
}

type closer struct {
	closed int
	ch     chan struct{}
}

func (c *closer) Close() error {
	c.closed++
	close(c.ch)
	return nil
}

func TestRunWithContextCloser(t *testing.T) {
	c := &closer{ch: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunWithContextCloser(ctx, c, func() error {
		<-c.ch
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, c.closed)

	c = &closer{ch: make(chan struct{})}
	require.NoError(t, RunWithContextCloser(context.Background(), c, func() error { return nil }))
	require.Equal(t, 1, c.closed)
}
