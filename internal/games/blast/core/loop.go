package core

import (
	"context"
)

// Loop owns a Controller and serializes every call to it on one goroutine.
// Selections, restarts and presenter completions may arrive from any goroutine;
// the loop applies them one at a time in arrival order.
//
// Presenter callbacks run on the loop goroutine. A presenter may call
// Completion.Done synchronously from TurnStarted or later from elsewhere.
type Loop struct {
	ctrl *Controller

	requests    chan func()
	completions chan TurnID
	done        chan struct{}
}

// NewLoop wraps ctrl. The controller must not be used directly afterwards.
func NewLoop(ctrl *Controller) *Loop {
	l := &Loop{
		ctrl:        ctrl,
		requests:    make(chan func()),
		completions: make(chan TurnID, 16),
		done:        make(chan struct{}),
	}
	ctrl.fire = l.postCompletion
	return l
}

// postCompletion queues a finished turn. It never blocks the caller, which may
// be the loop goroutine itself.
func (l *Loop) postCompletion(id TurnID) {
	select {
	case l.completions <- id:
	default:
		go func() {
			select {
			case l.completions <- id:
			case <-l.done:
			}
		}()
	}
}

// Run processes requests until ctx is cancelled. Call it once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.requests:
			l.completePending()
			fn()
		case id := <-l.completions:
			l.complete(id)
		}
	}
}

// completePending applies completions queued before the current request, so a
// request made after Completion.Done returned observes the finished turn.
func (l *Loop) completePending() {
	for {
		select {
		case id := <-l.completions:
			l.complete(id)
		default:
			return
		}
	}
}

func (l *Loop) complete(id TurnID) {
	if err := l.ctrl.Complete(id); err != nil {
		l.ctrl.logger.Debug("completion dropped", "turn", id, "error", err)
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	req := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.requests <- req:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// An accepted request always runs to completion before Run can exit.
	<-finished
	return nil
}

// Start leaves standby. See Controller.Start.
func (l *Loop) Start(ctx context.Context) (bool, error) {
	var started bool
	err := l.do(ctx, func() {
		started = l.ctrl.Start()
	})
	return started, err
}

// Select plays a cell. See Controller.Select.
func (l *Loop) Select(ctx context.Context, at Coord) (Selection, error) {
	var (
		sel    Selection
		selErr error
	)
	if err := l.do(ctx, func() {
		sel, selErr = l.ctrl.Select(at)
	}); err != nil {
		return SelectionRejected, err
	}
	return sel, selErr
}

// Restart deals a new game. See Controller.Restart.
func (l *Loop) Restart(ctx context.Context) error {
	return l.do(ctx, l.ctrl.Restart)
}

// Snapshot returns a copy of the controller state.
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := l.do(ctx, func() {
		snap = l.ctrl.Snapshot()
	})
	return snap, err
}

// Hint returns the largest destroyable group. See Controller.Hint.
func (l *Loop) Hint(ctx context.Context) (MatchGroup, bool, error) {
	var (
		group MatchGroup
		ok    bool
	)
	err := l.do(ctx, func() {
		group, ok = l.ctrl.Hint()
	})
	return group, ok, err
}

// Result returns the summary of the current game.
func (l *Loop) Result(ctx context.Context) (Result, error) {
	var result Result
	err := l.do(ctx, func() {
		result = l.ctrl.Result()
	})
	return result, err
}
