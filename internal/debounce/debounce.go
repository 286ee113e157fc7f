// Package debounce provides trailing-edge debouncing for rapid events like keystrokes
package debounce

import (
	"sync"
	"time"
)

// Task is a scheduled callback that can be cancelled before it runs.
type Task interface {
	// Stop cancels the task. It reports false if the task already ran or was stopped.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// TimerScheduler schedules on the runtime timer via time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Option configures a Func.
type Option func(*options)

type options struct {
	scheduler Scheduler
}

// WithScheduler replaces the default TimerScheduler.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// Func coalesces rapid calls into a single call of fn, made delay after the last
// call with that call's argument.
type Func[T any] struct {
	mu        sync.Mutex
	scheduler Scheduler
	delay     time.Duration
	fn        func(T)

	task    Task
	gen     uint64
	pending bool
	arg     T
	stopped bool
}

// New wraps fn. Construct it once per event stream and keep it: a wrapper built anew
// for every event has nothing to coalesce with and only delays each call.
func New[T any](delay time.Duration, fn func(T), opts ...Option) *Func[T] {
	o := options{scheduler: TimerScheduler{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Func[T]{
		scheduler: o.scheduler,
		delay:     delay,
		fn:        fn,
	}
}

// Call records arg and (re)starts the delay. Any earlier pending call is dropped.
func (d *Func[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	// Cancel existing timer if any
	if d.task != nil {
		d.task.Stop()
	}

	d.gen++
	d.arg = arg
	d.pending = true
	gen := d.gen
	d.task = d.scheduler.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs fn if gen is still the latest call. A timer that had already been
// dispatched when it was superseded finds a newer generation and does nothing.
func (d *Func[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	arg := d.arg
	d.clearLocked()
	d.mu.Unlock()

	d.fn(arg)
}

func (d *Func[T]) clearLocked() {
	var zero T
	d.pending = false
	d.arg = zero
	d.task = nil
}

// Cancel drops the pending call, if any, and reports whether there was one.
func (d *Func[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

func (d *Func[T]) cancelLocked() bool {
	if !d.pending {
		return false
	}
	if d.task != nil {
		d.task.Stop()
	}
	d.gen++
	d.clearLocked()
	return true
}

// Flush runs the pending call now, on the caller's goroutine, and reports whether
// there was one.
func (d *Func[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	arg := d.arg
	d.cancelLocked()
	d.mu.Unlock()

	d.fn(arg)
	return true
}

// Pending reports whether a call is waiting for its delay to elapse.
func (d *Func[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending call and turns every later Call into a no-op.
// Use it when the owner of fn is torn down.
func (d *Func[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Stopped reports whether Stop has been called.
func (d *Func[T]) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}
