package goroutine

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/x-xyz/gomarket/base/log"
)

var (
	logger = log.Log()
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type RecoverableGoOptions struct {
	beforeStart    *func()
	afterEnded     *func()
	afterRecovered *func(panic interface{}, stake []byte)
}

type RecoverableGoOptionsFunc = func(*RecoverableGoOptions) error

func getRecoverableGoOptions(fns ...RecoverableGoOptionsFunc) RecoverableGoOptions {
	opts := RecoverableGoOptions{}
	for _, fn := range fns {
		fn(&opts)
	}
	return opts
}

func WithBeforeStart(f func()) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.beforeStart = &f
		return nil
	}
}

func WithAfterEnded(f func()) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.afterEnded = &f
		return nil
	}
}

func WithAfterRecovered(f func(panic interface{}, stake []byte)) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.afterRecovered = &f
		return nil
	}
}

// run executes f and turns a panic into a PanicEvent
func run(f func(), opts RecoverableGoOptions) (evt *PanicEvent) {
	defer func() {
		if opts.afterEnded != nil {
			(*opts.afterEnded)()
		}

		if p := recover(); p != nil {
			stack := debug.Stack()

			logger.WithFields(log.Fields{
				"err":   p,
				"stack": string(stack),
			}).Error("panic")

			if opts.afterRecovered != nil {
				(*opts.afterRecovered)(p, stack)
			}

			evt = &PanicEvent{p, stack}
		}
	}()

	if opts.beforeStart != nil {
		(*opts.beforeStart)()
	}

	f()
	return nil
}

func RecoverableGo(f func(), fns ...RecoverableGoOptionsFunc) chan *PanicEvent {
	opts := getRecoverableGoOptions(fns...)

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		if evt := run(f, opts); evt != nil {
			panicChan <- evt
			return
		}
		close(panicChan)
	}()

	return panicChan
}

// Delayed is the handle of a task scheduled by After
type Delayed struct {
	once  sync.Once
	timer *time.Timer
	done  chan struct{}
}

// Cancel stops the task if it has not started yet and reports whether it did so
func (d *Delayed) Cancel() bool {
	stopped := d.timer.Stop()
	if stopped {
		d.once.Do(func() { close(d.done) })
	}
	return stopped
}

// Done is closed once the task has run (or recovered) or has been cancelled
func (d *Delayed) Done() <-chan struct{} {
	return d.done
}

// After runs f on its own goroutine once delay has elapsed. Panics are
// recovered and logged, never propagated to the scheduler.
func After(delay time.Duration, f func(), fns ...RecoverableGoOptionsFunc) *Delayed {
	opts := getRecoverableGoOptions(fns...)
	d := &Delayed{done: make(chan struct{})}
	d.timer = time.AfterFunc(delay, func() {
		defer d.once.Do(func() { close(d.done) })
		run(f, opts)
	})
	return d
}
