package backoff

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Strategy computes the next wait from the number of waits done so far
type Strategy interface {
	Duration(count int, start time.Duration) time.Duration
}

// Backoff sleeps between retries, growing the wait by its strategy up to limit
type Backoff struct {
	Next     time.Duration
	start    time.Duration
	limit    time.Duration
	jitter   float64
	count    int
	strategy Strategy
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

// WithJitter spreads every wait randomly by up to ratio of its length
func (b *Backoff) WithJitter(ratio float64) *Backoff {
	b.jitter = ratio
	return b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.Next = b.next()
}

// Wait sleeps for the next duration, it returns ctx's error if ctx ends first
func (b *Backoff) Wait(ctx context.Context) error {
	d := b.Next
	if b.jitter > 0 {
		d += time.Duration(rand.Float64() * b.jitter * float64(d))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	b.count++
	b.Next = b.next()
	return nil
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.count, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(count int, start time.Duration) time.Duration {
	return time.Duration(math.Pow(2, float64(count))) * start
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(exponential{}, start, limit)
}

type constant struct{}

func (constant) Duration(_ int, start time.Duration) time.Duration {
	return start
}

func NewConstant(d time.Duration) *Backoff {
	return New(constant{}, d, 0)
}
