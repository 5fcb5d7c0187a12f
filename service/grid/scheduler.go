package grid

import (
	"sync"
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/goroutine"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/market"
)

const (
	defaultWorkers = 16
	defaultTick    = 50 * time.Millisecond
)

var met = metrics.New("grid")

type SchedulerCfg struct {
	// Workers bounds the refreshes running at the same time
	Workers int
	// Tick is the resolution of the refresh intervals
	Tick time.Duration
}

type job struct {
	interval time.Duration
	next     time.Time
	fn       func(c ctx.Ctx)
	c        ctx.Ctx
	running  bool
}

// Scheduler runs the refresh callbacks of its containers. A container never
// has two refreshes in flight, a late refresh is skipped rather than queued.
type Scheduler struct {
	pool *goroutines.Pool
	tick time.Duration

	mu   sync.Mutex
	jobs map[*Container]*job

	stopOnce sync.Once
	stop     chan struct{}
	done     chan *goroutine.PanicEvent
}

func NewScheduler(cfg *SchedulerCfg) *Scheduler {
	workers, tick := cfg.Workers, cfg.Tick
	if workers <= 0 {
		workers = defaultWorkers
	}
	if tick <= 0 {
		tick = defaultTick
	}
	s := &Scheduler{
		pool: goroutines.NewPool(workers),
		tick: tick,
		jobs: map[*Container]*job{},
		stop: make(chan struct{}),
	}
	s.done = goroutine.RecoverableGo(s.loop)
	return s
}

// NewContainer opens an empty container for viewer, it is a market.GridFactory
func (s *Scheduler) NewContainer(viewer domain.UserId) market.Grid {
	return &Container{viewer: viewer, sched: s}
}

// Stop ends the scheduling loop and releases the workers
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
		s.pool.Release()
	})
}

func (s *Scheduler) register(g *Container, interval time.Duration, fn func(c ctx.Ctx)) {
	if interval < s.tick {
		interval = s.tick
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Close marks the container before it unregisters
	if g.isClosed() {
		return
	}
	s.jobs[g] = &job{
		interval: interval,
		next:     time.Now().Add(interval),
		fn:       fn,
		c:        ctx.WithValue(ctx.Background(), "viewer", g.viewer),
	}
}

func (s *Scheduler) unregister(g *Container) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, g)
}

func (s *Scheduler) loop() {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.dispatch(now)
		}
	}
}

func (s *Scheduler) dispatch(now time.Time) {
	s.mu.Lock()
	due := []*job{}
	for _, j := range s.jobs {
		if j.running || now.Before(j.next) {
			continue
		}
		j.running = true
		due = append(due, j)
	}
	s.mu.Unlock()

	for _, j := range due {
		j := j
		if err := s.pool.Schedule(func() { s.run(j) }); err != nil {
			j.c.WithField("err", err).Warn("pool.Schedule failed")
			s.mu.Lock()
			j.running = false
			s.mu.Unlock()
		}
	}
}

func (s *Scheduler) run(j *job) {
	defer func() {
		if r := recover(); r != nil {
			met.BumpSum("refresh.panic", 1)
			j.c.WithFields(log.Fields{"panic": r}).Error("refresh panicked")
		}
		s.mu.Lock()
		j.running = false
		j.next = time.Now().Add(j.interval)
		s.mu.Unlock()
	}()
	defer met.BumpTime("refresh.time").End()
	j.fn(j.c)
}
