// Package grid is an in-process windowed container framework. Containers
// hold the slots a viewer sees, a Scheduler drives their periodic refreshes
// on a bounded worker pool.
package grid

import (
	"sync"
	"time"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/item"
	"github.com/x-xyz/gomarket/domain/market"
)

type slot struct {
	icon   item.Item
	action market.Action
}

// Container implements market.Grid
type Container struct {
	mu     sync.Mutex
	viewer domain.UserId
	slots  [market.GridHeight][market.GridWidth]slot
	sched  *Scheduler
	closed bool
}

func inside(x, y int) bool {
	return x >= 0 && x < market.GridWidth && y >= 0 && y < market.GridHeight
}

func (g *Container) Button(x, y int, icon item.Item, action market.Action) {
	if !inside(x, y) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.slots[y][x] = slot{icon: icon.Clone(), action: action}
}

// Refresh is a no-op on a closed container
func (g *Container) Refresh(interval time.Duration, fn func(c ctx.Ctx)) {
	if g.sched == nil {
		return
	}
	g.sched.register(g, interval, fn)
}

func (g *Container) isClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// Click runs the bound action outside of the container lock, so the action
// may redraw the container
func (g *Container) Click(c ctx.Ctx, x, y int) bool {
	if !inside(x, y) {
		return false
	}
	g.mu.Lock()
	action := g.slots[y][x].action
	closed := g.closed
	g.mu.Unlock()
	if closed || action == nil {
		return false
	}
	action(c)
	return true
}

// Slots returns every slot row by row
func (g *Container) Slots() []market.Slot {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := make([]market.Slot, 0, market.GridWidth*market.GridHeight)
	for y := range g.slots {
		for x, s := range g.slots[y] {
			res = append(res, market.Slot{
				X:         x,
				Y:         y,
				Icon:      s.icon.Clone(),
				Clickable: s.action != nil,
			})
		}
	}
	return res
}

func (g *Container) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()

	if g.sched != nil {
		g.sched.unregister(g)
	}
}
