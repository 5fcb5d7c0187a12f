package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingCli struct {
	mu     sync.Mutex
	counts map[string]int64
	tags   map[string][]string
	times  []string
}

func newRecordingCli() *recordingCli {
	return &recordingCli{counts: map[string]int64{}, tags: map[string][]string{}}
}

func (r *recordingCli) Gauge(name string, value float64, tags []string, rate float64) error {
	return nil
}

func (r *recordingCli) Count(name string, value int64, tags []string, rate float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[name] += value
	r.tags[name] = tags
	return nil
}

func (r *recordingCli) Histogram(name string, value float64, tags []string, rate float64) error {
	return nil
}

func (r *recordingCli) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times = append(r.times, name)
	return nil
}

func TestBumpSumPrefixesAndTags(t *testing.T) {
	cli := newRecordingCli()
	mt := &Metrics{pkgName: "market", tags: []string{"env:test"}, cli: func() statsCli { return cli }}

	mt.BumpSum("purchase.success", 1, "seller", "u1")
	mt.BumpSum("purchase.success", 2, "seller", "u1")

	assert.Equal(t, int64(3), cli.counts["market.purchase.success"])
	assert.Equal(t, []string{"env:test", "seller:u1"}, cli.tags["market.purchase.success"])
}

func TestBumpTime(t *testing.T) {
	cli := newRecordingCli()
	mt := &Metrics{pkgName: "grid", cli: func() statsCli { return cli }}

	mt.BumpTime("render.time").End()

	assert.Equal(t, []string{"grid.render.time"}, cli.times)
}

func TestOddTagsDoNotPanicCaller(t *testing.T) {
	cli := newRecordingCli()
	mt := &Metrics{pkgName: "market", cli: func() statsCli { return cli }}

	assert.NotPanics(t, func() { mt.BumpSum("x", 1, "dangling") })
	assert.Empty(t, cli.counts)
}
