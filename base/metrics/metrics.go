/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- Error: *.err
- Business outcome: <noun>.<outcome>, e.g. purchase.success
*/
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/gomarket/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// statsCli is the subset of statsd.ClientInterface used here
type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

var (
	initOnce = sync.Once{}
	client   statsCli
)

func getClient() statsCli {
	initOnce.Do(func() {
		if !viper.GetBool("metrics.enabled") {
			client = &LogClient{}
			return
		}
		client = newDatadogClient(viper.GetString("datadog_host"))
	})
	return client
}

// Init picks the client from the loaded config. Call it before the config
// can change, the first metric otherwise does it.
func Init() {
	getClient()
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &Metrics{
		pkgName: pkgName,
		tags: []string{
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
		cli: getClient,
	}
}

// Metrics prefixes every key with the package name and tags it with env/app
type Metrics struct {
	pkgName string
	tags    []string
	cli     func() statsCli
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + `.` + key
}

func (mt *Metrics) allTags(tags []string) []string {
	res := make([]string, 0, len(mt.tags)+len(tags)/2)
	res = append(res, mt.tags...)
	return append(res, parseTag(tags)...)
}

// recoverBump keeps a broken metric call from taking the caller down
func (mt *Metrics) recoverBump(fn string, key string, tags []string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{
			"err":  err,
			"func": fn,
			"key":  mt.key(key) + "#" + strings.Join(tags, "#"),
		}).Error("metrics panic")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpAvg", key, tags)
	if err := mt.cli().Gauge(mt.key(key), val, mt.allTags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpAvg"}).Error("Bump fail")
	}
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpSum", key, tags)
	if err := mt.cli().Count(mt.key(key), int64(val), mt.allTags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpSum"}).Error("Bump fail")
	}
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpHistogram", key, tags)
	if err := mt.cli().Histogram(mt.key(key), val, mt.allTags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpHistogram"}).Error("Bump fail")
	}
}

// BumpTime starts a timer, End() records the elapsed milliseconds:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		mt:    mt,
		key:   key,
		tags:  tags,
	}
}

type timeTracker struct {
	start time.Time
	mt    *Metrics
	key   string
	tags  []string
}

func (tt *timeTracker) End() {
	defer tt.mt.recoverBump("BumpTime", tt.key, tt.tags)
	ms := float64(time.Since(tt.start)) / float64(time.Millisecond)
	if err := tt.mt.cli().TimeInMilliseconds(tt.mt.key(tt.key), ms, tt.mt.allTags(tt.tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": tt.key, "val": ms, "func": "BumpTime"}).Error("Bump fail")
	}
}

func parseTag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
