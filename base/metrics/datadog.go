package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"

	"github.com/x-xyz/gomarket/base/log"
)

const (
	ddPort = 8125
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

func newDatadogClient(host string) statsCli {
	addr := fmt.Sprintf("%s:%d", host, ddPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")

	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent, falling back to logs")
		return &LogClient{}
	}
	return cli
}
