package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	mutex         sync.Mutex
	preCollectFns []func()
}

var metrics *Metrics = &Metrics{
	preCollectFns: []func(){},
}

// AddPreCollectFn registers a callback that refreshes gauges right before
// the metrics are gathered.
func AddPreCollectFn(fn func()) {
	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()

	metrics.preCollectFns = append(metrics.preCollectFns, fn)
}

func runPreCollectFns() {
	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()

	for _, fn := range metrics.preCollectFns {
		fn()
	}
}

// WriteTextfile dumps the default registry in the text exposition format,
// as consumed by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	runPreCollectFns()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
