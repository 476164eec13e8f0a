package transfers

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ethpandaops/frenscan/metrics"
	"github.com/ethpandaops/frenscan/types"
)

type transferMetrics struct {
	blocksProcessed      prometheus.Counter
	blocksFailed         prometheus.Counter
	valueTransfers       *prometheus.CounterVec
	tokenTransfers       prometheus.Counter
	issuedTokenTransfers prometheus.Counter
	callTraces           prometheus.Counter
	batchMismatches      prometheus.Counter
	highestBlock         prometheus.Gauge

	highestBlockNumber atomic.Uint64
}

var (
	extractorMetrics     *transferMetrics
	extractorMetricsOnce sync.Once
)

func getMetrics() *transferMetrics {
	extractorMetricsOnce.Do(func() {
		extractorMetrics = registerMetrics()
	})
	return extractorMetrics
}

func registerMetrics() *transferMetrics {
	transferMetrics := &transferMetrics{
		blocksProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frenscan_blocks_processed_total",
			Help: "Number of blocks successfully processed",
		}),
		blocksFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frenscan_blocks_failed_total",
			Help: "Number of blocks rejected because of malformed traces",
		}),
		valueTransfers: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "frenscan_value_transfers_total",
			Help: "Number of extracted value transfers by balance change reason",
		}, []string{"reason"}),
		tokenTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frenscan_token_transfers_total",
			Help: "Number of extracted treasury token transfers",
		}),
		issuedTokenTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frenscan_issued_token_transfers_total",
			Help: "Number of extracted issued token transfers",
		}),
		callTraces: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frenscan_call_traces_total",
			Help: "Number of retained transaction call traces",
		}),
		batchMismatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frenscan_erc1155_batch_mismatches_total",
			Help: "Number of erc1155 batch logs skipped because of mismatching id / value counts",
		}),
		highestBlock: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "frenscan_highest_block_number",
			Help: "Highest block number processed",
		}),
	}

	metrics.AddPreCollectFn(func() {
		transferMetrics.highestBlock.Set(float64(transferMetrics.highestBlockNumber.Load()))
	})

	return transferMetrics
}

func (m *transferMetrics) observeBlock(transfers *types.Transfers, batchMismatches int) {
	m.blocksProcessed.Inc()
	for _, transfer := range transfers.ValueTransfers {
		m.valueTransfers.WithLabelValues(transfer.Reason.String()).Inc()
	}
	m.tokenTransfers.Add(float64(len(transfers.TokenTransfers)))
	m.issuedTokenTransfers.Add(float64(len(transfers.IssuedTokenTransfers)))
	m.callTraces.Add(float64(len(transfers.CallTraces)))
	m.batchMismatches.Add(float64(batchMismatches))

	for {
		highest := m.highestBlockNumber.Load()
		if transfers.BlockNumber <= highest || m.highestBlockNumber.CompareAndSwap(highest, transfers.BlockNumber) {
			break
		}
	}
}
