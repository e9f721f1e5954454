// The metrics package exposes the prometheus collectors updated by the estimators.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vertex-lab/ssppr/pkg/models"
)

const (
	StatusSuccess         = "success"
	StatusInvalidArgument = "invalid_argument"
	StatusDanglingNode    = "dangling_node"
	StatusOutOfRange      = "out_of_range"
	StatusOther           = "other"
)

var (
	// Labels: method, status
	estimationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ssppr_estimations_total",
		Help: "Total PPR estimations by method and status",
	}, []string{"method", "status"})

	estimationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ssppr_estimation_duration_seconds",
		Help:    "PPR estimation duration by method",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 100},
	}, []string{"method"})

	walksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ssppr_random_walks_total",
		Help: "Total random walks simulated by method",
	}, []string{"method"})
)

// Status() maps the error returned by an estimation to its status label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusSuccess

	case errors.Is(err, models.ErrInvalidArgument):
		return StatusInvalidArgument

	case errors.Is(err, models.ErrDanglingNode):
		return StatusDanglingNode

	case errors.Is(err, models.ErrOutOfRange):
		return StatusOutOfRange

	default:
		return StatusOther
	}
}

// ObserveEstimation() records the outcome and the duration of an estimation.
func ObserveEstimation(method string, err error, elapsed time.Duration) {
	estimationsTotal.WithLabelValues(method, Status(err)).Inc()
	estimationDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// AddWalks() adds walks to the number of random walks simulated by method.
func AddWalks(method string, walks int) {
	if walks > 0 {
		walksTotal.WithLabelValues(method).Add(float64(walks))
	}
}

// WriteTextfile() writes every registered metric to the file at path, in the
// text format read by the textfile collector of the node exporter.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
