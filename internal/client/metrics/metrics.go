// Package metrics exposes client-side Prometheus metrics: API request counts
// and latencies, and the size of the current meal list.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/eatsbalance/internal/client/client"
	"github.com/dmitrijs2005/eatsbalance/internal/common"
)

const shutdownTimeout = 3 * time.Second

// Recorder owns a private registry so several instances can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	meals    prometheus.Gauge
	calories prometheus.Gauge
}

var _ client.Observer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: common.AppName,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Requests sent to the meals API.",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: common.AppName,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Latency of requests to the meals API.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
			},
			[]string{"operation"},
		),
		meals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: common.AppName,
			Name:      "meals_logged",
			Help:      "Meals in the last synced list.",
		}),
		calories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: common.AppName,
			Name:      "calories_total",
			Help:      "Calories over the last synced list.",
		}),
	}

	r.registry.MustRegister(r.requests, r.duration, r.meals, r.calories)
	return r
}

func (r *Recorder) ObserveRequest(operation, outcome string, elapsed time.Duration) {
	r.requests.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (r *Recorder) SetMealTotals(count, calories int) {
	r.meals.Set(float64(count))
	r.calories.Set(float64(calories))
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
