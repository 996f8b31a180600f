package internal

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
)

// EndpointMetrics holds the instruments shared by all endpoints
type EndpointMetrics struct {
	requests metrics.Counter
	latency  metrics.Histogram
}

// NewEndpointMetrics creates the request counter and latency histogram and registers them at the given registry
func NewEndpointMetrics(reg stdprometheus.Registerer) *EndpointMetrics {
	labels := []string{"method", "error"}
	requests := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: "fyyur",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Number of requests received.",
	}, labels)
	latency := stdprometheus.NewHistogramVec(stdprometheus.HistogramOpts{
		Namespace: "fyyur",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Time spent processing requests in seconds.",
		Buckets:   stdprometheus.DefBuckets,
	}, labels)
	reg.MustRegister(requests, latency)
	return &EndpointMetrics{
		requests: kitprometheus.NewCounter(requests),
		latency:  kitprometheus.NewHistogram(latency),
	}
}

// InstrumentingMiddleware counts the calls of an endpoint and records their duration
func InstrumentingMiddleware(m *EndpointMetrics, method string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				lvs := []string{"method", method, "error", strconv.FormatBool(err != nil)}
				m.requests.With(lvs...).Add(1)
				m.latency.With(lvs...).Observe(time.Since(begin).Seconds())
			}(time.Now())
			return next(ctx, request)
		}
	}
}

// LoggingMiddleware logs every call of an endpoint with the request's logger
func LoggingMiddleware(method string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				logger := ctxhelper.Logger(ctx).WithField(log.FldMethod, method).WithField(log.FldDuration, time.Since(begin))
				if err != nil {
					logger.WithError(err).Warn("Request failed")
					return
				}
				logger.Debug("Request handled")
			}(time.Now())
			return next(ctx, request)
		}
	}
}

// wrap puts the standard middlewares around an endpoint
func wrap(m *EndpointMetrics, method string, ep endpoint.Endpoint) endpoint.Endpoint {
	return endpoint.Chain(
		InstrumentingMiddleware(m, method),
		LoggingMiddleware(method),
	)(ep)
}
