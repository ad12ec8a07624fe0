package metrics

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/construction-sim/internal/application/common"
)

// PrometheusMiddleware times every request passing through the mediator.
// A nil collector passes requests straight through.
func PrometheusMiddleware(collector *RequestMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		collector.inFlight.Inc()
		defer collector.inFlight.Dec()

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(requestName(request), time.Since(start).Seconds(), err)

		return response, err
	}
}

// requestName returns the bare type name, e.g. "MakeDecisionCommand" for
// *commands.MakeDecisionCommand
func requestName(request common.Request) string {
	if request == nil {
		return "Unknown"
	}
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
