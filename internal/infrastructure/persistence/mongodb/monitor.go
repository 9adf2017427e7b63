package mongodb

import (
	"context"
	"errors"
	"sync"

	"github.com/erp/catalog/internal/infrastructure/telemetry"
	"go.mongodb.org/mongo-driver/event"
)

// commandMetrics feeds command durations into DBMetrics. The collection a
// command targets is only known from the started event, so it is held by
// request id until the command finishes.
type commandMetrics struct {
	metrics     *telemetry.DBMetrics
	collections sync.Map // int64 request id -> string
}

func (c *commandMetrics) started(_ context.Context, evt *event.CommandStartedEvent) {
	collection := ""
	if elems, err := evt.Command.Elements(); err == nil && len(elems) > 0 {
		if name, ok := elems[0].Value().StringValueOK(); ok {
			collection = name
		}
	}
	c.collections.Store(evt.RequestID, collection)
}

func (c *commandMetrics) finished(ctx context.Context, evt event.CommandFinishedEvent, err error) {
	collection := ""
	if v, ok := c.collections.LoadAndDelete(evt.RequestID); ok {
		collection = v.(string)
	}
	c.metrics.RecordQuery(ctx, evt.CommandName, collection, evt.Duration, err)
}

// newCommandMonitor combines the tracing monitor and the metrics recorder.
// Either may be absent; nil is returned when both are.
func newCommandMonitor(tracing *event.CommandMonitor, metrics *telemetry.DBMetrics) *event.CommandMonitor {
	if metrics == nil {
		return tracing
	}
	cm := &commandMetrics{metrics: metrics}

	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			if tracing != nil && tracing.Started != nil {
				tracing.Started(ctx, evt)
			}
			cm.started(ctx, evt)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if tracing != nil && tracing.Succeeded != nil {
				tracing.Succeeded(ctx, evt)
			}
			cm.finished(ctx, evt.CommandFinishedEvent, nil)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			if tracing != nil && tracing.Failed != nil {
				tracing.Failed(ctx, evt)
			}
			cm.finished(ctx, evt.CommandFinishedEvent, errors.New(evt.Failure))
		},
	}
}
