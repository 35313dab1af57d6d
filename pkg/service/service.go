// Package service implements the workspace, project, task and comment
// operations. Each operation receives the caller explicitly, loads current
// state, asks the rule engine, then writes.
package service

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/raids-lab/projecthub/pkg/authz"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/logutils"
	"github.com/raids-lab/projecthub/pkg/metrics"
	"github.com/raids-lab/projecthub/pkg/otel"
)

type Options struct {
	// StrictBatchDelete checks every project touched by a batch delete.
	StrictBatchDelete bool
}

type Service struct {
	store     *db.Store
	publisher events.Publisher
	opts      Options
}

func New(store *db.Store, publisher events.Publisher, opts Options) *Service {
	return &Service{store: store, publisher: publisher, opts: opts}
}

func (s *Service) Store() *db.Store {
	return s.store
}

func start(ctx context.Context, name string, caller authz.Caller) (context.Context, trace.Span) {
	ctx, span := otel.Tracer().Start(ctx, "service."+name)
	span.SetAttributes(userAttr(caller.UserID))
	return ctx, span
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// decide records the outcome of a rule-engine check and passes it through.
func decide(action authz.Action, err error) error {
	metrics.ObserveDecision(string(action), err)
	return err
}

func (s *Service) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logutils.WithEvent(ev.Name, ev.ID).WithError(err).Error("publish event")
	}
}
