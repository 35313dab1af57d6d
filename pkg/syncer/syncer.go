// Package syncer applies identity-provider webhooks and internal events to the
// local database. Every handler is an idempotent upsert keyed by the external
// id, and applied events are recorded so that redeliveries are acknowledged
// without being applied twice.
package syncer

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/raids-lab/projecthub/pkg/alert"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/logutils"
	"github.com/raids-lab/projecthub/pkg/metrics"
	"github.com/raids-lab/projecthub/pkg/otel"
)

const (
	resultOK        = "ok"
	resultError     = "error"
	resultDuplicate = "duplicate"
	resultIgnored   = "ignored"
)

type handlerFunc func(ctx context.Context, tx *db.Store, ev events.Event) error

type Syncer struct {
	store       *db.Store
	alerter     alert.AlertInterface
	frontendURL string
	handlers    map[string]handlerFunc

	// now is replaced in tests
	now func() time.Time
}

var _ events.Handler = (*Syncer)(nil)

func New(store *db.Store, alerter alert.AlertInterface, frontendURL string) *Syncer {
	s := &Syncer{
		store:       store,
		alerter:     alerter,
		frontendURL: frontendURL,
		now:         time.Now,
	}
	s.handlers = map[string]handlerFunc{
		events.UserCreated:         s.upsertUser,
		events.UserUpdated:         s.upsertUser,
		events.UserDeleted:         s.deleteUser,
		events.OrganizationCreated: s.createWorkspace,
		events.OrganizationUpdated: s.updateWorkspace,
		events.OrganizationDeleted: s.deleteWorkspace,
		events.InvitationAccepted:  s.acceptInvitation,
		events.TaskAssigned:        s.taskAssigned,
	}
	return s
}

// Handle applies ev once. The handler and the record of the event share a
// transaction, so a failed handler leaves the event unrecorded and a retry
// applies it again.
func (s *Syncer) Handle(ctx context.Context, ev events.Event) (err error) {
	key := ev.Key()
	ctx, span := otel.Tracer().Start(ctx, "syncer.Handle")
	span.SetAttributes(attribute.String("event.name", ev.Name), attribute.String("event.key", key))
	result := resultOK
	defer func() {
		if err != nil {
			result = resultError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.SyncEvents.WithLabelValues(ev.Name, result).Inc()
		span.End()
	}()

	log := logutils.WithEvent(ev.Name, key)
	handler, ok := s.handlers[ev.Name]
	if !ok {
		result = resultIgnored
		log.Warn("no handler for event")
		return nil
	}

	processed, err := s.store.EventProcessed(ctx, key)
	if err != nil {
		return err
	}
	if processed {
		result = resultDuplicate
		log.Debug("event already applied")
		return nil
	}

	err = s.store.Transaction(ctx, func(tx *db.Store) error {
		if err := handler(ctx, tx, ev); err != nil {
			return err
		}
		return tx.RecordEvent(ctx, key, ev.Name, ev.Data, s.now())
	})
	if errors.Is(err, apperror.ErrConflict) {
		if done, checkErr := s.store.EventProcessed(ctx, key); checkErr == nil && done {
			result = resultDuplicate
			log.Debug("event applied by a concurrent delivery")
			return nil
		}
	}
	if err != nil {
		log.WithError(err).Error("apply event")
		return err
	}
	log.Info("event applied")
	return nil
}
