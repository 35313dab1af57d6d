package events

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"

	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

// Publisher hands an event to whatever runs the handlers. Publish must not
// wait for the handlers to finish.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Handler applies one event.
type Handler interface {
	Handle(ctx context.Context, ev Event) error
}

func stamp(ev *Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.TS == 0 {
		ev.TS = time.Now().UnixMilli()
	}
}

// LocalPublisher runs handlers in-process on a goroutine per event. Failures
// are logged.
type LocalPublisher struct {
	handler Handler
	wg      sync.WaitGroup
}

func NewLocalPublisher(handler Handler) *LocalPublisher {
	return &LocalPublisher{handler: handler}
}

func (p *LocalPublisher) Publish(ctx context.Context, ev Event) error {
	stamp(&ev)
	detached := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.handler.Handle(detached, ev); err != nil {
			logutils.WithEvent(ev.Name, ev.ID).WithError(err).Error("handle local event")
		}
	}()
	return nil
}

// Wait blocks until every published event has been handled.
func (p *LocalPublisher) Wait() {
	p.wg.Wait()
}

// Drainer is implemented by publishers that run handlers in-process.
type Drainer interface {
	Drain(ctx context.Context) error
}

// Drain waits for in-flight handlers until ctx is done.
func (p *LocalPublisher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InngestPublisher sends events to the Inngest event API, which calls back
// into POST /api/inngest.
type InngestPublisher struct {
	client *req.Client
	url    string
}

func NewInngestPublisher(cfg config.InngestConfig) *InngestPublisher {
	return &InngestPublisher{
		client: req.C().SetTimeout(10 * time.Second),
		url:    strings.TrimSuffix(cfg.EventURL, "/") + "/" + cfg.EventKey,
	}
}

func (p *InngestPublisher) Publish(ctx context.Context, ev Event) error {
	stamp(&ev)
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ev).
		Post(p.url)
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.Name, err)
	}
	if !resp.IsSuccessState() {
		return fmt.Errorf("publish %s: unexpected status %d", ev.Name, resp.StatusCode)
	}
	return nil
}

// NewPublisher picks the Inngest publisher when an event key is configured
// and the in-process one otherwise.
func NewPublisher(cfg config.InngestConfig, local Handler) Publisher {
	if cfg.EventKey != "" {
		logutils.Log.Info("publishing events to Inngest")
		return NewInngestPublisher(cfg)
	}
	return NewLocalPublisher(local)
}
