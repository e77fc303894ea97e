package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/iiifas"
	"github.com/totegamma/iiifas/internal/domain"
)

var tracer = otel.Tracer("feed")

// EventMemoizer turns collection members into events, reusing stored ones.
type EventMemoizer struct {
	store  EventStore
	deref  Dereferencer
	config domain.FeedConfig
}

// NewEventMemoizer creates a memoizer. deref may be nil when
// config.CheckLastModified is false.
func NewEventMemoizer(store EventStore, deref Dereferencer, config domain.FeedConfig) *EventMemoizer {
	if config.Verb == "" {
		config.Verb = iiifas.DefaultVerb
	}
	return &EventMemoizer{
		store:  store,
		deref:  deref,
		config: config,
	}
}

// Resolve returns the event for member. A stored event wins over anything
// computed now, even if requestTime or the remote resource changed since.
func (m *EventMemoizer) Resolve(ctx context.Context, member domain.Member, collectionID, activityBase string, requestTime time.Time) iiifas.Event {
	ctx, span := tracer.Start(ctx, "Feed.Usecase.Resolve")
	defer span.End()

	key := iiifas.EventKey(member.ID)
	span.SetAttributes(attribute.String("key", key))

	if event, ok := m.lookup(ctx, key, member.ID); ok {
		span.SetAttributes(attribute.Bool("cached", true))
		return event
	}

	event := iiifas.Event{
		Type:       m.config.Verb,
		Actor:      m.config.Actor,
		Instrument: m.config.Instrument,
		Object: iiifas.Object{
			ID:     member.ID,
			Type:   iiifas.NormalizeType(member.Type),
			Label:  member.Label,
			Within: collectionID,
		},
		EndTime: iiifas.FormatTime(m.endTime(ctx, member.ID, requestTime)),
	}

	if !m.config.EventIDs {
		return event
	}

	event.ID = activityBase + key
	m.persist(ctx, key, member.ID, event)
	return event
}

// Lookup returns a persisted event by its store key.
func (m *EventMemoizer) Lookup(ctx context.Context, key string) (iiifas.Event, error) {
	if !iiifas.IsEventKey(key) {
		return iiifas.Event{}, domain.NotFoundError{Resource: "activity"}
	}

	data, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return iiifas.Event{}, domain.NotFoundError{Resource: "activity"}
		}
		return iiifas.Event{}, domain.StoreUnavailableError{Key: key, Err: err}
	}

	var event iiifas.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return iiifas.Event{}, err
	}
	return event, nil
}

func (m *EventMemoizer) lookup(ctx context.Context, key, memberID string) (iiifas.Event, bool) {
	data, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.WarnContext(
				ctx, "event store read failed, recomputing",
				slog.String("module", "memoizer"),
				slog.String("member", memberID),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return iiifas.Event{}, false
	}

	var event iiifas.Event
	if err := json.Unmarshal(data, &event); err != nil {
		slog.WarnContext(
			ctx, "stored event is not valid json, recomputing",
			slog.String("module", "memoizer"),
			slog.String("member", memberID),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return iiifas.Event{}, false
	}

	slog.DebugContext(
		ctx, "event served from store",
		slog.String("module", "memoizer"),
		slog.String("key", key),
	)
	return event, true
}

func (m *EventMemoizer) endTime(ctx context.Context, memberID string, requestTime time.Time) time.Time {
	if !m.config.CheckLastModified || m.deref == nil {
		return requestTime
	}

	lastModified, err := m.deref.LastModified(ctx, memberID)
	if err != nil {
		slog.InfoContext(
			ctx, "last-modified unavailable, using request time",
			slog.String("module", "memoizer"),
			slog.String("member", memberID),
			slog.String("error", err.Error()),
		)
		return requestTime
	}
	return lastModified
}

func (m *EventMemoizer) persist(ctx context.Context, key, memberID string, event iiifas.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(
			ctx, "failed to encode event",
			slog.String("module", "memoizer"),
			slog.String("member", memberID),
			slog.String("error", err.Error()),
		)
		return
	}

	err = m.store.Put(ctx, key, data, m.config.EventTTL)
	if err != nil {
		slog.WarnContext(
			ctx, "event store write failed, event not persisted",
			slog.String("module", "memoizer"),
			slog.String("member", memberID),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
