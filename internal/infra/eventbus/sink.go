package eventbus

import (
	"context"
	"log/slog"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/infra/eventlog"
	"escrow-market/internal/pkg/metrics"
)

// Sink fans one emitted event out to the sqlite journal, the live hub and
// the lifecycle counters. A journal failure is logged, not propagated: the
// operation that produced the event has already settled.
type Sink struct {
	journal *eventlog.Journal
	hub     *Hub
	metrics *metrics.Metrics
}

func NewSink(journal *eventlog.Journal, hub *Hub, m *metrics.Metrics) *Sink {
	return &Sink{journal: journal, hub: hub, metrics: m}
}

func (s *Sink) Emit(ctx context.Context, evt offer.Event) {
	stored, err := s.journal.Append(ctx, evt)
	if err != nil {
		slog.Error("failed to journal market event", "type", evt.Type, "offer_id", evt.OfferID, "error", err)
		stored = evt
	}

	s.hub.Publish(stored)
	s.count(stored)
}

func (s *Sink) count(evt offer.Event) {
	kind := string(evt.Kind)
	switch evt.Type {
	case offer.SellOfferCreated, offer.BuyOfferCreated:
		s.metrics.OffersCreated.WithLabelValues(kind).Inc()
	case offer.SellOfferAccepted, offer.BuyOfferAccepted:
		s.metrics.OffersSettled.WithLabelValues(kind).Inc()
	case offer.SellOfferCancelled, offer.BuyOfferCancelled:
		s.metrics.OffersCancelled.WithLabelValues(kind).Inc()
	}
}
