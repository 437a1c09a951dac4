package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts offer lifecycle outcomes per offer kind ("sell"/"buy").
type Metrics struct {
	OffersCreated   *prometheus.CounterVec
	OffersSettled   *prometheus.CounterVec
	OffersCancelled *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OffersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escrow_market",
			Name:      "offers_created_total",
			Help:      "Offers created, by kind.",
		}, []string{"kind"}),
		OffersSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escrow_market",
			Name:      "offers_settled_total",
			Help:      "Offers settled via accept, by kind.",
		}, []string{"kind"}),
		OffersCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escrow_market",
			Name:      "offers_cancelled_total",
			Help:      "Offers withdrawn by their offerer, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.OffersCreated, m.OffersSettled, m.OffersCancelled)
	return m
}
