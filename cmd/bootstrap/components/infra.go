package components

import (
	"escrow-market/internal/infra/eventbus"
	"escrow-market/internal/infra/ledger"
	"escrow-market/internal/infra/memstore"
	"escrow-market/internal/infra/registry"
	"escrow-market/internal/infra/traderstore"
	"escrow-market/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// InfraModule wires the in-memory stores, the escrow identity they share and
// the event fan-out plumbing.
var InfraModule = fx.Module("infra",
	fx.Provide(
		memstore.NewOfferStore,
		registry.NewAssetRegistry,
		traderstore.NewStore,
		eventbus.NewHub,
		eventbus.NewSink,
		NewEscrowID,
		NewPaymentLedger,
		NewMetricsRegistry,
		NewMetrics,
	),
)

// NewEscrowID mints the identity that holds custody and payment value while
// offers are open. Everything escrow-related keys off this one id.
func NewEscrowID() uuid.UUID {
	return uuid.New()
}

func NewPaymentLedger(escrowID uuid.UUID) *ledger.PaymentLedger {
	return ledger.NewPaymentLedger(escrowID)
}

func NewMetricsRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func NewMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}
