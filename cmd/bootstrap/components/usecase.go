package components

import (
	"escrow-market/internal/infra/eventbus"
	"escrow-market/internal/infra/eventlog"
	"escrow-market/internal/infra/ledger"
	"escrow-market/internal/infra/memstore"
	"escrow-market/internal/infra/registry"
	"escrow-market/internal/infra/traderstore"
	"escrow-market/internal/pkg/clock"
	"escrow-market/internal/pkg/jwt"
	"escrow-market/internal/usecase"
	"escrow-market/internal/usecase/commands"
	"escrow-market/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewMarketCommands,
		NewAuthUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewMarketQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewMarketCommands assembles the escrow engine and registers it as the
// receiver hook for assets routed into the escrow identity.
func NewMarketCommands(
	store *memstore.OfferStore,
	reg *registry.AssetRegistry,
	payments *ledger.PaymentLedger,
	sink *eventbus.Sink,
	clk clock.Clock,
	escrowID uuid.UUID,
) commands.MarketCommands {
	engine := commands.NewMarketCommands(store, reg, payments, sink, clk, escrowID)
	reg.RegisterReceiver(escrowID, engine.(registry.Receiver))
	return engine
}

func NewAuthUseCase(
	traders *traderstore.Store,
	payments *ledger.PaymentLedger,
	jwtService *jwt.Service,
	clk clock.Clock,
) usecase.AuthUseCase {
	return usecase.NewAuthUseCase(traders, payments, jwtService, clk)
}

func NewMarketQueries(store *memstore.OfferStore, journal *eventlog.Journal) queries.MarketQueries {
	return queries.NewMarketQueries(store, journal)
}
