package bootstrap

import (
	"log/slog"

	"escrow-market/internal/domain/trader"
	"escrow-market/internal/infra/ledger"
	"escrow-market/internal/infra/traderstore"
	"escrow-market/internal/pkg/clock"
	"escrow-market/internal/pkg/config"
	"escrow-market/internal/pkg/password"
)

// SeedAdmin provisions the admin account that mints assets and funds trader
// balances. The stores are in-memory, so this runs on every boot.
func SeedAdmin(cfg config.Config, traders *traderstore.Store, payments *ledger.PaymentLedger, clk clock.Clock) error {
	email, err := trader.NewEmail(cfg.Admin.Email)
	if err != nil {
		return err
	}
	hash, err := password.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := trader.NewTrader(email, hash, trader.RoleAdmin, clk.Now())
	if err := traders.Create(admin); err != nil {
		return err
	}
	payments.Open(admin.ID())

	slog.Info("admin account provisioned", "email", cfg.Admin.Email, "trader_id", admin.ID())
	return nil
}
