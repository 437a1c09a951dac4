package usecase

import (
	"context"
	"errors"

	"escrow-market/internal/domain/trader"
	"escrow-market/internal/infra"
	"escrow-market/internal/pkg/clock"
	"escrow-market/internal/pkg/jwt"
	"escrow-market/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrTraderNotFound     = errors.New("trader not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

// TraderAccount is the read model returned to handlers.
type TraderAccount struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type TraderRepository interface {
	Create(t *trader.Trader) error
	FindByID(id uuid.UUID) (*trader.Trader, error)
	FindByEmail(email string) (*trader.Trader, error)
}

// AccountProvisioner prepares side state a fresh trader needs: registered
// parties must be able to receive payments from escrow.
type AccountProvisioner interface {
	Open(id uuid.UUID)
}

type AuthUseCase interface {
	Register(ctx context.Context, email, rawPassword string) (*TraderAccount, error)
	Login(ctx context.Context, email, rawPassword string) (string, *TraderAccount, error)
	GetCurrentTrader(ctx context.Context, traderID uuid.UUID) (*TraderAccount, error)
}

type authUseCaseImpl struct {
	traders    TraderRepository
	ledger     AccountProvisioner
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthUseCase(traders TraderRepository, ledger AccountProvisioner, jwtService *jwt.Service, clk clock.Clock) AuthUseCase {
	return &authUseCaseImpl{
		traders:    traders,
		ledger:     ledger,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authUseCaseImpl) Register(_ context.Context, email, rawPassword string) (*TraderAccount, error) {
	emailVO, err := trader.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if _, err := trader.NewPassword(rawPassword); err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	t := trader.NewTrader(emailVO, hash, trader.RoleTrader, a.clock.Now())
	if err := a.traders.Create(t); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	a.ledger.Open(t.ID())

	return accountOf(t), nil
}

func (a *authUseCaseImpl) Login(_ context.Context, email, rawPassword string) (string, *TraderAccount, error) {
	t, err := a.traders.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := password.ComparePassword(t.PasswordHash(), rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(t.ID(), t.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, accountOf(t), nil
}

func (a *authUseCaseImpl) GetCurrentTrader(_ context.Context, traderID uuid.UUID) (*TraderAccount, error) {
	t, err := a.traders.FindByID(traderID)
	if err != nil {
		return nil, ErrTraderNotFound
	}
	return accountOf(t), nil
}

func accountOf(t *trader.Trader) *TraderAccount {
	return &TraderAccount{
		ID:    t.ID(),
		Email: t.Email().Value(),
		Role:  string(t.Role()),
	}
}
