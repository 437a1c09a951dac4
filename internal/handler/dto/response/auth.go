package response

import (
	"escrow-market/internal/usecase"
)

type LoginResponse struct {
	AccessToken string                 `json:"accessToken"`
	Trader      *usecase.TraderAccount `json:"trader"`
}

type RegisterResponse struct {
	Trader *usecase.TraderAccount `json:"trader"`
}

type BalanceResponse struct {
	Balance uint64 `json:"balance"`
}
