package request

import (
	"time"

	"github.com/google/uuid"
)

// Price/payment fields deliberately carry no "required" binding: a zero value
// must reach the engine so the caller gets the domain rejection, not a bind
// failure.
type CreateSellOfferRequest struct {
	Collection uuid.UUID `json:"collection" binding:"required"`
	AssetID    uint64    `json:"assetId"`
	Price      uint64    `json:"price"`
	Deadline   time.Time `json:"deadline" binding:"required"`
}

type CreateBuyOfferRequest struct {
	Collection uuid.UUID `json:"collection" binding:"required"`
	AssetID    uint64    `json:"assetId"`
	Payment    uint64    `json:"payment"`
	Deadline   time.Time `json:"deadline" binding:"required"`
}

type AcceptSellOfferRequest struct {
	Payment uint64 `json:"payment"`
}
