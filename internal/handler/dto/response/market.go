package response

import (
	"time"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateOfferResponse struct {
	OfferID uint64 `json:"offerId"`
}

type OfferResponse struct {
	ID         uint64    `json:"id"`
	Kind       string    `json:"kind"`
	Price      uint64    `json:"price"`
	Deadline   time.Time `json:"deadline"`
	Collection uuid.UUID `json:"collection"`
	AssetID    uint64    `json:"assetId"`
	Offerer    uuid.UUID `json:"offerer"`
	Status     string    `json:"status"`
	Ended      bool      `json:"ended"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CountersResponse struct {
	SellOffers uint64 `json:"sellOffers"`
	BuyOffers  uint64 `json:"buyOffers"`
}

type EventResponse struct {
	Seq     int64     `json:"seq"`
	Type    string    `json:"type"`
	Kind    string    `json:"kind"`
	OfferID uint64    `json:"offerId"`
	At      time.Time `json:"at"`
}

func FromOfferView(v *queries.OfferView) *OfferResponse {
	return &OfferResponse{
		ID:         v.ID,
		Kind:       v.Kind,
		Price:      v.Price,
		Deadline:   v.Deadline,
		Collection: v.Collection,
		AssetID:    v.AssetID,
		Offerer:    v.Offerer,
		Status:     v.Status,
		Ended:      v.Ended,
		CreatedAt:  v.CreatedAt,
	}
}

func FromCountersView(v *queries.CountersView) *CountersResponse {
	return &CountersResponse{
		SellOffers: v.SellOffers,
		BuyOffers:  v.BuyOffers,
	}
}

func FromEvent(evt offer.Event) *EventResponse {
	return &EventResponse{
		Seq:     evt.Seq,
		Type:    string(evt.Type),
		Kind:    string(evt.Kind),
		OfferID: evt.OfferID,
		At:      evt.At,
	}
}
