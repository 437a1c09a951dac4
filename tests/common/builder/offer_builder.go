//go:build unit || e2e

package builder

import (
	"time"

	"escrow-market/internal/domain/offer"
	reqdto "escrow-market/internal/handler/dto/request"
	"escrow-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	Kind       offer.Kind
	Collection uuid.UUID
	AssetID    uint64
	Price      uint64
	Deadline   time.Time
	Offerer    uuid.UUID
	Now        time.Time
}

func NewOfferBuilder() *OfferBuilder {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &OfferBuilder{
		Kind:       offer.KindSell,
		Collection: uuid.New(),
		AssetID:    7,
		Price:      1000,
		Deadline:   now.Add(24 * time.Hour),
		Offerer:    uuid.New(),
		Now:        now,
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) BuildDomain() (*offer.Offer, error) {
	asset := offer.AssetRef{Collection: b.Collection, ID: b.AssetID}
	return offer.New(b.Kind, asset, b.Price, b.Deadline, b.Offerer, b.Now)
}

func (b *OfferBuilder) BuildCreateSellRequestDTO() reqdto.CreateSellOfferRequest {
	return reqdto.CreateSellOfferRequest{
		Collection: b.Collection,
		AssetID:    b.AssetID,
		Price:      b.Price,
		Deadline:   b.Deadline,
	}
}

func (b *OfferBuilder) BuildCreateBuyRequestDTO() reqdto.CreateBuyOfferRequest {
	return reqdto.CreateBuyOfferRequest{
		Collection: b.Collection,
		AssetID:    b.AssetID,
		Payment:    b.Price,
		Deadline:   b.Deadline,
	}
}

func (b *OfferBuilder) BuildView(id uint64) *queries.OfferView {
	return &queries.OfferView{
		ID:         id,
		Kind:       string(b.Kind),
		Price:      b.Price,
		Deadline:   b.Deadline,
		Collection: b.Collection,
		AssetID:    b.AssetID,
		Offerer:    b.Offerer,
		Status:     string(offer.StatusOpen),
		Ended:      false,
		CreatedAt:  b.Now,
	}
}
