package queries

import (
	"context"
	"time"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/infra"
	"escrow-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOfferNotFound = errs.New("offer not found")

// OfferView is the read model for one stored offer. Ended offers stay
// queryable forever; Status tells which path ended them.
type OfferView struct {
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

type CountersView struct {
	SellOffers uint64 `json:"sellOffers"`
	BuyOffers  uint64 `json:"buyOffers"`
}

type OfferReadStore interface {
	Get(kind offer.Kind, id uint64) (*offer.Offer, error)
	Counters() (sell, buy uint64)
}

type EventJournal interface {
	List(ctx context.Context, afterSeq int64, limit int) ([]offer.Event, error)
}

type MarketQueries interface {
	GetSellOffer(ctx context.Context, id uint64) (*OfferView, error)
	GetBuyOffer(ctx context.Context, id uint64) (*OfferView, error)
	Counters(ctx context.Context) (*CountersView, error)
	ListEvents(ctx context.Context, afterSeq int64, limit int) ([]offer.Event, error)
}

type marketQueriesImpl struct {
	store   OfferReadStore
	journal EventJournal
}

func NewMarketQueries(store OfferReadStore, journal EventJournal) MarketQueries {
	return &marketQueriesImpl{store: store, journal: journal}
}

func (q *marketQueriesImpl) GetSellOffer(ctx context.Context, id uint64) (*OfferView, error) {
	return q.get(offer.KindSell, id)
}

func (q *marketQueriesImpl) GetBuyOffer(ctx context.Context, id uint64) (*OfferView, error) {
	return q.get(offer.KindBuy, id)
}

func (q *marketQueriesImpl) get(kind offer.Kind, id uint64) (*OfferView, error) {
	o, err := q.store.Get(kind, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return viewOf(o), nil
}

func (q *marketQueriesImpl) Counters(_ context.Context) (*CountersView, error) {
	sell, buy := q.store.Counters()
	return &CountersView{SellOffers: sell, BuyOffers: buy}, nil
}

func (q *marketQueriesImpl) ListEvents(ctx context.Context, afterSeq int64, limit int) ([]offer.Event, error) {
	return q.journal.List(ctx, afterSeq, limit)
}

func viewOf(o *offer.Offer) *OfferView {
	return &OfferView{
		ID:         o.ID(),
		Kind:       string(o.Kind()),
		Price:      o.Price(),
		Deadline:   o.Deadline(),
		Collection: o.Asset().Collection,
		AssetID:    o.Asset().ID,
		Offerer:    o.Offerer(),
		Status:     string(o.Status()),
		Ended:      !o.IsOpen(),
		CreatedAt:  o.CreatedAt(),
	}
}
