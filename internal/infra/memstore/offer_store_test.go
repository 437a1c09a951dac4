//go:build unit

package memstore_test

import (
	"testing"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/infra"
	"escrow-market/internal/infra/memstore"
	"escrow-market/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferStore(t *testing.T) {
	newOffer := func(t *testing.T, kind offer.Kind) *offer.Offer {
		t.Helper()
		b := builder.NewOfferBuilder()
		b.Kind = kind
		o, err := b.BuildDomain()
		require.NoError(t, err)
		return o
	}

	t.Run("allocate issues sequential ids per kind", func(t *testing.T) {
		store := memstore.NewOfferStore()

		assert.Equal(t, uint64(0), store.Allocate(offer.KindSell))
		assert.Equal(t, uint64(1), store.Allocate(offer.KindSell))
		assert.Equal(t, uint64(0), store.Allocate(offer.KindBuy))
		assert.Equal(t, uint64(2), store.Allocate(offer.KindSell))
	})

	t.Run("get returns a copy of the stored offer", func(t *testing.T) {
		store := memstore.NewOfferStore()
		o := newOffer(t, offer.KindSell)
		id := store.Allocate(offer.KindSell)
		store.Put(offer.KindSell, id, o.WithID(id))

		first, err := store.Get(offer.KindSell, id)
		require.NoError(t, err)
		require.NoError(t, first.Settle())

		second, err := store.Get(offer.KindSell, id)
		require.NoError(t, err)
		assert.True(t, second.IsOpen(), "mutating a returned offer must not touch the stored record")
	})

	t.Run("put overwrites the slot", func(t *testing.T) {
		store := memstore.NewOfferStore()
		o := newOffer(t, offer.KindBuy)
		id := store.Allocate(offer.KindBuy)
		store.Put(offer.KindBuy, id, o.WithID(id))

		settled := o.WithID(id)
		require.NoError(t, settled.Settle())
		store.Put(offer.KindBuy, id, settled)

		got, err := store.Get(offer.KindBuy, id)
		require.NoError(t, err)
		assert.Equal(t, offer.StatusSettled, got.Status())
	})

	t.Run("never-allocated id is not found", func(t *testing.T) {
		store := memstore.NewOfferStore()

		_, err := store.Get(offer.KindSell, 0)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("kinds do not share records", func(t *testing.T) {
		store := memstore.NewOfferStore()
		o := newOffer(t, offer.KindSell)
		id := store.Allocate(offer.KindSell)
		store.Put(offer.KindSell, id, o.WithID(id))

		_, err := store.Get(offer.KindBuy, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("counters track issued ids", func(t *testing.T) {
		store := memstore.NewOfferStore()
		store.Allocate(offer.KindSell)
		store.Allocate(offer.KindSell)
		store.Allocate(offer.KindBuy)

		sell, buy := store.Counters()
		assert.Equal(t, uint64(2), sell)
		assert.Equal(t, uint64(1), buy)
	})
}
