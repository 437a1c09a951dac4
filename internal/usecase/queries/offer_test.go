//go:build unit

package queries_test

import (
	"context"
	"testing"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/infra/eventlog"
	"escrow-market/internal/infra/memstore"
	"escrow-market/internal/usecase/queries"
	"escrow-market/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueriesFixture(t *testing.T) (queries.MarketQueries, *memstore.OfferStore, *eventlog.Journal) {
	t.Helper()
	store := memstore.NewOfferStore()
	journal, err := eventlog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })
	return queries.NewMarketQueries(store, journal), store, journal
}

func TestGetOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored offer as a view", func(t *testing.T) {
		q, store, _ := newQueriesFixture(t)
		b := builder.NewOfferBuilder()
		o, err := b.BuildDomain()
		require.NoError(t, err)
		id := store.Allocate(offer.KindSell)
		store.Put(offer.KindSell, id, o.WithID(id))

		view, err := q.GetSellOffer(ctx, id)
		require.NoError(t, err)

		expected := b.BuildView(id)
		if diff := cmp.Diff(expected, view); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ended offers stay queryable with their terminal status", func(t *testing.T) {
		q, store, _ := newQueriesFixture(t)
		o, err := builder.NewOfferBuilder().BuildDomain()
		require.NoError(t, err)
		id := store.Allocate(offer.KindSell)
		stored := o.WithID(id)
		require.NoError(t, stored.Settle())
		store.Put(offer.KindSell, id, stored)

		view, err := q.GetSellOffer(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "settled", view.Status)
		assert.True(t, view.Ended)
	})

	t.Run("never-allocated id is not found", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		_, err := q.GetSellOffer(ctx, 0)
		assert.ErrorIs(t, err, queries.ErrOfferNotFound)
	})

	t.Run("kinds resolve against their own collections", func(t *testing.T) {
		q, store, _ := newQueriesFixture(t)
		b := builder.NewOfferBuilder()
		b.Kind = offer.KindBuy
		o, err := b.BuildDomain()
		require.NoError(t, err)
		id := store.Allocate(offer.KindBuy)
		store.Put(offer.KindBuy, id, o.WithID(id))

		_, err = q.GetSellOffer(ctx, id)
		assert.ErrorIs(t, err, queries.ErrOfferNotFound)

		view, err := q.GetBuyOffer(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "buy", view.Kind)
	})
}

func TestCounters(t *testing.T) {
	ctx := context.Background()

	q, store, _ := newQueriesFixture(t)
	store.Allocate(offer.KindSell)
	store.Allocate(offer.KindSell)
	store.Allocate(offer.KindBuy)

	counters, err := q.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), counters.SellOffers)
	assert.Equal(t, uint64(1), counters.BuyOffers)
}

func TestListEvents(t *testing.T) {
	ctx := context.Background()

	q, _, journal := newQueriesFixture(t)
	for i := range 3 {
		_, err := journal.Append(ctx, offer.Event{
			Type:    offer.SellOfferCreated,
			Kind:    offer.KindSell,
			OfferID: uint64(i),
			At:      builder.NewOfferBuilder().Now,
		})
		require.NoError(t, err)
	}

	events, err := q.ListEvents(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].Seq)
}
