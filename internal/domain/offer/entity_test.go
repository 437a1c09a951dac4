//go:build unit

package offer_test

import (
	"testing"
	"time"

	"escrow-market/internal/domain/offer"
	"escrow-market/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OfferBuilder)
	errIs  error
}

func TestOffer(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewOfferBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, uint64(0), actual.ID())
		assert.Equal(t, offer.KindSell, actual.Kind())
		assert.Equal(t, offer.StatusOpen, actual.Status())
		assert.True(t, actual.IsOpen())
		assert.Equal(t, b.Price, actual.Price())
		assert.Equal(t, b.Now, actual.CreatedAt())
		assert.True(t, actual.IsOfferer(b.Offerer))
	})

	t.Run("creation validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "buy kind is valid",
				mutate: func(b *builder.OfferBuilder) { b.Kind = offer.KindBuy },
			},
			{
				name:   "unknown kind",
				mutate: func(b *builder.OfferBuilder) { b.Kind = offer.Kind("swap") },
				errIs:  offer.ErrInvalidKind,
			},
			{
				name:   "zero price",
				mutate: func(b *builder.OfferBuilder) { b.Price = 0 },
				errIs:  offer.ErrZeroPrice,
			},
			{
				name:   "deadline in the past",
				mutate: func(b *builder.OfferBuilder) { b.Deadline = b.Now.Add(-time.Hour) },
				errIs:  offer.ErrPastDeadline,
			},
			{
				name:   "deadline equal to now",
				mutate: func(b *builder.OfferBuilder) { b.Deadline = b.Now },
				errIs:  offer.ErrPastDeadline,
			},
			{
				name: "past deadline reported before zero price",
				mutate: func(b *builder.OfferBuilder) {
					b.Deadline = b.Now.Add(-time.Hour)
					b.Price = 0
				},
				errIs: offer.ErrPastDeadline,
			},
			{
				name:   "missing offerer",
				mutate: func(b *builder.OfferBuilder) { b.Offerer = uuid.Nil },
				errIs:  offer.ErrMissingOfferer,
			},
			{
				name:   "missing asset collection",
				mutate: func(b *builder.OfferBuilder) { b.Collection = uuid.Nil },
				errIs:  offer.ErrMissingAssetRef,
			},
		})
	})
}

func TestOfferLifecycle(t *testing.T) {
	t.Run("settle moves open to settled exactly once", func(t *testing.T) {
		o, err := builder.NewOfferBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, o.Settle())
		assert.Equal(t, offer.StatusSettled, o.Status())
		assert.False(t, o.IsOpen())

		assert.ErrorIs(t, o.Settle(), offer.ErrAlreadyEnded)
		assert.ErrorIs(t, o.Cancel(), offer.ErrAlreadyEnded)
	})

	t.Run("cancel moves open to cancelled exactly once", func(t *testing.T) {
		o, err := builder.NewOfferBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, o.Cancel())
		assert.Equal(t, offer.StatusCancelled, o.Status())

		assert.ErrorIs(t, o.Cancel(), offer.ErrAlreadyEnded)
		assert.ErrorIs(t, o.Settle(), offer.ErrAlreadyEnded)
	})

	t.Run("expiry and cancellability pivot on the deadline", func(t *testing.T) {
		b := builder.NewOfferBuilder()
		o, err := b.BuildDomain()
		require.NoError(t, err)

		beforeDeadline := b.Deadline.Add(-time.Second)
		atDeadline := b.Deadline
		afterDeadline := b.Deadline.Add(time.Second)

		assert.False(t, o.HasExpired(beforeDeadline))
		assert.False(t, o.HasExpired(atDeadline))
		assert.True(t, o.HasExpired(afterDeadline))

		assert.False(t, o.CancellableAt(beforeDeadline))
		assert.True(t, o.CancellableAt(atDeadline))
		assert.True(t, o.CancellableAt(afterDeadline))
	})

	t.Run("with id returns a copy", func(t *testing.T) {
		o, err := builder.NewOfferBuilder().BuildDomain()
		require.NoError(t, err)

		stored := o.WithID(42)
		assert.Equal(t, uint64(42), stored.ID())
		assert.Equal(t, uint64(0), o.ID())
	})
}

func TestReconstruct(t *testing.T) {
	b := builder.NewOfferBuilder()
	o := offer.Reconstruct(9, offer.KindBuy, offer.AssetRef{Collection: b.Collection, ID: b.AssetID},
		b.Price, b.Deadline, b.Offerer, offer.StatusSettled, b.Now)

	assert.Equal(t, uint64(9), o.ID())
	assert.Equal(t, offer.KindBuy, o.Kind())
	assert.Equal(t, offer.StatusSettled, o.Status())
	assert.False(t, o.IsOpen())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewOfferBuilder()
			tc.mutate(b)
			actual, err := b.BuildDomain()

			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, actual)
		})
	}
}
