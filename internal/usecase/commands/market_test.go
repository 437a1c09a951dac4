//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/infra/ledger"
	"escrow-market/internal/infra/memstore"
	"escrow-market/internal/infra/registry"
	"escrow-market/internal/pkg/clock"
	"escrow-market/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type captureSink struct {
	events []offer.Event
}

func (s *captureSink) Emit(_ context.Context, evt offer.Event) {
	s.events = append(s.events, evt)
}

func (s *captureSink) lastType() offer.EventType {
	if len(s.events) == 0 {
		return ""
	}
	return s.events[len(s.events)-1].Type
}

type MarketCommandsTestSuite struct {
	suite.Suite
	ctx context.Context

	store    *memstore.OfferStore
	registry *registry.AssetRegistry
	ledger   *ledger.PaymentLedger
	clock    *clock.MockClock
	sink     *captureSink
	engine   commands.MarketCommands

	escrowID   uuid.UUID
	seller     uuid.UUID
	buyer      uuid.UUID
	collection uuid.UUID

	now      time.Time
	deadline time.Time
}

func TestMarketCommandsSuite(t *testing.T) {
	suite.Run(t, new(MarketCommandsTestSuite))
}

const (
	assetID      = uint64(1)
	sellerFunds  = uint64(5_000)
	buyerFunds   = uint64(10_000)
	listingPrice = uint64(1_000)
)

func (s *MarketCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.deadline = s.now.Add(24 * time.Hour)

	s.escrowID = uuid.New()
	s.seller = uuid.New()
	s.buyer = uuid.New()
	s.collection = uuid.New()

	s.store = memstore.NewOfferStore()
	s.registry = registry.NewAssetRegistry()
	s.ledger = ledger.NewPaymentLedger(s.escrowID)
	s.clock = clock.NewMockClock(s.now)
	s.sink = &captureSink{}

	s.engine = commands.NewMarketCommands(s.store, s.registry, s.ledger, s.sink, s.clock, s.escrowID)
	s.registry.RegisterReceiver(s.escrowID, s.engine.(registry.Receiver))

	require.NoError(s.T(), s.registry.Mint(s.collection, assetID, s.seller))
	s.registry.SetApproval(s.seller, s.escrowID, true)
	s.registry.SetApproval(s.buyer, s.escrowID, true)

	s.ledger.Open(s.seller)
	s.ledger.Open(s.buyer)
	s.ledger.Deposit(s.seller, sellerFunds)
	s.ledger.Deposit(s.buyer, buyerFunds)
}

func (s *MarketCommandsTestSuite) createSellOffer() uint64 {
	result, err := s.engine.CreateSellOffer(s.ctx, s.seller, commands.CreateSellOfferParams{
		Collection: s.collection,
		AssetID:    assetID,
		Price:      listingPrice,
		Deadline:   s.deadline,
	})
	s.Require().NoError(err)
	return result.OfferID
}

func (s *MarketCommandsTestSuite) createBuyOffer() uint64 {
	result, err := s.engine.CreateBuyOffer(s.ctx, s.buyer, commands.CreateBuyOfferParams{
		Collection: s.collection,
		AssetID:    assetID,
		Payment:    listingPrice,
		Deadline:   s.deadline,
	})
	s.Require().NoError(err)
	return result.OfferID
}

func (s *MarketCommandsTestSuite) ownerOf(id uint64) uuid.UUID {
	owner, err := s.registry.OwnerOf(s.collection, id)
	s.Require().NoError(err)
	return owner
}

// ================================================================================
// CreateSellOffer
// ================================================================================

func (s *MarketCommandsTestSuite) TestCreateSellOffer() {
	s.Run("success moves custody into escrow and records the offer", func() {
		s.SetupTest()
		id := s.createSellOffer()

		s.Equal(uint64(0), id)
		s.Equal(s.escrowID, s.ownerOf(assetID))

		stored, err := s.store.Get(offer.KindSell, id)
		s.Require().NoError(err)
		s.True(stored.IsOpen())
		s.Equal(listingPrice, stored.Price())
		s.Equal(offer.SellOfferCreated, s.sink.lastType())
	})

	s.Run("caller must own the asset", func() {
		s.SetupTest()
		_, err := s.engine.CreateSellOffer(s.ctx, s.buyer, commands.CreateSellOfferParams{
			Collection: s.collection,
			AssetID:    assetID,
			Price:      listingPrice,
			Deadline:   s.deadline,
		})
		s.ErrorIs(err, commands.ErrNotOwner)
		s.Equal(s.seller, s.ownerOf(assetID))
	})

	s.Run("unknown asset rejects as not owner", func() {
		s.SetupTest()
		_, err := s.engine.CreateSellOffer(s.ctx, s.seller, commands.CreateSellOfferParams{
			Collection: s.collection,
			AssetID:    999,
			Price:      listingPrice,
			Deadline:   s.deadline,
		})
		s.ErrorIs(err, commands.ErrNotOwner)
	})

	s.Run("zero price", func() {
		s.SetupTest()
		_, err := s.engine.CreateSellOffer(s.ctx, s.seller, commands.CreateSellOfferParams{
			Collection: s.collection,
			AssetID:    assetID,
			Price:      0,
			Deadline:   s.deadline,
		})
		s.ErrorIs(err, commands.ErrInvalidPrice)
	})

	s.Run("past deadline wins over zero price", func() {
		s.SetupTest()
		_, err := s.engine.CreateSellOffer(s.ctx, s.seller, commands.CreateSellOfferParams{
			Collection: s.collection,
			AssetID:    assetID,
			Price:      0,
			Deadline:   s.now.Add(-time.Hour),
		})
		s.ErrorIs(err, commands.ErrInvalidDeadline)
	})

	s.Run("failed custody transfer burns no id and leaves no record", func() {
		s.SetupTest()
		s.registry.SetApproval(s.seller, s.escrowID, false)

		_, err := s.engine.CreateSellOffer(s.ctx, s.seller, commands.CreateSellOfferParams{
			Collection: s.collection,
			AssetID:    assetID,
			Price:      listingPrice,
			Deadline:   s.deadline,
		})
		s.ErrorIs(err, commands.ErrAssetTransfer)
		s.Equal(s.seller, s.ownerOf(assetID))
		s.Empty(s.sink.events)

		s.registry.SetApproval(s.seller, s.escrowID, true)
		s.Equal(uint64(0), s.createSellOffer(), "the failed attempt must not have advanced the id sequence")
	})
}

// ================================================================================
// AcceptSellOffer
// ================================================================================

func (s *MarketCommandsTestSuite) TestAcceptSellOffer() {
	s.Run("settlement delivers payment to seller and asset to buyer", func() {
		s.SetupTest()
		id := s.createSellOffer()

		s.Require().NoError(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice))

		s.Equal(s.buyer, s.ownerOf(assetID))
		s.Equal(sellerFunds+listingPrice, s.ledger.BalanceOf(s.seller))
		s.Equal(buyerFunds-listingPrice, s.ledger.BalanceOf(s.buyer))
		s.Equal(uint64(0), s.ledger.BalanceOf(s.escrowID))

		stored, err := s.store.Get(offer.KindSell, id)
		s.Require().NoError(err)
		s.Equal(offer.StatusSettled, stored.Status())
		s.Equal(offer.SellOfferAccepted, s.sink.lastType())
	})

	s.Run("missing offer", func() {
		s.SetupTest()
		s.ErrorIs(s.engine.AcceptSellOffer(s.ctx, s.buyer, 99, listingPrice), commands.ErrOfferNotFound)
	})

	s.Run("second acceptance is rejected", func() {
		s.SetupTest()
		id := s.createSellOffer()
		s.Require().NoError(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice))

		err := s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice)
		s.ErrorIs(err, commands.ErrOfferEnded)
		s.Equal(buyerFunds-listingPrice, s.ledger.BalanceOf(s.buyer))
	})

	s.Run("wrong payment amount", func() {
		s.SetupTest()
		id := s.createSellOffer()

		s.ErrorIs(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice-1), commands.ErrWrongAmount)
		s.ErrorIs(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice+1), commands.ErrWrongAmount)
		s.Equal(buyerFunds, s.ledger.BalanceOf(s.buyer))
	})

	s.Run("expiry is checked before the payment amount", func() {
		s.SetupTest()
		id := s.createSellOffer()
		s.clock.Set(s.deadline.Add(time.Second))

		err := s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice-1)
		s.ErrorIs(err, commands.ErrOfferEnded)
	})

	s.Run("acceptance at the deadline still settles", func() {
		s.SetupTest()
		id := s.createSellOffer()
		s.clock.Set(s.deadline)

		s.NoError(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice))
	})

	s.Run("insufficient funds leave the offer open", func() {
		s.SetupTest()
		id := s.createSellOffer()
		poor := uuid.New()
		s.ledger.Open(poor)

		s.ErrorIs(s.engine.AcceptSellOffer(s.ctx, poor, id, listingPrice), commands.ErrPaymentTransfer)

		stored, err := s.store.Get(offer.KindSell, id)
		s.Require().NoError(err)
		s.True(stored.IsOpen())
	})

	s.Run("failed payout rolls the settlement back and refunds the payer", func() {
		s.SetupTest()
		// A seller the ledger has never seen cannot take delivery of the payout.
		ghostSeller := uuid.New()
		ghostAsset := uint64(2)
		s.Require().NoError(s.registry.Mint(s.collection, ghostAsset, ghostSeller))
		s.registry.SetApproval(ghostSeller, s.escrowID, true)

		result, err := s.engine.CreateSellOffer(s.ctx, ghostSeller, commands.CreateSellOfferParams{
			Collection: s.collection,
			AssetID:    ghostAsset,
			Price:      listingPrice,
			Deadline:   s.deadline,
		})
		s.Require().NoError(err)

		err = s.engine.AcceptSellOffer(s.ctx, s.buyer, result.OfferID, listingPrice)
		s.ErrorIs(err, commands.ErrPaymentTransfer)

		s.Equal(buyerFunds, s.ledger.BalanceOf(s.buyer))
		s.Equal(uint64(0), s.ledger.BalanceOf(s.escrowID))
		s.Equal(s.escrowID, s.ownerOf(ghostAsset))

		stored, err := s.store.Get(offer.KindSell, result.OfferID)
		s.Require().NoError(err)
		s.True(stored.IsOpen(), "offer must stay acceptable after a failed settlement")
	})
}

// ================================================================================
// CancelSellOffer
// ================================================================================

func (s *MarketCommandsTestSuite) TestCancelSellOffer() {
	s.Run("offerer reclaims the asset after the deadline", func() {
		s.SetupTest()
		id := s.createSellOffer()
		s.clock.Set(s.deadline)

		s.Require().NoError(s.engine.CancelSellOffer(s.ctx, s.seller, id))

		s.Equal(s.seller, s.ownerOf(assetID))
		stored, err := s.store.Get(offer.KindSell, id)
		s.Require().NoError(err)
		s.Equal(offer.StatusCancelled, stored.Status())
		s.Equal(offer.SellOfferCancelled, s.sink.lastType())
	})

	s.Run("cancellation before the deadline is premature", func() {
		s.SetupTest()
		id := s.createSellOffer()

		s.ErrorIs(s.engine.CancelSellOffer(s.ctx, s.seller, id), commands.ErrOfferNotExpired)
		s.Equal(s.escrowID, s.ownerOf(assetID))
	})

	s.Run("only the offerer may cancel", func() {
		s.SetupTest()
		id := s.createSellOffer()
		s.clock.Set(s.deadline)

		s.ErrorIs(s.engine.CancelSellOffer(s.ctx, s.buyer, id), commands.ErrNotOwner)
	})

	s.Run("ownership is reported before prematurity", func() {
		s.SetupTest()
		id := s.createSellOffer()

		// Still before the deadline, called by a stranger.
		s.ErrorIs(s.engine.CancelSellOffer(s.ctx, s.buyer, id), commands.ErrNotOwner)
	})

	s.Run("ended state is reported before ownership", func() {
		s.SetupTest()
		id := s.createSellOffer()
		s.Require().NoError(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice))
		s.clock.Set(s.deadline)

		s.ErrorIs(s.engine.CancelSellOffer(s.ctx, s.buyer, id), commands.ErrOfferEnded)
	})

	s.Run("cancelled offer cannot be accepted", func() {
		s.SetupTest()
		id := s.createSellOffer()
		s.clock.Set(s.deadline)
		s.Require().NoError(s.engine.CancelSellOffer(s.ctx, s.seller, id))

		s.ErrorIs(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice), commands.ErrOfferEnded)
	})
}

// ================================================================================
// CreateBuyOffer
// ================================================================================

func (s *MarketCommandsTestSuite) TestCreateBuyOffer() {
	s.Run("success escrows the committed payment", func() {
		s.SetupTest()
		id := s.createBuyOffer()

		s.Equal(uint64(0), id)
		s.Equal(buyerFunds-listingPrice, s.ledger.BalanceOf(s.buyer))
		s.Equal(listingPrice, s.ledger.BalanceOf(s.escrowID))
		s.Equal(offer.BuyOfferCreated, s.sink.lastType())
	})

	s.Run("no ownership requirement on the target asset", func() {
		s.SetupTest()
		// The asset belongs to the seller; the buyer may still commit to it.
		_, err := s.engine.CreateBuyOffer(s.ctx, s.buyer, commands.CreateBuyOfferParams{
			Collection: s.collection,
			AssetID:    assetID,
			Payment:    listingPrice,
			Deadline:   s.deadline,
		})
		s.NoError(err)
	})

	s.Run("insufficient funds burn no id", func() {
		s.SetupTest()
		_, err := s.engine.CreateBuyOffer(s.ctx, s.buyer, commands.CreateBuyOfferParams{
			Collection: s.collection,
			AssetID:    assetID,
			Payment:    buyerFunds + 1,
			Deadline:   s.deadline,
		})
		s.ErrorIs(err, commands.ErrPaymentTransfer)
		s.Equal(buyerFunds, s.ledger.BalanceOf(s.buyer))

		s.Equal(uint64(0), s.createBuyOffer(), "the failed attempt must not have advanced the id sequence")
	})

	s.Run("zero payment", func() {
		s.SetupTest()
		_, err := s.engine.CreateBuyOffer(s.ctx, s.buyer, commands.CreateBuyOfferParams{
			Collection: s.collection,
			AssetID:    assetID,
			Payment:    0,
			Deadline:   s.deadline,
		})
		s.ErrorIs(err, commands.ErrInvalidPrice)
	})

	s.Run("sell and buy ids are issued independently", func() {
		s.SetupTest()
		s.Equal(uint64(0), s.createSellOffer())
		s.Equal(uint64(0), s.createBuyOffer())
	})
}

// ================================================================================
// AcceptBuyOffer
// ================================================================================

func (s *MarketCommandsTestSuite) TestAcceptBuyOffer() {
	s.Run("current owner settles and takes the escrowed payment", func() {
		s.SetupTest()
		id := s.createBuyOffer()

		s.Require().NoError(s.engine.AcceptBuyOffer(s.ctx, s.seller, id))

		s.Equal(s.buyer, s.ownerOf(assetID))
		s.Equal(sellerFunds+listingPrice, s.ledger.BalanceOf(s.seller))
		s.Equal(uint64(0), s.ledger.BalanceOf(s.escrowID))

		stored, err := s.store.Get(offer.KindBuy, id)
		s.Require().NoError(err)
		s.Equal(offer.StatusSettled, stored.Status())
		s.Equal(offer.BuyOfferAccepted, s.sink.lastType())
	})

	s.Run("only the current owner may accept", func() {
		s.SetupTest()
		id := s.createBuyOffer()

		s.ErrorIs(s.engine.AcceptBuyOffer(s.ctx, s.buyer, id), commands.ErrNotOwner)
	})

	s.Run("ownership is checked before the ended state", func() {
		s.SetupTest()
		id := s.createBuyOffer()
		s.clock.Set(s.deadline.Add(time.Second))

		s.ErrorIs(s.engine.AcceptBuyOffer(s.ctx, s.buyer, id), commands.ErrNotOwner)
		s.ErrorIs(s.engine.AcceptBuyOffer(s.ctx, s.seller, id), commands.ErrOfferEnded)
	})

	s.Run("asset may change hands between offer and acceptance", func() {
		s.SetupTest()
		id := s.createBuyOffer()

		newOwner := uuid.New()
		s.ledger.Open(newOwner)
		s.registry.SetApproval(newOwner, s.escrowID, true)
		s.Require().NoError(s.registry.TransferFrom(s.seller, s.seller, newOwner, s.collection, assetID))

		s.ErrorIs(s.engine.AcceptBuyOffer(s.ctx, s.seller, id), commands.ErrNotOwner)
		s.Require().NoError(s.engine.AcceptBuyOffer(s.ctx, newOwner, id))

		s.Equal(s.buyer, s.ownerOf(assetID))
		s.Equal(listingPrice, s.ledger.BalanceOf(newOwner))
	})

	s.Run("failed asset transfer claws the payout back", func() {
		s.SetupTest()
		id := s.createBuyOffer()
		// Seller never authorized the engine to move its assets.
		s.registry.SetApproval(s.seller, s.escrowID, false)

		err := s.engine.AcceptBuyOffer(s.ctx, s.seller, id)
		s.ErrorIs(err, commands.ErrAssetTransfer)

		s.Equal(sellerFunds, s.ledger.BalanceOf(s.seller))
		s.Equal(listingPrice, s.ledger.BalanceOf(s.escrowID))
		s.Equal(s.seller, s.ownerOf(assetID))

		stored, err := s.store.Get(offer.KindBuy, id)
		s.Require().NoError(err)
		s.True(stored.IsOpen())
	})
}

// ================================================================================
// CancelBuyOffer
// ================================================================================

func (s *MarketCommandsTestSuite) TestCancelBuyOffer() {
	s.Run("offerer reclaims the escrowed payment after the deadline", func() {
		s.SetupTest()
		id := s.createBuyOffer()
		s.clock.Add(25 * time.Hour)

		s.Require().NoError(s.engine.CancelBuyOffer(s.ctx, s.buyer, id))

		s.Equal(buyerFunds, s.ledger.BalanceOf(s.buyer))
		s.Equal(uint64(0), s.ledger.BalanceOf(s.escrowID))

		stored, err := s.store.Get(offer.KindBuy, id)
		s.Require().NoError(err)
		s.Equal(offer.StatusCancelled, stored.Status())
		s.Equal(offer.BuyOfferCancelled, s.sink.lastType())
	})

	s.Run("premature cancellation", func() {
		s.SetupTest()
		id := s.createBuyOffer()

		s.ErrorIs(s.engine.CancelBuyOffer(s.ctx, s.buyer, id), commands.ErrOfferNotExpired)
		s.Equal(listingPrice, s.ledger.BalanceOf(s.escrowID))
	})

	s.Run("only the offerer may cancel", func() {
		s.SetupTest()
		id := s.createBuyOffer()
		s.clock.Set(s.deadline)

		s.ErrorIs(s.engine.CancelBuyOffer(s.ctx, s.seller, id), commands.ErrNotOwner)
	})

	s.Run("settled offer cannot be cancelled", func() {
		s.SetupTest()
		id := s.createBuyOffer()
		s.Require().NoError(s.engine.AcceptBuyOffer(s.ctx, s.seller, id))
		s.clock.Set(s.deadline)

		s.ErrorIs(s.engine.CancelBuyOffer(s.ctx, s.buyer, id), commands.ErrOfferEnded)
	})
}

// ================================================================================
// End-to-end value conservation
// ================================================================================

func (s *MarketCommandsTestSuite) TestValueConservation() {
	s.Run("a full sell round trip conserves total ledger value", func() {
		s.SetupTest()
		total := s.ledger.BalanceOf(s.seller) + s.ledger.BalanceOf(s.buyer) + s.ledger.BalanceOf(s.escrowID)

		id := s.createSellOffer()
		s.Require().NoError(s.engine.AcceptSellOffer(s.ctx, s.buyer, id, listingPrice))

		after := s.ledger.BalanceOf(s.seller) + s.ledger.BalanceOf(s.buyer) + s.ledger.BalanceOf(s.escrowID)
		s.Equal(total, after)
	})

	s.Run("a cancelled buy offer conserves total ledger value", func() {
		s.SetupTest()
		total := s.ledger.BalanceOf(s.seller) + s.ledger.BalanceOf(s.buyer) + s.ledger.BalanceOf(s.escrowID)

		id := s.createBuyOffer()
		s.clock.Set(s.deadline)
		s.Require().NoError(s.engine.CancelBuyOffer(s.ctx, s.buyer, id))

		after := s.ledger.BalanceOf(s.seller) + s.ledger.BalanceOf(s.buyer) + s.ledger.BalanceOf(s.escrowID)
		s.Equal(total, after)
	})
}
