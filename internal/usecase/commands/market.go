package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/pkg/clock"
	"escrow-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOfferNotFound   = errs.New("offer not found")
	ErrNotOwner        = errs.New("caller lacks the required ownership")
	ErrInvalidDeadline = errs.New("deadline is not in the future")
	ErrInvalidPrice    = errs.New("price must be positive")
	ErrOfferEnded      = errs.New("offer already ended or expired")
	ErrOfferNotExpired = errs.New("offer deadline has not passed yet")
	ErrWrongAmount     = errs.New("payment does not match the offer price")
	ErrPaymentTransfer = errs.New("payment transfer failed")
	ErrAssetTransfer   = errs.New("asset transfer failed")
)

// OfferStore is the two-collection offer storage with per-kind id issuance.
type OfferStore interface {
	Allocate(kind offer.Kind) uint64
	Get(kind offer.Kind, id uint64) (*offer.Offer, error)
	Put(kind offer.Kind, id uint64, o *offer.Offer)
}

// AssetRegistry is the authoritative owner-of-record for assets. TransferFrom
// requires the sender to have pre-authorized the mover when they differ.
type AssetRegistry interface {
	OwnerOf(collection uuid.UUID, assetID uint64) (uuid.UUID, error)
	TransferFrom(mover, from, to uuid.UUID, collection uuid.UUID, assetID uint64) error
}

// PaymentChannel moves payment value through the engine's escrow account.
type PaymentChannel interface {
	Collect(from uuid.UUID, amount uint64) error
	Send(to uuid.UUID, amount uint64) error
}

// EventSink receives one event per successful terminal effect.
type EventSink interface {
	Emit(ctx context.Context, evt offer.Event)
}

type CreateSellOfferParams struct {
	Collection uuid.UUID
	AssetID    uint64
	Price      uint64
	Deadline   time.Time
}

type CreateBuyOfferParams struct {
	Collection uuid.UUID
	AssetID    uint64
	Payment    uint64
	Deadline   time.Time
}

type CreateOfferResult struct {
	OfferID uint64
}

type MarketCommands interface {
	CreateSellOffer(ctx context.Context, caller uuid.UUID, p CreateSellOfferParams) (*CreateOfferResult, error)
	AcceptSellOffer(ctx context.Context, caller uuid.UUID, id uint64, payment uint64) error
	CancelSellOffer(ctx context.Context, caller uuid.UUID, id uint64) error
	CreateBuyOffer(ctx context.Context, caller uuid.UUID, p CreateBuyOfferParams) (*CreateOfferResult, error)
	AcceptBuyOffer(ctx context.Context, caller uuid.UUID, id uint64) error
	CancelBuyOffer(ctx context.Context, caller uuid.UUID, id uint64) error

	// EscrowID is the identity holding custody and payment value between
	// creation and settlement.
	EscrowID() uuid.UUID
}

type marketUseCaseImpl struct {
	// Serializes the six operations end to end, external transfers included,
	// so no observer ever sees a partially applied operation.
	mu sync.Mutex

	store    OfferStore
	registry AssetRegistry
	payments PaymentChannel
	sink     EventSink
	clock    clock.Clock
	escrowID uuid.UUID
}

func NewMarketCommands(
	store OfferStore,
	registry AssetRegistry,
	payments PaymentChannel,
	sink EventSink,
	clk clock.Clock,
	escrowID uuid.UUID,
) MarketCommands {
	return &marketUseCaseImpl{
		store:    store,
		registry: registry,
		payments: payments,
		sink:     sink,
		clock:    clk,
		escrowID: escrowID,
	}
}

func (m *marketUseCaseImpl) EscrowID() uuid.UUID {
	return m.escrowID
}

// OnAssetReceived acknowledges every asset routed to the escrow account.
func (m *marketUseCaseImpl) OnAssetReceived(collection uuid.UUID, from uuid.UUID, assetID uint64) error {
	slog.Debug("asset received into escrow", "collection", collection, "from", from, "asset_id", assetID)
	return nil
}

func (m *marketUseCaseImpl) CreateSellOffer(ctx context.Context, caller uuid.UUID, p CreateSellOfferParams) (*CreateOfferResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner, err := m.registry.OwnerOf(p.Collection, p.AssetID)
	if err != nil || owner != caller {
		return nil, errs.Mark(err, ErrNotOwner)
	}

	now := m.clock.Now()
	o, err := offer.New(offer.KindSell, offer.AssetRef{Collection: p.Collection, ID: p.AssetID}, p.Price, p.Deadline, caller, now)
	if err != nil {
		return nil, markCreationError(err)
	}

	// Custody moves into escrow before anything is committed: a failed
	// transfer burns no id and leaves no record.
	if err := m.registry.TransferFrom(m.escrowID, caller, m.escrowID, p.Collection, p.AssetID); err != nil {
		return nil, errs.Mark(err, ErrAssetTransfer)
	}

	id := m.store.Allocate(offer.KindSell)
	m.store.Put(offer.KindSell, id, o.WithID(id))

	m.emit(ctx, offer.SellOfferCreated, offer.KindSell, id, now)
	return &CreateOfferResult{OfferID: id}, nil
}

func (m *marketUseCaseImpl) AcceptSellOffer(ctx context.Context, caller uuid.UUID, id uint64, payment uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.store.Get(offer.KindSell, id)
	if err != nil {
		return errs.Mark(err, ErrOfferNotFound)
	}

	now := m.clock.Now()
	if !o.IsOpen() || o.HasExpired(now) {
		return ErrOfferEnded
	}
	if payment != o.Price() {
		return ErrWrongAmount
	}

	// Payment arrives synchronously with the call.
	if err := m.payments.Collect(caller, payment); err != nil {
		return errs.Mark(err, ErrPaymentTransfer)
	}

	snapshot := *o
	if err := o.Settle(); err != nil {
		m.refund(caller, payment)
		return errs.Mark(err, ErrOfferEnded)
	}
	m.store.Put(offer.KindSell, id, o)

	if err := m.payments.Send(snapshot.Offerer(), payment); err != nil {
		m.store.Put(offer.KindSell, id, &snapshot)
		m.refund(caller, payment)
		return errs.Mark(err, ErrPaymentTransfer)
	}

	if err := m.registry.TransferFrom(m.escrowID, m.escrowID, caller, snapshot.Asset().Collection, snapshot.Asset().ID); err != nil {
		m.store.Put(offer.KindSell, id, &snapshot)
		m.clawBack(snapshot.Offerer(), payment)
		m.refund(caller, payment)
		return errs.Mark(err, ErrAssetTransfer)
	}

	m.emit(ctx, offer.SellOfferAccepted, offer.KindSell, id, now)
	return nil
}

func (m *marketUseCaseImpl) CancelSellOffer(ctx context.Context, caller uuid.UUID, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.store.Get(offer.KindSell, id)
	if err != nil {
		return errs.Mark(err, ErrOfferNotFound)
	}

	now := m.clock.Now()
	if !o.IsOpen() {
		return ErrOfferEnded
	}
	if !o.IsOfferer(caller) {
		return ErrNotOwner
	}
	if !o.CancellableAt(now) {
		return ErrOfferNotExpired
	}

	snapshot := *o
	if err := o.Cancel(); err != nil {
		return errs.Mark(err, ErrOfferEnded)
	}
	m.store.Put(offer.KindSell, id, o)

	if err := m.registry.TransferFrom(m.escrowID, m.escrowID, snapshot.Offerer(), snapshot.Asset().Collection, snapshot.Asset().ID); err != nil {
		m.store.Put(offer.KindSell, id, &snapshot)
		return errs.Mark(err, ErrAssetTransfer)
	}

	m.emit(ctx, offer.SellOfferCancelled, offer.KindSell, id, now)
	return nil
}

func (m *marketUseCaseImpl) CreateBuyOffer(ctx context.Context, caller uuid.UUID, p CreateBuyOfferParams) (*CreateOfferResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// No ownership check: a buy offer is an unconditional commitment to
	// purchase, speculative on whoever owns the asset when it is accepted.
	now := m.clock.Now()
	o, err := offer.New(offer.KindBuy, offer.AssetRef{Collection: p.Collection, ID: p.AssetID}, p.Payment, p.Deadline, caller, now)
	if err != nil {
		return nil, markCreationError(err)
	}

	if err := m.payments.Collect(caller, p.Payment); err != nil {
		return nil, errs.Mark(err, ErrPaymentTransfer)
	}

	id := m.store.Allocate(offer.KindBuy)
	m.store.Put(offer.KindBuy, id, o.WithID(id))

	m.emit(ctx, offer.BuyOfferCreated, offer.KindBuy, id, now)
	return &CreateOfferResult{OfferID: id}, nil
}

func (m *marketUseCaseImpl) AcceptBuyOffer(ctx context.Context, caller uuid.UUID, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.store.Get(offer.KindBuy, id)
	if err != nil {
		return errs.Mark(err, ErrOfferNotFound)
	}

	// Ownership is evaluated against the current owner of record, not the
	// offerer: the asset may have changed hands since the offer was created.
	owner, err := m.registry.OwnerOf(o.Asset().Collection, o.Asset().ID)
	if err != nil || owner != caller {
		return errs.Mark(err, ErrNotOwner)
	}

	now := m.clock.Now()
	if !o.IsOpen() || o.HasExpired(now) {
		return ErrOfferEnded
	}

	snapshot := *o
	if err := o.Settle(); err != nil {
		return errs.Mark(err, ErrOfferEnded)
	}
	m.store.Put(offer.KindBuy, id, o)

	if err := m.payments.Send(caller, snapshot.Price()); err != nil {
		m.store.Put(offer.KindBuy, id, &snapshot)
		return errs.Mark(err, ErrPaymentTransfer)
	}

	if err := m.registry.TransferFrom(m.escrowID, caller, snapshot.Offerer(), snapshot.Asset().Collection, snapshot.Asset().ID); err != nil {
		m.store.Put(offer.KindBuy, id, &snapshot)
		m.clawBack(caller, snapshot.Price())
		return errs.Mark(err, ErrAssetTransfer)
	}

	m.emit(ctx, offer.BuyOfferAccepted, offer.KindBuy, id, now)
	return nil
}

func (m *marketUseCaseImpl) CancelBuyOffer(ctx context.Context, caller uuid.UUID, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.store.Get(offer.KindBuy, id)
	if err != nil {
		return errs.Mark(err, ErrOfferNotFound)
	}

	now := m.clock.Now()
	if !o.IsOpen() {
		return ErrOfferEnded
	}
	if !o.IsOfferer(caller) {
		return ErrNotOwner
	}
	if !o.CancellableAt(now) {
		return ErrOfferNotExpired
	}

	snapshot := *o
	if err := o.Cancel(); err != nil {
		return errs.Mark(err, ErrOfferEnded)
	}
	m.store.Put(offer.KindBuy, id, o)

	if err := m.payments.Send(snapshot.Offerer(), snapshot.Price()); err != nil {
		m.store.Put(offer.KindBuy, id, &snapshot)
		return errs.Mark(err, ErrPaymentTransfer)
	}

	m.emit(ctx, offer.BuyOfferCancelled, offer.KindBuy, id, now)
	return nil
}

func (m *marketUseCaseImpl) emit(ctx context.Context, typ offer.EventType, kind offer.Kind, id uint64, at time.Time) {
	m.sink.Emit(ctx, offer.Event{Type: typ, Kind: kind, OfferID: id, At: at})
}

// refund returns value collected into escrow to the payer. The payer holds a
// ledger account (it just paid), so failure means a ledger invariant broke.
func (m *marketUseCaseImpl) refund(to uuid.UUID, amount uint64) {
	if err := m.payments.Send(to, amount); err != nil {
		slog.Error("failed to refund collected payment", "to", to, "amount", amount, "error", err)
	}
}

// clawBack pulls a payout just delivered under this lock back into escrow.
func (m *marketUseCaseImpl) clawBack(from uuid.UUID, amount uint64) {
	if err := m.payments.Collect(from, amount); err != nil {
		slog.Error("failed to claw back delivered payment", "from", from, "amount", amount, "error", err)
	}
}

func markCreationError(err error) error {
	switch {
	case errors.Is(err, offer.ErrPastDeadline):
		return errs.Mark(err, ErrInvalidDeadline)
	case errors.Is(err, offer.ErrZeroPrice):
		return errs.Mark(err, ErrInvalidPrice)
	default:
		return err
	}
}
