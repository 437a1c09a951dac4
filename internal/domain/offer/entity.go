package offer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrZeroPrice       = errors.New("price must be positive")
	ErrPastDeadline    = errors.New("deadline must be in the future")
	ErrAlreadyEnded    = errors.New("offer already ended")
	ErrInvalidKind     = errors.New("invalid offer kind")
	ErrMissingOfferer  = errors.New("offerer is required")
	ErrMissingAssetRef = errors.New("asset collection is required")
)

// Offer is a stored intent to sell or buy one asset instance at a fixed
// price before a deadline. Everything but the status is immutable after
// creation; the status moves Open -> Settled|Cancelled exactly once.
type Offer struct {
	id        uint64
	kind      Kind
	price     uint64
	deadline  time.Time
	asset     AssetRef
	offerer   uuid.UUID
	status    Status
	createdAt time.Time
}

// New validates the creation preconditions shared by both offer kinds.
// The id is zero until the store allocates one via WithID.
func New(kind Kind, asset AssetRef, price uint64, deadline time.Time, offerer uuid.UUID, now time.Time) (*Offer, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if !deadline.After(now) {
		return nil, ErrPastDeadline
	}
	if price == 0 {
		return nil, ErrZeroPrice
	}
	if offerer == uuid.Nil {
		return nil, ErrMissingOfferer
	}
	if asset.Collection == uuid.Nil {
		return nil, ErrMissingAssetRef
	}
	return &Offer{
		kind:      kind,
		price:     price,
		deadline:  deadline,
		asset:     asset,
		offerer:   offerer,
		status:    StatusOpen,
		createdAt: now,
	}, nil
}

// Reconstruct rebuilds an offer from stored state without re-validating
// creation preconditions.
func Reconstruct(id uint64, kind Kind, asset AssetRef, price uint64, deadline time.Time, offerer uuid.UUID, status Status, createdAt time.Time) *Offer {
	return &Offer{
		id:        id,
		kind:      kind,
		price:     price,
		deadline:  deadline,
		asset:     asset,
		offerer:   offerer,
		status:    status,
		createdAt: createdAt,
	}
}

// WithID returns a copy carrying the store-allocated id.
func (o *Offer) WithID(id uint64) *Offer {
	c := *o
	c.id = id
	return &c
}

func (o *Offer) IsOpen() bool {
	return o.status == StatusOpen
}

// HasExpired reports whether the acceptance window has lapsed. An expired
// open offer rejects acceptance exactly like an ended one.
func (o *Offer) HasExpired(now time.Time) bool {
	return now.After(o.deadline)
}

// CancellableAt reports whether the listing window has elapsed; cancellation
// is only permitted from the deadline onward.
func (o *Offer) CancellableAt(now time.Time) bool {
	return !now.Before(o.deadline)
}

func (o *Offer) IsOfferer(id uuid.UUID) bool {
	return o.offerer == id
}

// Settle moves the offer to its settled terminal state.
func (o *Offer) Settle() error {
	if o.status != StatusOpen {
		return ErrAlreadyEnded
	}
	o.status = StatusSettled
	return nil
}

// Cancel moves the offer to its cancelled terminal state.
func (o *Offer) Cancel() error {
	if o.status != StatusOpen {
		return ErrAlreadyEnded
	}
	o.status = StatusCancelled
	return nil
}

func (o *Offer) ID() uint64          { return o.id }
func (o *Offer) Kind() Kind          { return o.kind }
func (o *Offer) Price() uint64       { return o.price }
func (o *Offer) Deadline() time.Time { return o.deadline }
func (o *Offer) Asset() AssetRef     { return o.asset }
func (o *Offer) Offerer() uuid.UUID  { return o.offerer }
func (o *Offer) Status() Status      { return o.status }
func (o *Offer) CreatedAt() time.Time { return o.createdAt }
