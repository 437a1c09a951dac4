package offer

import "github.com/google/uuid"

// Kind selects one of the two independent offer collections.
type Kind string

const (
	KindSell Kind = "sell"
	KindBuy  Kind = "buy"
)

func (k Kind) Valid() bool {
	return k == KindSell || k == KindBuy
}

// Status is the per-offer state machine. Open is the only state that accepts
// operations; the two terminal states record which path ended the offer but
// are treated identically by every precondition check.
type Status string

const (
	StatusOpen      Status = "open"
	StatusSettled   Status = "settled"
	StatusCancelled Status = "cancelled"
)

// AssetRef identifies one asset instance inside one registry collection.
type AssetRef struct {
	Collection uuid.UUID
	ID         uint64
}
