package offer

import "time"

// EventType names the six terminal-effect events, one per successful
// marketplace operation.
type EventType string

const (
	SellOfferCreated   EventType = "sell_offer_created"
	SellOfferAccepted  EventType = "sell_offer_accepted"
	SellOfferCancelled EventType = "sell_offer_cancelled"
	BuyOfferCreated    EventType = "buy_offer_created"
	BuyOfferAccepted   EventType = "buy_offer_accepted"
	BuyOfferCancelled  EventType = "buy_offer_cancelled"
)

// Event records one successful lifecycle transition. Seq is assigned by the
// journal on append and is zero before that.
type Event struct {
	Seq     int64
	Type    EventType
	Kind    Kind
	OfferID uint64
	At      time.Time
}
