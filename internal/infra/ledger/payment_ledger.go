package ledger

import (
	"sync"

	"escrow-market/internal/infra"

	"github.com/google/uuid"
)

// PaymentLedger is the in-memory payment channel. One escrow account, fixed
// at construction, holds value between offer creation and settlement.
type PaymentLedger struct {
	mu       sync.RWMutex
	escrow   uuid.UUID
	balances map[uuid.UUID]uint64
}

func NewPaymentLedger(escrow uuid.UUID) *PaymentLedger {
	return &PaymentLedger{
		escrow:   escrow,
		balances: make(map[uuid.UUID]uint64),
	}
}

// Deposit credits an account. Admin faucet for provisioning.
func (l *PaymentLedger) Deposit(to uuid.UUID, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[to] += amount
}

func (l *PaymentLedger) BalanceOf(id uuid.UUID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[id]
}

// Collect moves amount from the payer into escrow, synchronously with the
// operation that requires the payment. Fails when the payer cannot cover it.
func (l *PaymentLedger) Collect(from uuid.UUID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return infra.NewRepoErr(infra.KindInsufficientFunds, "payer balance does not cover the payment")
	}
	l.balances[from] -= amount
	l.balances[l.escrow] += amount
	return nil
}

// Send pays amount out of escrow to an arbitrary recipient. Fails when the
// recipient has never held a balance (an unknown identity cannot take
// delivery) or escrow would be overdrawn.
func (l *PaymentLedger) Send(to uuid.UUID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, known := l.balances[to]; !known {
		return infra.NewRepoErr(infra.KindTransferRejected, "payment recipient is unknown to the ledger")
	}
	if l.balances[l.escrow] < amount {
		return infra.NewRepoErr(infra.KindInsufficientFunds, "escrow balance does not cover the payout")
	}
	l.balances[l.escrow] -= amount
	l.balances[to] += amount
	return nil
}

// Open registers an identity with a zero balance so it can receive payments.
func (l *PaymentLedger) Open(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, known := l.balances[id]; !known {
		l.balances[id] = 0
	}
}
