package trader

import (
	"time"

	"github.com/google/uuid"
)

// Trader is a registered marketplace party. Used for auth and as the
// identity behind offers, asset ownership and payment balances.
type Trader struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	createdAt    time.Time
}

func NewTrader(email Email, passwordHash string, role Role, now time.Time) *Trader {
	return &Trader{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
	}
}

func Reconstruct(id uuid.UUID, email Email, passwordHash string, role Role, createdAt time.Time) *Trader {
	return &Trader{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (t *Trader) ID() uuid.UUID        { return t.id }
func (t *Trader) Email() Email         { return t.email }
func (t *Trader) PasswordHash() string { return t.passwordHash }
func (t *Trader) Role() Role           { return t.role }
func (t *Trader) CreatedAt() time.Time { return t.createdAt }
