package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the aggregate root for the ledger domain.
// Passwords are stored as bcrypt hashes in PasswordHash. The balance is only
// ever mutated through the balance transfer engine in the postgres layer.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	Balance      decimal.Decimal
	PasswordHash string
	AvatarURL    string
	CreatedAt    time.Time
}
