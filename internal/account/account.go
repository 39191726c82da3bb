package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role separates the two kinds of users: Owners run the ledger, Customers
// owe against it.
type Role string

const (
	RoleOwner    Role = "Owner"
	RoleCustomer Role = "Customer"
)

// PersonalInfo is the free-form contact block stored alongside an account.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// Account is a user of the system. Every Customer records the Owner that
// created it in CreatedBy; that link partitions visibility between owners.
type Account struct {
	Username     string
	Password     string
	Role         Role
	DebtLimit    decimal.Decimal
	PersonalInfo PersonalInfo
	CreatedAt    time.Time
	CreatedBy    string
}
