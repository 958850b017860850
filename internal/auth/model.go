package auth

import "time"

const (
	RoleCustomer  = "CUSTOMER"
	RoleShopOwner = "SHOP_OWNER"
	RoleAdmin     = "ADMIN"
)

// User is the domain entity.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
}

// ResetToken is a single-use password reset grant.
type ResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	UsedAt    *time.Time
}
