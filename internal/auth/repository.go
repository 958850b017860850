package auth

import (
	"context"
	"time"
)

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, userID, hash string) error

	SaveResetToken(ctx context.Context, token *ResetToken) error
	// ConsumeResetToken marks the token used and returns its user. It fails
	// with ErrInvalidResetToken when the token is unknown, used or expired.
	ConsumeResetToken(ctx context.Context, token string, now time.Time) (string, error)
}
