package core

import "context"

// AdminRecipient addresses a notification to every admin.
const AdminRecipient = "ADMIN"

type Notifier interface {
	Notify(ctx context.Context, recipient, title, body string) error
}
