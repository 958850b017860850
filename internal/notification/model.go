package notification

import "time"

type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"-"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Inbox is what the dashboard bell renders.
type Inbox struct {
	Items       []*Notification `json:"items"`
	UnreadCount int             `json:"unread_count"`
}
