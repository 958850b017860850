package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

type ReportRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`
}

type Report struct {
	ID         string    `json:"id"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Client) CreateReport(ctx context.Context, r ReportRequest) (*Report, error) {
	var out Report
	if err := c.do(ctx, http.MethodPost, "/reports", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) SubmitFeedback(ctx context.Context, f FeedbackRequest) (*Feedback, error) {
	var out Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPost, "/auth/password", map[string]string{
		"current_password": current,
		"new_password":     next,
	}, nil)
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"price_per_day"`
	Days        int     `json:"days"`
}

type Order struct {
	ID               string      `json:"id"`
	Items            []OrderItem `json:"items"`
	Total            float64     `json:"total"`
	PaymentStatus    string      `json:"payment_status"`
	PaymentReference string      `json:"payment_reference,omitempty"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, orderID, status, reference string) (*Order, error) {
	var out Order
	err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/payment", map[string]string{
		"status":    status,
		"reference": reference,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
