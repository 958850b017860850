package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "asha@example.com", body["email"])
			_, _ = w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","role":"CUSTOMER"}}`))
		case "/auth/password":
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	res, err := c.Login(context.Background(), "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, "tok-1", c.Token())

	require.NoError(t, c.ChangePassword(context.Background(), "secret123", "secret456"))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))

		_, err := New(srv.URL).CreateReport(context.Background(), ReportRequest{TargetType: "shop"})
		srv.Close()

		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, tt.status, apiErr.Status)
		assert.Equal(t, "nope", apiErr.Message)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).SubmitFeedback(context.Background(), FeedbackRequest{})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestUpdatePaymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/o-1/payment", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"o-1","payment_status":"PAID","payment_reference":"pay_1","total":50}`))
	}))
	defer srv.Close()

	o, err := New(srv.URL, WithToken("t")).UpdatePaymentStatus(context.Background(), "o-1", "PAID", "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "PAID", o.PaymentStatus)
	assert.InDelta(t, 50.0, o.Total, 1e-9)
}
