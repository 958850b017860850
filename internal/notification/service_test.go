package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentwear/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService returns a service whose repository clock advances one
// second per notification, so ordering is deterministic.
func newTestService() *Service {
	repo := NewInMemoryRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	repo.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return NewService(repo)
}

func TestNotifyRequiresTitle(t *testing.T) {
	svc := newTestService()
	err := svc.Notify(context.Background(), "u1", "", "body")
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestInboxNewestFirstWithUnreadCount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Notify(ctx, "u1", "first", ""))
	require.NoError(t, svc.Notify(ctx, "u2", "other user", ""))
	require.NoError(t, svc.Notify(ctx, "u1", "second", ""))

	inbox, err := svc.Inbox(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, inbox.Items, 2)
	assert.Equal(t, "second", inbox.Items[0].Title)
	assert.Equal(t, "first", inbox.Items[1].Title)
	assert.Equal(t, 2, inbox.UnreadCount)
}

func TestAdminInboxIncludesBroadcasts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Notify(ctx, core.AdminRecipient, "new report", ""))
	require.NoError(t, svc.Notify(ctx, "admin-1", "personal", ""))

	inbox, err := svc.Inbox(ctx, "admin-1", true)
	require.NoError(t, err)
	assert.Len(t, inbox.Items, 2)

	// customers never see the admin broadcast
	inbox, err = svc.Inbox(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, inbox.Items)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Notify(ctx, "u1", "a", ""))
	require.NoError(t, svc.Notify(ctx, "u1", "b", ""))

	inbox, err := svc.Inbox(ctx, "u1", false)
	require.NoError(t, err)
	id := inbox.Items[0].ID

	assert.ErrorIs(t, svc.MarkRead(ctx, "u2", false, id), ErrNotFound)
	require.NoError(t, svc.MarkRead(ctx, "u1", false, id))

	inbox, err = svc.Inbox(ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, inbox.UnreadCount)
	assert.True(t, inbox.Items[0].Read)

	n, err := svc.MarkAllRead(ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	inbox, err = svc.Inbox(ctx, "u1", false)
	require.NoError(t, err)
	assert.Zero(t, inbox.UnreadCount)
}

func TestHandlerMarkReadUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(newTestService())
	r.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Set("userRole", "CUSTOMER")
	})
	r.GET("/notifications", h.List)
	r.POST("/notifications/:id/read", h.MarkRead)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notifications/nope/read", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"unread_count":0}`, w.Body.String())
}
