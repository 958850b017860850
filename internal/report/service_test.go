package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentwear/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTargets struct {
	shops    map[string]bool
	products map[string]bool
}

func (f fakeTargets) ShopExists(_ context.Context, id string) (bool, error) {
	return f.shops[id], nil
}

func (f fakeTargets) ProductExists(_ context.Context, id string) (bool, error) {
	return f.products[id], nil
}

type recordingNotifier struct {
	recipients []string
}

func (n *recordingNotifier) Notify(_ context.Context, recipient, _, _ string) error {
	n.recipients = append(n.recipients, recipient)
	return nil
}

func newTestService() (*Service, *recordingNotifier) {
	targets := fakeTargets{
		shops:    map[string]bool{"shop-1": true},
		products: map[string]bool{"prod-1": true},
	}
	n := &recordingNotifier{}
	return NewService(NewInMemoryRepository(), targets, n), n
}

func TestCreateReport(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()

	r, err := svc.Create(ctx, "u1", "Product", "prod-1", "counterfeit", "logo looks off")
	require.NoError(t, err)
	assert.Equal(t, TargetProduct, r.TargetType)
	assert.Equal(t, StatusOpen, r.Status)
	assert.Equal(t, []string{core.AdminRecipient}, notifier.recipients)
}

func TestCreateReportErrors(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "product", "prod-1", "  ", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(ctx, "u1", "user", "u2", "spam", "")
	assert.ErrorIs(t, err, ErrInvalidTargetType)

	_, err = svc.Create(ctx, "u1", "shop", "shop-404", "fake shop", "")
	assert.ErrorIs(t, err, ErrTargetNotFound)

	assert.Empty(t, notifier.recipients)
}

func TestResolveReport(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	r, err := svc.Create(ctx, "u1", "shop", "shop-1", "never ships", "")
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, r.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, "admin-1", *resolved.ResolvedBy)

	_, err = svc.Resolve(ctx, r.ID, "admin-1")
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	_, err = svc.Resolve(ctx, "missing", "admin-1")
	assert.ErrorIs(t, err, ErrNotFound)

	open, err := svc.List(ctx, "open")
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = svc.List(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateHandlerUnknownTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService()

	r := gin.New()
	r.POST("/reports", func(c *gin.Context) { c.Set("userID", "u1") }, NewHandler(svc).Create)

	body, _ := json.Marshal(map[string]string{
		"target_type": "product",
		"target_id":   "prod-404",
		"reason":      "broken zip",
	})
	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrTargetNotFound.Error())
}
