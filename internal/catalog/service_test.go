package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"rentwear/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *recordingNotifier) Notify(_ context.Context, recipient, title, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recipient+": "+title)
	return nil
}

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = b
	return "https://cdn.test/" + key, nil
}

func newTestService() (*Service, *InMemoryRepository, *recordingNotifier, *memStorage) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{}
	storage := &memStorage{objects: map[string][]byte{}}
	return NewService(repo, storage, notifier), repo, notifier, storage
}

func image(name, contentType string, data string) Image {
	return Image{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewBufferString(data)), nil
		},
	}
}

func TestCreateShop(t *testing.T) {
	svc, _, notifier, _ := newTestService()
	ctx := context.Background()

	shop, err := svc.CreateShop(ctx, "owner-1", "Velvet Closet", "Pune", "Wedding wear")
	require.NoError(t, err)
	assert.NotEmpty(t, shop.ID)
	assert.Equal(t, StatusPending, shop.Status)
	assert.Equal(t, []string{core.AdminRecipient + ": New shop awaiting approval"}, notifier.sent)

	_, err = svc.CreateShop(ctx, "owner-1", " ", "Pune", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	shop, err := svc.CreateShop(ctx, "owner-1", "Velvet Closet", "Pune", "")
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Lehenga", Category: "ethnic"})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Lehenga", Category: "spacesuit", PricePerDay: 10})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.CreateProduct(ctx, "intruder", shop.ID, ProductInput{Name: "Lehenga", Category: "ethnic", PricePerDay: 10})
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.CreateProduct(ctx, "owner-1", "missing-shop", ProductInput{Name: "Lehenga", Category: "ethnic", PricePerDay: 10})
	assert.ErrorIs(t, err, ErrShopNotFound)

	p, err := svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Lehenga", Category: " Ethnic ", Size: "m", PricePerDay: 45})
	require.NoError(t, err)
	assert.Equal(t, "ethnic", p.Category)
	assert.Equal(t, "M", p.Size)
	assert.Equal(t, StatusPending, p.Status, "products of pending shops stay pending")
	assert.Equal(t, "Pune", p.City)
}

func TestApproveShop_PublishesProducts(t *testing.T) {
	svc, _, notifier, _ := newTestService()
	ctx := context.Background()

	shop, _ := svc.CreateShop(ctx, "owner-1", "Velvet Closet", "Pune", "")
	p, _ := svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Sherwani", Category: "ethnic", PricePerDay: 60})

	page, err := svc.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total, "pending products are hidden")

	_, err = svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)

	snap, _ := svc.GetProduct(ctx, p.ID)
	assert.False(t, snap.Available)

	require.NoError(t, svc.ApproveShop(ctx, shop.ID, "admin-1"))

	page, err = svc.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	snap, err = svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, snap.Available)
	assert.Equal(t, "owner-1", snap.OwnerID)
	assert.Equal(t, 60.0, snap.PricePerDay)

	assert.Contains(t, notifier.sent, "owner-1: Your shop is live")

	// new products of an approved shop go live immediately
	p2, err := svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Kurta", Category: "ethnic", PricePerDay: 20})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, p2.Status)
}

func TestListProducts_FiltersAndPaging(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	pune, _ := svc.CreateShop(ctx, "o1", "Pune Closet", "Pune", "")
	goa, _ := svc.CreateShop(ctx, "o2", "Goa Closet", "Goa", "")
	for i := 0; i < 5; i++ {
		_, err := svc.CreateProduct(ctx, "o1", pune.ID, ProductInput{Name: "Dress", Category: "dress", PricePerDay: 10})
		require.NoError(t, err)
	}
	_, err := svc.CreateProduct(ctx, "o2", goa.ID, ProductInput{Name: "Shoes", Category: "shoes", PricePerDay: 5})
	require.NoError(t, err)
	require.NoError(t, svc.ApproveShop(ctx, pune.ID, "a"))
	require.NoError(t, svc.ApproveShop(ctx, goa.ID, "a"))

	page, err := svc.ListProducts(ctx, ProductFilter{City: "Pune", Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Items, 1)

	page, err = svc.ListProducts(ctx, ProductFilter{Category: "shoes"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, defaultPageSize, page.Limit)

	page, err = svc.AdminListProducts(ctx, ProductFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, page.Limit)
	assert.Equal(t, 6, page.Total)
}

func TestUploadImages(t *testing.T) {
	svc, repo, _, storage := newTestService()
	ctx := context.Background()

	shop, _ := svc.CreateShop(ctx, "owner-1", "Velvet Closet", "Pune", "")
	p, _ := svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Gown", Category: "dress", PricePerDay: 50})

	_, err := svc.UploadImages(ctx, "owner-1", p.ID, []Image{image("notes.txt", "text/plain", "hi")})
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = svc.UploadImages(ctx, "someone-else", p.ID, []Image{image("a.png", "image/png", "png")})
	assert.ErrorIs(t, err, ErrNotOwner)

	urls, err := svc.UploadImages(ctx, "owner-1", p.ID, []Image{
		image("front.JPG", "image/jpeg", "jpeg-bytes"),
		image("back", "image/webp", "webp-bytes"),
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
	assert.True(t, strings.HasSuffix(urls[1], ".webp"))
	assert.Len(t, storage.objects, 2)

	stored, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, urls, stored.Images)
}

// flakyStorage accepts limit uploads and fails the rest.
type flakyStorage struct {
	memStorage
	limit int
}

func (f *flakyStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if len(f.objects) >= f.limit {
		return "", errors.New("r2 unavailable")
	}
	return f.memStorage.Upload(ctx, key, body, contentType)
}

func TestUploadImages_LogsOrphanedKeys(t *testing.T) {
	obs, logs := observer.New(zap.ErrorLevel)
	defer zap.ReplaceGlobals(zap.New(obs))()

	storage := &flakyStorage{memStorage: memStorage{objects: map[string][]byte{}}, limit: 1}
	svc := NewService(NewInMemoryRepository(), storage, nil)
	ctx := context.Background()

	shop, _ := svc.CreateShop(ctx, "owner-1", "Velvet Closet", "Pune", "")
	p, _ := svc.CreateProduct(ctx, "owner-1", shop.ID, ProductInput{Name: "Gown", Category: "dress", PricePerDay: 50})

	_, err := svc.UploadImages(ctx, "owner-1", p.ID, []Image{
		image("front.jpg", "image/jpeg", "a"),
		image("back.jpg", "image/jpeg", "b"),
	})
	require.Error(t, err)

	entries := logs.FilterMessage("image upload failed, objects orphaned").All()
	require.Len(t, entries, 1)
	keys, ok := entries[0].ContextMap()["orphaned_keys"].([]interface{})
	require.True(t, ok)
	require.Len(t, keys, 1)
	_, stored := storage.objects[keys[0].(string)]
	assert.True(t, stored)
}

func TestUploadImages_NoStorage(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil, nil)

	_, err := svc.UploadImages(context.Background(), "o", "p", []Image{image("a.png", "image/png", "x")})
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestExistenceChecks(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	shop, _ := svc.CreateShop(ctx, "o", "Closet", "Pune", "")

	ok, err := svc.ShopExists(ctx, shop.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ProductExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
