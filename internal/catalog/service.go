package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"rentwear/internal/core"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
	maxImageBytes   = 8 << 20
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidPrice    = errors.New("price_per_day must be greater than zero")
	ErrInvalidCategory = errors.New("unknown category")
	ErrShopNotFound    = errors.New("shop not found")
	ErrProductNotFound = core.ErrProductNotFound
	ErrNotOwner        = errors.New("unauthorized")
	ErrNoStorage       = errors.New("image storage is not configured")
	ErrInvalidImage    = errors.New("images must be jpeg, png or webp under 8MB")
)

// Storage puts objects somewhere public and returns their URL.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Image is one uploaded file, independent of how it reached the handler.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type Service struct {
	repo     Repository
	storage  Storage
	notifier core.Notifier
	now      func() time.Time
}

func NewService(repo Repository, storage Storage, notifier core.Notifier) *Service {
	return &Service{
		repo:     repo,
		storage:  storage,
		notifier: notifier,
		now:      time.Now,
	}
}

// --------------------------------------------------
// Shops
// --------------------------------------------------

func (s *Service) CreateShop(ctx context.Context, ownerID, name, city, description string) (*Shop, error) {
	name, city = strings.TrimSpace(name), strings.TrimSpace(city)
	if name == "" || city == "" {
		return nil, ErrMissingFields
	}

	shop := &Shop{
		OwnerID:     ownerID,
		Name:        name,
		City:        city,
		Description: strings.TrimSpace(description),
		Status:      StatusPending,
	}
	if err := s.repo.CreateShop(ctx, shop); err != nil {
		return nil, err
	}

	s.notify(ctx, core.AdminRecipient, "New shop awaiting approval",
		fmt.Sprintf("%s (%s) was registered and needs review.", shop.Name, shop.City))
	return shop, nil
}

func (s *Service) ListMyShops(ctx context.Context, ownerID string) ([]*Shop, error) {
	return s.repo.ListShopsByOwner(ctx, ownerID)
}

func (s *Service) ListApprovedShops(ctx context.Context) ([]*Shop, error) {
	return s.repo.ListShopsByStatus(ctx, StatusApproved)
}

func (s *Service) ListPendingShops(ctx context.Context) ([]*Shop, error) {
	return s.repo.ListShopsByStatus(ctx, StatusPending)
}

// GetPublicShop hides shops that are not approved yet.
func (s *Service) GetPublicShop(ctx context.Context, shopID string) (*Shop, error) {
	shop, err := s.repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.Status != StatusApproved {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// ApproveShop approves a shop with its products and tells the owner.
func (s *Service) ApproveShop(ctx context.Context, shopID, adminID string) error {
	shop, err := s.repo.GetShop(ctx, shopID)
	if err != nil {
		return err
	}
	if err := s.repo.ApproveShop(ctx, shopID, adminID, s.now()); err != nil {
		return err
	}

	zap.L().Info("shop approved", zap.String("shop_id", shopID), zap.String("admin_id", adminID))
	s.notify(ctx, shop.OwnerID, "Your shop is live",
		fmt.Sprintf("%s has been approved and its products are now visible to customers.", shop.Name))
	return nil
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (s *Service) CreateProduct(
	ctx context.Context,
	ownerID string,
	shopID string,
	in ProductInput,
) (*Product, error) {

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Name == "" || in.Category == "" {
		return nil, ErrMissingFields
	}
	if !Categories[in.Category] {
		return nil, ErrInvalidCategory
	}
	if in.PricePerDay <= 0 {
		return nil, ErrInvalidPrice
	}

	shop, err := s.repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	// 🔒 Ownership enforced here
	if shop.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	status := StatusPending
	if shop.Status == StatusApproved {
		status = StatusApproved
	}

	product := &Product{
		ShopID:      shopID,
		Name:        in.Name,
		Category:    in.Category,
		Size:        strings.ToUpper(strings.TrimSpace(in.Size)),
		Description: strings.TrimSpace(in.Description),
		PricePerDay: in.PricePerDay,
		Status:      status,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts is the public storefront listing: approved products only.
func (s *Service) ListProducts(ctx context.Context, f ProductFilter) (*ProductPage, error) {
	f.Status = StatusApproved
	return s.page(ctx, f)
}

// AdminListProducts backs the dashboard table; any status filter is allowed.
func (s *Service) AdminListProducts(ctx context.Context, f ProductFilter) (*ProductPage, error) {
	return s.page(ctx, f)
}

func (s *Service) page(ctx context.Context, f ProductFilter) (*ProductPage, error) {
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	items, total, err := s.repo.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// GetPublicProduct hides products that are not approved yet.
func (s *Service) GetPublicProduct(ctx context.Context, productID string) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusApproved {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// GetOwnedProduct returns the product if userID owns its shop.
func (s *Service) GetOwnedProduct(ctx context.Context, productID, userID string) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return p, nil
}

// GetProduct implements core.ProductReader.
func (s *Service) GetProduct(ctx context.Context, productID string) (core.Product, error) {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return core.Product{}, err
	}
	return p.Snapshot(), nil
}

// ShopExists and ProductExists let reports validate their targets.
func (s *Service) ShopExists(ctx context.Context, shopID string) (bool, error) {
	_, err := s.repo.GetShop(ctx, shopID)
	if errors.Is(err, ErrShopNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) ProductExists(ctx context.Context, productID string) (bool, error) {
	_, err := s.repo.GetProduct(ctx, productID)
	if errors.Is(err, ErrProductNotFound) {
		return false, nil
	}
	return err == nil, err
}

// --------------------------------------------------
// Images
// --------------------------------------------------

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (s *Service) UploadImages(
	ctx context.Context,
	ownerID string,
	productID string,
	images []Image,
) ([]string, error) {

	if s.storage == nil {
		return nil, ErrNoStorage
	}
	if len(images) == 0 {
		return nil, ErrMissingFields
	}
	if _, err := s.GetOwnedProduct(ctx, productID, ownerID); err != nil {
		return nil, err
	}

	for _, img := range images {
		if _, ok := allowedImageTypes[img.ContentType]; !ok || img.Size > maxImageBytes {
			return nil, ErrInvalidImage
		}
	}

	urls := make([]string, 0, len(images))
	keys := make([]string, 0, len(images))
	for _, img := range images {
		key, url, err := s.uploadOne(ctx, productID, img)
		if err != nil {
			logOrphans(productID, keys, err)
			return nil, err
		}
		keys = append(keys, key)
		urls = append(urls, url)
	}

	if err := s.repo.AddProductImages(ctx, productID, urls); err != nil {
		logOrphans(productID, keys, err)
		return nil, err
	}
	return urls, nil
}

// logOrphans records objects already written to storage by a batch that
// failed, so they can be removed by hand.
func logOrphans(productID string, keys []string, err error) {
	if len(keys) == 0 {
		return
	}
	zap.L().Error("image upload failed, objects orphaned",
		zap.String("product_id", productID),
		zap.Strings("orphaned_keys", keys),
		zap.Error(err),
	)
}

func (s *Service) uploadOne(ctx context.Context, productID string, img Image) (key, url string, err error) {
	ext := allowedImageTypes[img.ContentType]
	if e := strings.ToLower(filepath.Ext(img.Filename)); e != "" {
		ext = e
	}
	key = fmt.Sprintf("products/%s/%s%s", productID, uuid.New().String(), ext)

	f, err := img.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	url, err = s.storage.Upload(ctx, key, f, img.ContentType)
	return key, url, err
}

// notify is best effort; a failed notification never fails the action.
func (s *Service) notify(ctx context.Context, recipient, title, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, recipient, title, body); err != nil {
		zap.L().Warn("notification failed", zap.String("recipient", recipient), zap.Error(err))
	}
}
