package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentwear/internal/core"

	"go.uber.org/zap"
)

var (
	ErrMissingFields     = errors.New("target_type, target_id and reason are required")
	ErrInvalidTargetType = errors.New("target_type must be product or shop")
	ErrInvalidStatus     = errors.New("status must be OPEN or RESOLVED")
	ErrTargetNotFound    = errors.New("report target not found")
	ErrNotFound          = errors.New("report not found")
	ErrAlreadyResolved   = errors.New("report already resolved")
)

// Targets answers whether a reported listing exists.
type Targets interface {
	ShopExists(ctx context.Context, shopID string) (bool, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
}

type Service struct {
	repo     Repository
	targets  Targets
	notifier core.Notifier
	now      func() time.Time
}

func NewService(repo Repository, targets Targets, notifier core.Notifier) *Service {
	return &Service{repo: repo, targets: targets, notifier: notifier, now: time.Now}
}

func (s *Service) Create(
	ctx context.Context,
	reporterID string,
	targetType string,
	targetID string,
	reason string,
	details string,
) (*Report, error) {

	targetType = strings.ToLower(strings.TrimSpace(targetType))
	reason = strings.TrimSpace(reason)
	if targetType == "" || targetID == "" || reason == "" {
		return nil, ErrMissingFields
	}

	var (
		exists bool
		err    error
	)
	switch targetType {
	case TargetProduct:
		exists, err = s.targets.ProductExists(ctx, targetID)
	case TargetShop:
		exists, err = s.targets.ShopExists(ctx, targetID)
	default:
		return nil, ErrInvalidTargetType
	}
	if err != nil {
		return nil, fmt.Errorf("check report target: %w", err)
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	r := &Report{
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
		Details:    strings.TrimSpace(details),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		body := fmt.Sprintf("%s %s reported: %s", targetType, targetID, reason)
		if err := s.notifier.Notify(ctx, core.AdminRecipient, "New report", body); err != nil {
			zap.L().Warn("report notification failed", zap.String("report_id", r.ID), zap.Error(err))
		}
	}
	return r, nil
}

// List returns reports newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]*Report, error) {
	status = strings.ToUpper(status)
	if status != "" && status != StatusOpen && status != StatusResolved {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status)
}

func (s *Service) Resolve(ctx context.Context, id, adminID string) (*Report, error) {
	return s.repo.Resolve(ctx, id, adminID, s.now())
}
