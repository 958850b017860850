package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	resetTokenTTL     = time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInvalidRole        = errors.New("role must be CUSTOMER or SHOP_OWNER")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
)

type Service struct {
	repo UserRepository
	now  func() time.Time
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	switch role {
	case "":
		role = RoleCustomer
	case RoleCustomer, RoleShopOwner:
	default:
		return nil, ErrInvalidRole
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("user registered", zap.String("user_id", user.ID), zap.String("role", role))
	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CHANGE PASSWORD (authenticated)
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return ErrMissingFields
	}
	if len(next) < minPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

// RequestPasswordReset issues a reset token for email. An unknown email
// yields an empty token and no error so callers cannot probe accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		zap.L().Info("password reset requested for unknown email")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token := &ResetToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.repo.SaveResetToken(ctx, token); err != nil {
		return "", err
	}

	zap.L().Info("password reset token issued", zap.String("user_id", user.ID))
	return token.Token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, next string) error {
	if token == "" || next == "" {
		return ErrMissingFields
	}
	if len(next) < minPasswordLength {
		return ErrWeakPassword
	}

	userID, err := s.repo.ConsumeResetToken(ctx, token, s.now())
	if err != nil {
		return err
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ErrMissingFields
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil || exists {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, &User{Name: "Administrator", Email: email, Password: hash, Role: RoleAdmin}); err != nil {
		return err
	}

	zap.L().Info("bootstrap admin created", zap.String("email", email))
	return nil
}
