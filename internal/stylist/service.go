package stylist

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"rentwear/internal/selection"

	"go.uber.org/zap"
)

const (
	maxQuestionRunes = 1000
	askTimeout       = 60 * time.Second
)

var (
	ErrDisabled        = errors.New("stylist is not configured")
	ErrMissingQuestion = errors.New("question is required")
	ErrQuestionTooLong = errors.New("question is too long")
	ErrNoAnswer        = errors.New("stylist could not answer right now")
)

// Carts reads a session's cart.
type Carts interface {
	View(sessionID string) *selection.Snapshot
}

type Answer struct {
	Answer      string `json:"answer"`
	CartEntries int    `json:"cart_entries"`
}

type Service struct {
	gen   Generator
	carts Carts
}

// NewService accepts a nil generator; Ask then reports ErrDisabled.
func NewService(gen Generator, carts Carts) *Service {
	return &Service{gen: gen, carts: carts}
}

func (s *Service) Enabled() bool {
	return s.gen != nil
}

func (s *Service) Ask(ctx context.Context, sessionID, question string, includeCart bool) (*Answer, error) {
	if s.gen == nil {
		return nil, ErrDisabled
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrMissingQuestion
	}
	if utf8.RuneCountInString(question) > maxQuestionRunes {
		return nil, ErrQuestionTooLong
	}

	var cart []selection.Entry
	if includeCart && s.carts != nil {
		cart = s.carts.View(sessionID).Items
	}

	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, BuildPrompt(question, cart))
	if err != nil {
		zap.L().Warn("stylist generation failed", zap.String("session", sessionID), zap.Error(err))
		return nil, ErrNoAnswer
	}
	return &Answer{Answer: strings.TrimSpace(text), CartEntries: len(cart)}, nil
}
