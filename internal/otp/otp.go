// Package otp issues and checks the one-time codes that prove control
// of a campus email address. Codes live 10 minutes, re-issuing is gated
// by a 60-second cooldown, and a new code supersedes the old one.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/nilesh-dagdi/CampusMart/models"
)

const (
	TTL      = 10 * time.Minute
	Cooldown = 60 * time.Second
)

var (
	ErrNotFound = errors.New("otp not found")
	ErrMismatch = errors.New("invalid otp")
	ErrExpired  = errors.New("otp expired")
)

// CooldownError reports how long the caller has to wait before a new
// code can be issued for the same email.
type CooldownError struct {
	Seconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new OTP", e.Seconds)
}

// Store persists OTP rows. Replace must atomically drop any previous
// rows for the email before inserting the new one.
type Store interface {
	Latest(ctx context.Context, email string) (models.OTP, error)
	Replace(ctx context.Context, rec *models.OTP) error
	Delete(ctx context.Context, email string) error
}

type Service struct {
	store    Store
	ttl      time.Duration
	cooldown time.Duration
	now      func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		ttl:      TTL,
		cooldown: Cooldown,
		now:      time.Now,
	}
}

// Issue generates and stores a fresh 6-digit code for the email,
// superseding any earlier one. Returns CooldownError when the previous
// code is too recent.
func (s *Service) Issue(ctx context.Context, email string) (string, error) {
	if prev, err := s.store.Latest(ctx, email); err == nil {
		if since := s.now().Sub(prev.CreatedAt); since < s.cooldown {
			wait := int(math.Ceil((s.cooldown - since).Seconds()))
			return "", &CooldownError{Seconds: wait}
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	now := s.now()
	rec := models.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Replace(ctx, &rec); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the code without consuming it; signup verifies again
// and then calls Consume, so the two-step flow (verify, then submit the
// full form) keeps working.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	rec, err := s.store.Latest(ctx, email)
	if err != nil {
		return err
	}
	if rec.Code != code {
		return ErrMismatch
	}
	if s.now().After(rec.ExpiresAt) {
		return ErrExpired
	}
	return nil
}

// Consume removes every code for the email after a successful signup or
// password reset.
func (s *Service) Consume(ctx context.Context, email string) error {
	return s.store.Delete(ctx, email)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
