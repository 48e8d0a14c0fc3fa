package otp

import (
	"context"
	"testing"
	"time"

	"github.com/nilesh-dagdi/CampusMart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	recs map[string]models.OTP
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]models.OTP)}
}

func (m *memStore) Latest(_ context.Context, email string) (models.OTP, error) {
	rec, ok := m.recs[email]
	if !ok {
		return models.OTP{}, ErrNotFound
	}
	return rec, nil
}

func (m *memStore) Replace(_ context.Context, rec *models.OTP) error {
	m.recs[rec.Email] = *rec
	return nil
}

func (m *memStore) Delete(_ context.Context, email string) error {
	delete(m.recs, email)
	return nil
}

const email = "student@rtu.ac.in"

func newTestService(store Store) (*Service, *time.Time) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemStore())

	code, err := svc.Issue(ctx, email)
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.NoError(t, svc.Verify(ctx, email, code))
	assert.ErrorIs(t, svc.Verify(ctx, email, "000000"), ErrMismatch)
	assert.ErrorIs(t, svc.Verify(ctx, "nobody@rtu.ac.in", code), ErrNotFound)
}

func TestVerifyDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemStore())

	code, err := svc.Issue(ctx, email)
	require.NoError(t, err)

	// Two-step signup: verify once standalone, once inside signup.
	require.NoError(t, svc.Verify(ctx, email, code))
	require.NoError(t, svc.Verify(ctx, email, code))

	require.NoError(t, svc.Consume(ctx, email))
	assert.ErrorIs(t, svc.Verify(ctx, email, code), ErrNotFound)
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(newMemStore())

	code, err := svc.Issue(ctx, email)
	require.NoError(t, err)

	*now = now.Add(TTL - time.Second)
	assert.NoError(t, svc.Verify(ctx, email, code))

	// A matching code past expiresAt must still fail.
	*now = now.Add(2 * time.Second)
	assert.ErrorIs(t, svc.Verify(ctx, email, code), ErrExpired)
}

func TestCooldown(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(newMemStore())

	first, err := svc.Issue(ctx, email)
	require.NoError(t, err)

	// Second request within 60 seconds is rejected with the remaining wait.
	*now = now.Add(20 * time.Second)
	_, err = svc.Issue(ctx, email)
	var cd *CooldownError
	require.ErrorAs(t, err, &cd)
	assert.Equal(t, 40, cd.Seconds)

	// After the cooldown a new code is issued and the first is dead.
	*now = now.Add(41 * time.Second)
	second, err := svc.Issue(ctx, email)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(ctx, email, first), ErrMismatch)
	assert.NoError(t, svc.Verify(ctx, email, second))
}
