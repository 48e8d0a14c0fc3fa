package purchase

import (
	"context"
	"sync"
	"testing"

	"github.com/nilesh-dagdi/CampusMart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore mirrors GormStore's semantics in memory: transitions are
// guarded by a mutex and flip statuses only when the precondition still
// holds.
type memStore struct {
	mu        sync.Mutex
	items     map[uint]models.Item
	purchases map[uint]models.Purchase
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{
		items:     make(map[uint]models.Item),
		purchases: make(map[uint]models.Purchase),
		nextID:    1,
	}
}

func (m *memStore) addItem(item models.Item) models.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item
}

func (m *memStore) Item(_ context.Context, id uint) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return models.Item{}, ErrItemNotFound
	}
	return item, nil
}

func (m *memStore) Purchase(_ context.Context, id uint) (models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.purchases[id]
	if !ok {
		return models.Purchase{}, ErrPurchaseNotFound
	}
	p.Item = m.items[p.ItemID]
	return p, nil
}

func (m *memStore) PurchasesByBuyer(_ context.Context, buyerID uint) ([]models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Purchase
	for _, p := range m.purchases {
		if p.BuyerID == buyerID {
			p.Item = m.items[p.ItemID]
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) CreatePending(_ context.Context, p *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[p.ItemID]
	if !ok || item.Status != models.ItemAvailable {
		return ErrItemUnavailable
	}
	item.Status = models.ItemPending
	m.items[item.ID] = item

	p.ID = m.nextID
	m.nextID++
	p.Status = models.PurchasePending
	m.purchases[p.ID] = *p
	return nil
}

func (m *memStore) Complete(_ context.Context, purchaseID, itemID uint) error {
	return m.transition(purchaseID, itemID, models.PurchaseCompleted, models.ItemSold)
}

func (m *memStore) Cancel(_ context.Context, purchaseID, itemID uint) error {
	return m.transition(purchaseID, itemID, models.PurchaseCancelled, models.ItemAvailable)
}

func (m *memStore) transition(purchaseID, itemID uint, ps models.PurchaseStatus, is models.ItemStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.purchases[purchaseID]
	if !ok || p.Status != models.PurchasePending {
		return ErrNotPending
	}
	p.Status = ps
	m.purchases[purchaseID] = p

	if item, ok := m.items[itemID]; ok {
		item.Status = is
		m.items[itemID] = item
	}
	return nil
}

func (m *memStore) ResetPending(_ context.Context) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var itemsReset, purchasesDeleted int64
	for id, item := range m.items {
		if item.Status != models.ItemAvailable {
			item.Status = models.ItemAvailable
			m.items[id] = item
			itemsReset++
		}
	}
	for id, p := range m.purchases {
		if p.Status == models.PurchasePending {
			delete(m.purchases, id)
			purchasesDeleted++
		}
	}
	return itemsReset, purchasesDeleted, nil
}

const (
	sellerID = 1
	buyerID  = 2
	otherID  = 3
)

func newTestService(t *testing.T) (*Service, *memStore, models.Item) {
	t.Helper()
	store := newMemStore()
	item := store.addItem(models.Item{
		SellerID: sellerID,
		Title:    "Calculus textbook",
		Price:    300,
		Status:   models.ItemAvailable,
	})
	return NewService(store), store, item
}

func TestInitiate(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves an available item", func(t *testing.T) {
		svc, store, item := newTestService(t)

		p, err := svc.Initiate(ctx, item.ID, buyerID)
		require.NoError(t, err)
		assert.Equal(t, models.PurchasePending, p.Status)
		assert.Equal(t, uint(sellerID), p.SellerID)
		assert.Equal(t, uint(buyerID), p.BuyerID)

		got, _ := store.Item(ctx, item.ID)
		assert.Equal(t, models.ItemPending, got.Status)
	})

	t.Run("missing item", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Initiate(ctx, 999, buyerID)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("self purchase rejected", func(t *testing.T) {
		svc, _, item := newTestService(t)
		_, err := svc.Initiate(ctx, item.ID, sellerID)
		assert.ErrorIs(t, err, ErrSelfPurchase)
	})

	t.Run("second buyer gets a conflict and no purchase row", func(t *testing.T) {
		svc, _, item := newTestService(t)

		_, err := svc.Initiate(ctx, item.ID, buyerID)
		require.NoError(t, err)

		_, err = svc.Initiate(ctx, item.ID, otherID)
		assert.ErrorIs(t, err, ErrItemUnavailable)

		mine, _ := svc.MyPurchases(ctx, otherID)
		assert.Empty(t, mine, "losing buyer must not leave a purchase record")
	})

	t.Run("concurrent initiates produce exactly one purchase", func(t *testing.T) {
		svc, _, item := newTestService(t)

		const racers = 16
		errs := make(chan error, racers)
		var wg sync.WaitGroup
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(buyer uint) {
				defer wg.Done()
				_, err := svc.Initiate(ctx, item.ID, buyer)
				errs <- err
			}(uint(buyerID + i))
		}
		wg.Wait()
		close(errs)

		var wins int
		for err := range errs {
			if err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, ErrItemUnavailable)
			}
		}
		assert.Equal(t, 1, wins)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("completes purchase and sells item", func(t *testing.T) {
		svc, store, item := newTestService(t)
		p, err := svc.Initiate(ctx, item.ID, buyerID)
		require.NoError(t, err)

		done, err := svc.Confirm(ctx, p.ID, buyerID)
		require.NoError(t, err)
		assert.Equal(t, models.PurchaseCompleted, done.Status)

		got, _ := store.Item(ctx, item.ID)
		assert.Equal(t, models.ItemSold, got.Status)
	})

	t.Run("only the buyer may confirm", func(t *testing.T) {
		svc, _, item := newTestService(t)
		p, _ := svc.Initiate(ctx, item.ID, buyerID)

		_, err := svc.Confirm(ctx, p.ID, otherID)
		assert.ErrorIs(t, err, ErrNotBuyer)
	})

	t.Run("confirming twice is rejected", func(t *testing.T) {
		svc, store, item := newTestService(t)
		p, _ := svc.Initiate(ctx, item.ID, buyerID)

		_, err := svc.Confirm(ctx, p.ID, buyerID)
		require.NoError(t, err)

		_, err = svc.Confirm(ctx, p.ID, buyerID)
		assert.ErrorIs(t, err, ErrNotPending)

		got, _ := store.Item(ctx, item.ID)
		assert.Equal(t, models.ItemSold, got.Status, "item must stay SOLD, not re-transition")
	})

	t.Run("missing purchase", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Confirm(ctx, 42, buyerID)
		assert.ErrorIs(t, err, ErrPurchaseNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the item back to available", func(t *testing.T) {
		svc, store, item := newTestService(t)
		p, _ := svc.Initiate(ctx, item.ID, buyerID)

		cancelled, err := svc.Cancel(ctx, p.ID, buyerID)
		require.NoError(t, err)
		assert.Equal(t, models.PurchaseCancelled, cancelled.Status)

		got, _ := store.Item(ctx, item.ID)
		assert.Equal(t, models.ItemAvailable, got.Status)

		// A new buyer can now initiate.
		_, err = svc.Initiate(ctx, item.ID, otherID)
		assert.NoError(t, err)
	})

	t.Run("completed purchase cannot be cancelled", func(t *testing.T) {
		svc, _, item := newTestService(t)
		p, _ := svc.Initiate(ctx, item.ID, buyerID)
		_, err := svc.Confirm(ctx, p.ID, buyerID)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, p.ID, buyerID)
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("only the buyer may cancel", func(t *testing.T) {
		svc, _, item := newTestService(t)
		p, _ := svc.Initiate(ctx, item.ID, buyerID)

		_, err := svc.Cancel(ctx, p.ID, otherID)
		assert.ErrorIs(t, err, ErrNotBuyer)
	})
}

func TestLifecycleScenario(t *testing.T) {
	// Create item A -> B initiates -> A is PENDING, P is PENDING ->
	// B confirms -> A is SOLD, P is COMPLETED -> C initiating conflicts.
	ctx := context.Background()
	svc, store, item := newTestService(t)

	p, err := svc.Initiate(ctx, item.ID, buyerID)
	require.NoError(t, err)
	got, _ := store.Item(ctx, item.ID)
	require.Equal(t, models.ItemPending, got.Status)
	require.Equal(t, models.PurchasePending, p.Status)

	done, err := svc.Confirm(ctx, p.ID, buyerID)
	require.NoError(t, err)
	got, _ = store.Item(ctx, item.ID)
	require.Equal(t, models.ItemSold, got.Status)
	require.Equal(t, models.PurchaseCompleted, done.Status)

	_, err = svc.Initiate(ctx, item.ID, otherID)
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, store, item := newTestService(t)
	second := store.addItem(models.Item{SellerID: sellerID, Title: "Lab coat", Price: 150, Status: models.ItemAvailable})

	pending, err := svc.Initiate(ctx, item.ID, buyerID)
	require.NoError(t, err)
	confirmed, err := svc.Initiate(ctx, second.ID, buyerID)
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, confirmed.ID, buyerID)
	require.NoError(t, err)

	itemsReset, purchasesDeleted, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), itemsReset) // PENDING and SOLD both go back
	assert.Equal(t, int64(1), purchasesDeleted)

	// The completed purchase survives as the audit trail.
	_, err = store.Purchase(ctx, confirmed.ID)
	assert.NoError(t, err)
	_, err = store.Purchase(ctx, pending.ID)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}
