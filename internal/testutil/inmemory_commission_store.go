package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/minimall/minimall/internal/domain/commission"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
)

// InMemoryCommissionStore implements commission.Repository. The pairs set
// mirrors the unique (order_id, beneficiary_member_id) index that makes
// distribution idempotent.
type InMemoryCommissionStore struct {
	*InMemoryStore[*commission.Record]
	mu    sync.Mutex
	pairs map[string]struct{}
}

// NewInMemoryCommissionStore creates a new in-memory commission store
func NewInMemoryCommissionStore() *InMemoryCommissionStore {
	return &InMemoryCommissionStore{
		InMemoryStore: NewInMemoryStore[*commission.Record](),
		pairs:         make(map[string]struct{}),
	}
}

func copyCommissionRecord(rec *commission.Record) *commission.Record {
	if rec == nil {
		return nil
	}
	copied := *rec
	return &copied
}

func pairKey(orderID, beneficiaryID string) string {
	return orderID + "/" + beneficiaryID
}

func (s *InMemoryCommissionStore) CreateIdempotent(ctx context.Context, rec *commission.Record) (bool, error) {
	if rec == nil {
		return false, ierr.NewError("commission record cannot be nil").
			WithHint("Commission record cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(rec.OrderID, rec.BeneficiaryMemberID)
	if _, exists := s.pairs[key]; exists {
		return false, nil
	}

	if err := s.InMemoryStore.Create(ctx, rec.ID, copyCommissionRecord(rec)); err != nil {
		return false, err
	}
	s.pairs[key] = struct{}{}
	return true, nil
}

func (s *InMemoryCommissionStore) Get(ctx context.Context, id string) (*commission.Record, error) {
	rec, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("commission record not found").
			WithHint("Commission record not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyCommissionRecord(rec), nil
}

func (s *InMemoryCommissionStore) ListByOrder(ctx context.Context, orderID string) ([]*commission.Record, error) {
	return s.list(ctx, func(ctx context.Context, rec *commission.Record, _ interface{}) bool {
		return rec.OrderID == orderID
	}, func(i, j *commission.Record) bool {
		return i.TierDepth < j.TierDepth
	})
}

func (s *InMemoryCommissionStore) ListByBeneficiary(ctx context.Context, memberID string) ([]*commission.Record, error) {
	return s.list(ctx, func(ctx context.Context, rec *commission.Record, _ interface{}) bool {
		return rec.BeneficiaryMemberID == memberID
	}, func(i, j *commission.Record) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
}

func (s *InMemoryCommissionStore) list(ctx context.Context, filterFn FilterFunc[*commission.Record], sortFn SortFunc[*commission.Record]) ([]*commission.Record, error) {
	records, err := s.InMemoryStore.List(ctx, nil, filterFn, sortFn)
	if err != nil {
		return nil, err
	}

	result := make([]*commission.Record, 0, len(records))
	for _, rec := range records {
		result = append(result, copyCommissionRecord(rec))
	}
	return result, nil
}

func (s *InMemoryCommissionStore) UpdateStatus(ctx context.Context, id string, status string) error {
	rec, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("commission record not found").
			WithHint("Commission record not found").
			Mark(ierr.ErrNotFound)
	}

	copied := copyCommissionRecord(rec)
	copied.CommissionStatus = types.CommissionStatus(status)
	copied.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, copied)
}

// Clear removes all records and pair keys
func (s *InMemoryCommissionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InMemoryStore.Clear()
	s.pairs = make(map[string]struct{})
}
