package testutil

import (
	"context"

	"github.com/minimall/minimall/internal/domain/promotion"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
)

// InMemoryPromotionStore implements promotion.Repository
type InMemoryPromotionStore struct {
	*InMemoryStore[*promotion.Promotion]
}

// NewInMemoryPromotionStore creates a new in-memory promotion store
func NewInMemoryPromotionStore() *InMemoryPromotionStore {
	return &InMemoryPromotionStore{
		InMemoryStore: NewInMemoryStore[*promotion.Promotion](),
	}
}

func copyPromotion(p *promotion.Promotion) *promotion.Promotion {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (s *InMemoryPromotionStore) Create(ctx context.Context, p *promotion.Promotion) error {
	if p == nil {
		return ierr.NewError("promotion cannot be nil").
			WithHint("Promotion cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyPromotion(p))
}

func (s *InMemoryPromotionStore) Get(ctx context.Context, id string) (*promotion.Promotion, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("promotion not found").
			WithHint("Promotion not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyPromotion(p), nil
}

func (s *InMemoryPromotionStore) Update(ctx context.Context, p *promotion.Promotion) error {
	if p == nil {
		return ierr.NewError("promotion cannot be nil").
			WithHint("Promotion cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyPromotion(p))
}

func (s *InMemoryPromotionStore) List(ctx context.Context) ([]*promotion.Promotion, error) {
	return s.list(ctx, nil)
}

func (s *InMemoryPromotionStore) ListActive(ctx context.Context) ([]*promotion.Promotion, error) {
	return s.list(ctx, func(ctx context.Context, p *promotion.Promotion, _ interface{}) bool {
		return p.Status == types.PromotionStatusActive
	})
}

func (s *InMemoryPromotionStore) list(ctx context.Context, filterFn FilterFunc[*promotion.Promotion]) ([]*promotion.Promotion, error) {
	promotions, err := s.InMemoryStore.List(ctx, nil, filterFn, func(i, j *promotion.Promotion) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	result := make([]*promotion.Promotion, 0, len(promotions))
	for _, p := range promotions {
		result = append(result, copyPromotion(p))
	}
	return result, nil
}
