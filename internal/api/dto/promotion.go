package dto

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/domain/promotion"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
)

// CreatePromotionRequest represents the request to create a new promotion
type CreatePromotionRequest struct {
	Name      string               `json:"name" validate:"required"`
	Type      types.PromotionType  `json:"type" validate:"required"`
	Rules     types.PromotionRules `json:"rules"`
	StartTime time.Time            `json:"start_time" validate:"required"`
	EndTime   time.Time            `json:"end_time" validate:"required"`
}

// Validate validates the CreatePromotionRequest
func (r *CreatePromotionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a promotion name").
			Mark(ierr.ErrValidation)
	}

	if _, ok := r.Rules.RulesForType(r.Type); !ok {
		return ierr.NewError("rules do not match promotion type").
			WithHint("Please provide the rule payload matching the promotion type").
			WithReportableDetails(map[string]any{"type": r.Type}).
			Mark(ierr.ErrValidation)
	}

	if !r.EndTime.After(r.StartTime) {
		return ierr.NewError("invalid time window").
			WithHint("end_time must be after start_time").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToPromotion converts the request into a domain promotion
func (r *CreatePromotionRequest) ToPromotion(ctx context.Context) *promotion.Promotion {
	now := time.Now().UTC()
	return &promotion.Promotion{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROMOTION),
		Name:      r.Name,
		Type:      r.Type,
		Rules:     r.Rules,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    types.PromotionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	*promotion.Promotion
}

// ListPromotionsResponse represents the list of promotions
type ListPromotionsResponse struct {
	Items []*PromotionResponse `json:"items"`
	Total int                  `json:"total"`
}
