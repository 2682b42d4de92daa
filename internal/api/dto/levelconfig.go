package dto

import (
	"context"

	"github.com/minimall/minimall/internal/domain/levelconfig"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateLevelConfigRequest represents the request to create a distributor
// level's commission ladder
type CreateLevelConfigRequest struct {
	Level     int                    `json:"level" validate:"gte=0"`
	TierRates []levelconfig.TierRate `json:"tier_rates" validate:"required,min=1"`
}

// Validate validates the CreateLevelConfigRequest
func (r *CreateLevelConfigRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Level < 0 {
		return ierr.NewError("level must not be negative").
			WithHint("Distributor level must not be negative").
			Mark(ierr.ErrValidation)
	}

	if len(r.TierRates) == 0 {
		return ierr.NewError("tier_rates is required").
			WithHint("Please provide at least one tier rate").
			Mark(ierr.ErrValidation)
	}

	seen := make(map[int]struct{}, len(r.TierRates))
	for _, tr := range r.TierRates {
		if tr.TierDepth < 1 {
			return ierr.NewError("tier_depth must be at least 1").
				WithHint("Tier depth is 1-indexed").
				WithReportableDetails(map[string]any{"tier_depth": tr.TierDepth}).
				Mark(ierr.ErrValidation)
		}
		if tr.Rate.IsNegative() || tr.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return ierr.NewError("rate out of range").
				WithHint("Tier rate must be between 0 and 1").
				WithReportableDetails(map[string]any{"rate": tr.Rate}).
				Mark(ierr.ErrValidation)
		}
		if _, dup := seen[tr.TierDepth]; dup {
			return ierr.NewError("duplicate tier depth").
				WithHint("Each tier depth may appear only once").
				WithReportableDetails(map[string]any{"tier_depth": tr.TierDepth}).
				Mark(ierr.ErrValidation)
		}
		seen[tr.TierDepth] = struct{}{}
	}

	return nil
}

// ToLevelConfig converts the request into a domain config
func (r *CreateLevelConfigRequest) ToLevelConfig(ctx context.Context) *levelconfig.Config {
	return &levelconfig.Config{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEVEL_CONFIG),
		Level:     r.Level,
		TierRates: r.TierRates,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// LevelConfigResponse represents a distributor level config in API responses
type LevelConfigResponse struct {
	*levelconfig.Config
}

// ListLevelConfigsResponse represents the list of level configs
type ListLevelConfigsResponse struct {
	Items []*LevelConfigResponse `json:"items"`
	Total int                    `json:"total"`
}
