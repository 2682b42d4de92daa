package dto

import (
	"context"

	"github.com/minimall/minimall/internal/domain/member"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
)

// CreateMemberRequest represents the request to register a new member
type CreateMemberRequest struct {
	Name             string  `json:"name" validate:"required"`
	ReferrerID       *string `json:"referrer_id,omitempty"`
	DistributorLevel int     `json:"distributor_level" validate:"gte=0"`
	MemberLevel      int     `json:"member_level" validate:"gte=0"`
}

// Validate validates the CreateMemberRequest
func (r *CreateMemberRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a member name").
			Mark(ierr.ErrValidation)
	}

	if r.DistributorLevel < 0 || r.MemberLevel < 0 {
		return ierr.NewError("levels must not be negative").
			WithHint("Distributor and member levels must not be negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToMember converts the request into a domain member
func (r *CreateMemberRequest) ToMember(ctx context.Context) *member.Member {
	return &member.Member{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MEMBER),
		Name:             r.Name,
		ReferrerID:       r.ReferrerID,
		DistributorLevel: r.DistributorLevel,
		MemberLevel:      r.MemberLevel,
		Active:           true,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

// MemberResponse represents a member in API responses
type MemberResponse struct {
	*member.Member
}
