package service

import (
	"context"

	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
)

// MemberService registers and reads members
type MemberService interface {
	CreateMember(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	GetMember(ctx context.Context, id string) (*dto.MemberResponse, error)
}

type memberService struct {
	ServiceParams
}

func NewMemberService(params ServiceParams) MemberService {
	return &memberService{ServiceParams: params}
}

func (s *memberService) CreateMember(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.ReferrerID != nil {
		if _, err := s.MemberRepo.Get(ctx, *req.ReferrerID); err != nil {
			if ierr.IsNotFound(err) {
				return nil, ierr.WithError(err).
					WithHint("Referrer does not exist").
					WithReportableDetails(map[string]any{"referrer_id": *req.ReferrerID}).
					Mark(ierr.ErrValidation)
			}
			return nil, err
		}
	}

	m := req.ToMember(ctx)
	if err := s.MemberRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.Logger.Infow("created member",
		"member_id", m.ID,
		"referrer_id", m.ReferrerID,
	)
	return &dto.MemberResponse{Member: m}, nil
}

func (s *memberService) GetMember(ctx context.Context, id string) (*dto.MemberResponse, error) {
	m, err := s.MemberRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.MemberResponse{Member: m}, nil
}
