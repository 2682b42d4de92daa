package testutil

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/domain/member"
	ierr "github.com/minimall/minimall/internal/errors"
)

// InMemoryMemberStore implements member.Repository
type InMemoryMemberStore struct {
	*InMemoryStore[*member.Member]
}

// NewInMemoryMemberStore creates a new in-memory member store
func NewInMemoryMemberStore() *InMemoryMemberStore {
	return &InMemoryMemberStore{
		InMemoryStore: NewInMemoryStore[*member.Member](),
	}
}

func copyMember(m *member.Member) *member.Member {
	if m == nil {
		return nil
	}

	copied := *m
	if m.ReferrerID != nil {
		id := *m.ReferrerID
		copied.ReferrerID = &id
	}
	if m.LastActiveAt != nil {
		ts := *m.LastActiveAt
		copied.LastActiveAt = &ts
	}
	if m.LastOrderAt != nil {
		ts := *m.LastOrderAt
		copied.LastOrderAt = &ts
	}
	return &copied
}

func (s *InMemoryMemberStore) Create(ctx context.Context, m *member.Member) error {
	if m == nil {
		return ierr.NewError("member cannot be nil").
			WithHint("Member cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, m.ID, copyMember(m))
}

func (s *InMemoryMemberStore) Get(ctx context.Context, id string) (*member.Member, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("member not found").
			WithHint("Member not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyMember(m), nil
}

func (s *InMemoryMemberStore) Update(ctx context.Context, m *member.Member) error {
	if m == nil {
		return ierr.NewError("member cannot be nil").
			WithHint("Member cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, m.ID, copyMember(m))
}

func (s *InMemoryMemberStore) ListAll(ctx context.Context) ([]*member.Member, error) {
	members, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *member.Member) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	result := make([]*member.Member, 0, len(members))
	for _, m := range members {
		result = append(result, copyMember(m))
	}
	return result, nil
}

func (s *InMemoryMemberStore) SetActive(ctx context.Context, id string, active bool) error {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("member not found").
			WithHint("Member not found").
			Mark(ierr.ErrNotFound)
	}

	copied := copyMember(m)
	copied.Active = active
	copied.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, copied)
}

func (s *InMemoryMemberStore) TouchLastOrderAt(ctx context.Context, id string) error {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("member not found").
			WithHint("Member not found").
			Mark(ierr.ErrNotFound)
	}

	now := time.Now().UTC()
	copied := copyMember(m)
	copied.LastOrderAt = &now
	copied.UpdatedAt = now
	return s.InMemoryStore.Update(ctx, id, copied)
}
