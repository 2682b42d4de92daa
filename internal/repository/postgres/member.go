package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/minimall/minimall/internal/domain/member"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
)

type memberRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewMemberRepository(db *postgres.DB, logger *logger.Logger) member.Repository {
	return &memberRepository{db: db, logger: logger}
}

func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO members (
			id, name, referrer_id, distributor_level, member_level,
			last_active_at, last_order_at, active,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :referrer_id, :distributor_level, :member_level,
			:last_active_at, :last_order_at, :active,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating member", "member_id", m.ID)

	_, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create member").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *memberRepository) Get(ctx context.Context, id string) (*member.Member, error) {
	var m member.Member
	query := `SELECT * FROM members WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &m, query, id, "deleted")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("member not found").
				WithHint("Member not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get member").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *memberRepository) Update(ctx context.Context, m *member.Member) error {
	m.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE members SET
			name = :name,
			referrer_id = :referrer_id,
			distributor_level = :distributor_level,
			member_level = :member_level,
			last_active_at = :last_active_at,
			last_order_at = :last_order_at,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update member").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *memberRepository) ListAll(ctx context.Context) ([]*member.Member, error) {
	var members []*member.Member
	query := `SELECT * FROM members WHERE status != $1 ORDER BY created_at`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &members, query, "deleted")
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list members").
			Mark(ierr.ErrDatabase)
	}
	return members, nil
}

func (r *memberRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE members SET active = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update active flag").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *memberRepository) TouchLastOrderAt(ctx context.Context, id string) error {
	now := time.Now().UTC()
	query := `UPDATE members SET last_order_at = $1, updated_at = $1 WHERE id = $2`

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, now, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update last order timestamp").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
