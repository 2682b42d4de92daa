package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/minimall/minimall/internal/domain/promotion"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
	"github.com/minimall/minimall/internal/types"
)

type promotionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPromotionRepository(db *postgres.DB, logger *logger.Logger) promotion.Repository {
	return &promotionRepository{db: db, logger: logger}
}

// promotionRow carries the JSON-encoded rules column
type promotionRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Rules     []byte    `db:"rules"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row *promotionRow) toDomain() (*promotion.Promotion, error) {
	var rules types.PromotionRules
	if len(row.Rules) > 0 {
		if err := json.Unmarshal(row.Rules, &rules); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode promotion rules").
				Mark(ierr.ErrDatabase)
		}
	}

	return &promotion.Promotion{
		ID:        row.ID,
		Name:      row.Name,
		Type:      types.PromotionType(row.Type),
		Rules:     rules,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
		Status:    types.PromotionStatus(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func fromDomain(p *promotion.Promotion) (*promotionRow, error) {
	rules, err := json.Marshal(p.Rules)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode promotion rules").
			Mark(ierr.ErrValidation)
	}

	return &promotionRow{
		ID:        p.ID,
		Name:      p.Name,
		Type:      string(p.Type),
		Rules:     rules,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func (r *promotionRepository) Create(ctx context.Context, p *promotion.Promotion) error {
	row, err := fromDomain(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO promotions (
			id, name, type, rules, start_time, end_time, status, created_at, updated_at
		) VALUES (
			:id, :name, :type, :rules, :start_time, :end_time, :status, :created_at, :updated_at
		)`

	r.logger.Debugw("creating promotion", "promotion_id", p.ID, "type", p.Type)

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create promotion").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *promotionRepository) Get(ctx context.Context, id string) (*promotion.Promotion, error) {
	var row promotionRow
	query := `SELECT * FROM promotions WHERE id = $1`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("promotion not found").
				WithHint("Promotion not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get promotion").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *promotionRepository) Update(ctx context.Context, p *promotion.Promotion) error {
	p.UpdatedAt = time.Now().UTC()
	row, err := fromDomain(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE promotions SET
			name = :name,
			type = :type,
			rules = :rules,
			start_time = :start_time,
			end_time = :end_time,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update promotion").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *promotionRepository) List(ctx context.Context) ([]*promotion.Promotion, error) {
	return r.list(ctx, `SELECT * FROM promotions ORDER BY created_at DESC`)
}

func (r *promotionRepository) ListActive(ctx context.Context) ([]*promotion.Promotion, error) {
	return r.list(ctx, `SELECT * FROM promotions WHERE status = 'active' ORDER BY created_at DESC`)
}

func (r *promotionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*promotion.Promotion, error) {
	var rows []*promotionRow
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list promotions").
			Mark(ierr.ErrDatabase)
	}

	promotions := make([]*promotion.Promotion, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}
