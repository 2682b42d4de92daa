package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/minimall/minimall/internal/domain/levelconfig"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
	"github.com/minimall/minimall/internal/types"
)

type levelConfigRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLevelConfigRepository(db *postgres.DB, logger *logger.Logger) levelconfig.Repository {
	return &levelConfigRepository{db: db, logger: logger}
}

type levelConfigRow struct {
	ID        string `db:"id"`
	Level     int    `db:"level"`
	TierRates []byte `db:"tier_rates"`

	types.BaseModel
}

func (row *levelConfigRow) toDomain() (*levelconfig.Config, error) {
	var rates []levelconfig.TierRate
	if len(row.TierRates) > 0 {
		if err := json.Unmarshal(row.TierRates, &rates); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode tier rates").
				Mark(ierr.ErrDatabase)
		}
	}

	return &levelconfig.Config{
		ID:        row.ID,
		Level:     row.Level,
		TierRates: rates,
		BaseModel: row.BaseModel,
	}, nil
}

func (r *levelConfigRepository) Create(ctx context.Context, cfg *levelconfig.Config) error {
	rates, err := json.Marshal(cfg.TierRates)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode tier rates").
			Mark(ierr.ErrValidation)
	}

	row := &levelConfigRow{
		ID:        cfg.ID,
		Level:     cfg.Level,
		TierRates: rates,
		BaseModel: cfg.BaseModel,
	}

	query := `
		INSERT INTO distributor_level_configs (
			id, level, tier_rates,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :level, :tier_rates,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating level config", "level", cfg.Level)

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create level config").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *levelConfigRepository) GetByLevel(ctx context.Context, level int) (*levelconfig.Config, error) {
	var row levelConfigRow
	query := `SELECT * FROM distributor_level_configs WHERE level = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &row, query, level, "deleted")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("level config not found").
				WithHint("Distributor level config not found").
				WithReportableDetails(map[string]any{"level": level}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get level config").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *levelConfigRepository) List(ctx context.Context) ([]*levelconfig.Config, error) {
	var rows []*levelConfigRow
	query := `SELECT * FROM distributor_level_configs WHERE status != $1 ORDER BY level`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, "deleted")
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list level configs").
			Mark(ierr.ErrDatabase)
	}

	configs := make([]*levelconfig.Config, 0, len(rows))
	for _, row := range rows {
		cfg, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (r *levelConfigRepository) Update(ctx context.Context, cfg *levelconfig.Config) error {
	rates, err := json.Marshal(cfg.TierRates)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode tier rates").
			Mark(ierr.ErrValidation)
	}

	cfg.UpdatedAt = time.Now().UTC()
	row := &levelConfigRow{
		ID:        cfg.ID,
		Level:     cfg.Level,
		TierRates: rates,
		BaseModel: cfg.BaseModel,
	}

	query := `
		UPDATE distributor_level_configs SET
			level = :level,
			tier_rates = :tier_rates,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update level config").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
