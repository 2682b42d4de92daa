package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/minimall/minimall/internal/domain/settings"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
	"github.com/minimall/minimall/internal/types"
)

// settings are stored as a single JSON row keyed by a fixed id so Update
// can be a plain upsert.
const settingsRowID = "system"

type settingsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) settings.Repository {
	return &settingsRepository{db: db, logger: logger}
}

func (r *settingsRepository) Get(ctx context.Context) (types.SystemSettings, error) {
	var raw []byte
	query := `SELECT value FROM system_settings WHERE id = $1`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &raw, query, settingsRowID)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.GetDefaultSystemSettings(), nil
		}
		return types.SystemSettings{}, ierr.WithError(err).
			WithHint("Failed to get system settings").
			Mark(ierr.ErrDatabase)
	}

	var s types.SystemSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return types.SystemSettings{}, ierr.WithError(err).
			WithHint("Failed to decode system settings").
			Mark(ierr.ErrDatabase)
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s types.SystemSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode system settings").
			Mark(ierr.ErrValidation)
	}

	query := `
		INSERT INTO system_settings (id, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	r.logger.Debugw("updating system settings",
		"active_member_check_enabled", s.ActiveMemberCheckEnabled,
		"active_member_check_days", s.ActiveMemberCheckDays,
	)

	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, settingsRowID, raw, time.Now().UTC()); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update system settings").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
