package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/venue-booking/internal/model"
)

// settingsRowID is the primary key of the singleton settings row.
const settingsRowID = 1

// SettingsRepo reads and writes the settings singleton.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the current settings.  A missing row yields the defaults
// (automatic confirmations off).
func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	const q = `SELECT send_confirmation_automatically, updated_at FROM settings WHERE id = ?`
	var s model.Settings
	err := r.db.QueryRowContext(ctx, q, settingsRowID).Scan(&s.SendConfirmationAutomatically, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{}, nil
		}
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// Update writes the settings singleton, creating the row when needed, and
// returns the stored value.
func (r *SettingsRepo) Update(ctx context.Context, s model.Settings) (model.Settings, error) {
	const q = `INSERT INTO settings (id, send_confirmation_automatically) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE send_confirmation_automatically = VALUES(send_confirmation_automatically),
		updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, q, settingsRowID, s.SendConfirmationAutomatically); err != nil {
		return model.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return r.Get(ctx)
}
