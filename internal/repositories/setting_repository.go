package repositories

import (
	"database/sql"
	"errors"
	"strconv"

	intconfig "backend/internal/config"
	"backend/internal/domain"
)

const settingServiceFee = "service_fee_percent"

// SettingRepository is the mutable configuration store. The service-fee
// percentage lives here so payout runs read the current value while old
// payouts keep their snapshots.
type SettingRepository struct {
	DB *sql.DB
}

func (r SettingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetServiceFee returns the stored fee fraction, or def when unset.
func (r SettingRepository) GetServiceFee(def float64) (float64, error) {
	var raw string
	err := r.db().QueryRow(`SELECT value FROM settings WHERE name = ? LIMIT 1`, settingServiceFee).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return def, nil
		}
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v >= 1 {
		return def, nil
	}
	return v, nil
}

func (r SettingRepository) SetServiceFee(v float64) error {
	if v < 0 || v >= 1 {
		return domain.ValidationError{Field: "serviceFeePercent", Msg: "harus di antara 0 dan 1"}
	}
	_, err := r.db().Exec(`
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		settingServiceFee, strconv.FormatFloat(v, 'f', -1, 64),
	)
	return err
}
