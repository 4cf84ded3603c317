package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "user_id", Msg: "id tidak valid"}
	}

	query := `
		SELECT id, name, COALESCE(email,''), COALESCE(phone,''), role, COALESCE(status,'')
		FROM users
		WHERE id = ? LIMIT 1`

	var u models.User
	err := r.db().QueryRow(query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateProfileTx applies contact overrides inside the caller's transaction.
// A duplicate email hits the unique index and surfaces as a profile conflict
// so the whole booking transaction rolls back.
func (r UserRepository) UpdateProfileTx(tx *sql.Tx, id int64, upd models.ProfileUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, strings.TrimSpace(*upd.Email))
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, strings.TrimSpace(*upd.Phone))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	_, err := tx.Exec("UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == 1062 {
			return domain.ConflictError{
				Resource: "user",
				Code:     domain.CodeProfileConflict,
				Msg:      "email sudah terdaftar pada akun lain",
				Err:      err,
			}
		}
		return err
	}
	return nil
}
