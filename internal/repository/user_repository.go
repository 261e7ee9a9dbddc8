package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/flight-booking-api/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,name,mobile,created_at,updated_at"

// Create inserts a user and returns its ID.  An empty mobile is stored as
// NULL so accounts without one do not collide on the unique key.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name, mobile) VALUES (?,?,?,?)",
		u.Email, u.PasswordHash, u.Name, nullString(u.Mobile))
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// GetByIdentifier fetches the user whose email or mobile equals identifier.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	identifier = strings.TrimSpace(identifier)
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? OR mobile=? LIMIT 1",
		strings.ToLower(identifier), identifier)
	return scanUser(row)
}

// ExistsByEmailOrMobile reports whether any user already owns email or mobile.
func (r *UserRepo) ExistsByEmailOrMobile(ctx context.Context, email, mobile string) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email=? OR mobile=? LIMIT 1",
		email, nullString(mobile)).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u      model.User
		mobile sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &mobile, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, classify(err)
	}
	u.Mobile = mobile.String
	return u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
