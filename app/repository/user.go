package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
)

var ErrUserAlreadyExists = errors.New("user already exists")

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user; a concurrent insert of the same email surfaces as
// ErrUserAlreadyExists via the unique index, which callers treat as "fetch
// the existing row".
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, created_at)
		VALUES (?, ?)
	`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query, user.Email, user.CreatedAt)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrUserAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &entity.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return user, nil
}
